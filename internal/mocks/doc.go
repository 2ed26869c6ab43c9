// Package mocks provides centralized mock implementations for testing.
//
// Each mock has function fields for the interface methods, falls back to
// fixed return values when a function is not set, and records its calls so
// tests can assert on how the collaborator was used.
//
// Usage:
//
//	translator := &mocks.MockTranslator{
//	    TranslateFn: func(ctx context.Context, text, target string) (string, error) {
//	        return "bonjour", nil
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Track calls behind a mutex so mocks are safe in parallel tests
package mocks

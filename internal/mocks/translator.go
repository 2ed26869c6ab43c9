package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/recite/internal/translation"
)

// TranslateCall captures the arguments of one Translate call.
type TranslateCall struct {
	Text   string
	Target string
}

// MockTranslator implements translation.Translator for testing.
type MockTranslator struct {
	// TranslateFn allows test cases to mock the Translate behavior
	TranslateFn func(ctx context.Context, text, target string) (string, error)

	// Default response values
	Translation string
	Err         error

	mu    sync.Mutex
	calls []TranslateCall
}

var _ translation.Translator = (*MockTranslator)(nil)

// Translate implements translation.Translator.
func (m *MockTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, TranslateCall{Text: text, Target: target})
	m.mu.Unlock()

	if m.TranslateFn != nil {
		return m.TranslateFn(ctx, text, target)
	}
	return m.Translation, m.Err
}

// Calls returns a copy of the recorded calls.
func (m *MockTranslator) Calls() []TranslateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TranslateCall(nil), m.calls...)
}

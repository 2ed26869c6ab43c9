package service

import (
	"errors"
	"fmt"
)

// ErrNoSession indicates the caller has no practice session to work on.
// API layer should redirect to the input form.
var ErrNoSession = errors.New("no practice session")

// PracticeError wraps errors from the practice service with context.
type PracticeError struct {
	// Operation is the operation that failed (e.g., "start", "submit")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface.
func (e *PracticeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("practice %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("practice %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PracticeError) Unwrap() error {
	return e.Err
}

// NewPracticeError creates a new PracticeError.
func NewPracticeError(operation, message string, err error) *PracticeError {
	return &PracticeError{Operation: operation, Message: message, Err: err}
}

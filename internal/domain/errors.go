package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when user supplied data fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidPromptRange is returned when a "start-end: text" prompt line
	// does not contain two integers.
	ErrInvalidPromptRange = errors.New("invalid prompt range")

	// ErrNoSentences is returned when the text to memorize has no non-blank lines.
	ErrNoSentences = errors.New("text contains no sentences")

	// ErrIndexOutOfRange is returned when a sentence index is outside the session.
	ErrIndexOutOfRange = errors.New("sentence index out of range")

	// ErrUnsupportedLanguage is returned for a translation target that is not offered.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// ValidationError carries the offending field alongside a wrapped sentinel.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

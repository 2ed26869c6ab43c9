package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/recite/internal/api/shared"
	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/platform/resilience"
	"github.com/phrazzld/recite/internal/service"
	"github.com/phrazzld/recite/internal/session"
	"github.com/phrazzld/recite/internal/speech"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrInvalidPromptRange),
		errors.Is(err, domain.ErrNoSentences),
		errors.Is(err, domain.ErrUnsupportedLanguage),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, speech.ErrEmptyText):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, domain.ErrIndexOutOfRange),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, service.ErrNoSession):
		return http.StatusNotFound

	case errors.Is(err, session.ErrSessionTooLarge):
		return http.StatusRequestEntityTooLarge

	// Upstream failures
	case errors.Is(err, speech.ErrSynthesisFailed),
		errors.Is(err, speech.ErrNoAudio),
		errors.Is(err, resilience.ErrCircuitOpen):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var rangeErr *domain.PromptRangeError
	if errors.As(err, &rangeErr) {
		return fmt.Sprintf("Invalid prompt range %q on line %d: use start-end: prompt, e.g. 2-4: look here",
			rangeErr.Range, rangeErr.Line)
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPromptRange):
		return "Invalid prompt range"
	case errors.Is(err, domain.ErrNoSentences):
		return "Please enter at least one sentence to memorize"
	case errors.Is(err, domain.ErrUnsupportedLanguage):
		return "Unsupported translation language"
	case errors.Is(err, speech.ErrEmptyText):
		return "No text to speak"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return "Sentence not found"
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, service.ErrNoSession):
		return "No practice session"
	case errors.Is(err, session.ErrSessionTooLarge):
		return "The text is too long to keep in a cookie; shorten it or ask for a server-side session store"
	case errors.Is(err, speech.ErrSynthesisFailed),
		errors.Is(err, speech.ErrNoAudio),
		errors.Is(err, resilience.ErrCircuitOpen):
		return "Speech synthesis is unavailable"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and writes a sanitized response,
// logging the full (redacted) error. message overrides the safe message when
// not empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

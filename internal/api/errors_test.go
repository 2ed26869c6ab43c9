package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/platform/resilience"
	"github.com/phrazzld/recite/internal/service"
	"github.com/phrazzld/recite/internal/session"
	"github.com/phrazzld/recite/internal/speech"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	_, rangeErr := domain.ParsePrompts("a-b: nope")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"prompt range", rangeErr, http.StatusBadRequest},
		{"no sentences", domain.ErrNoSentences, http.StatusBadRequest},
		{"unsupported language", domain.NewValidationError("target_lang", "bad", domain.ErrUnsupportedLanguage), http.StatusBadRequest},
		{"validation", domain.NewValidationError("idx", "bad", domain.ErrValidation), http.StatusBadRequest},
		{"empty speech text", speech.ErrEmptyText, http.StatusBadRequest},
		{"index out of range", fmt.Errorf("step: %w", domain.ErrIndexOutOfRange), http.StatusNotFound},
		{"no session", service.ErrNoSession, http.StatusNotFound},
		{"invalid session", session.ErrInvalidSession, http.StatusNotFound},
		{"session too large", session.ErrSessionTooLarge, http.StatusRequestEntityTooLarge},
		{"synthesis failed", fmt.Errorf("%w: upstream 500", speech.ErrSynthesisFailed), http.StatusBadGateway},
		{"no audio", speech.ErrNoAudio, http.StatusBadGateway},
		{"circuit open", resilience.ErrCircuitOpen, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	_, rangeErr := domain.ParsePrompts("ok\nx-2: nope")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"prompt range names line", rangeErr, `Invalid prompt range "x-2" on line 2`},
		{"validation names field", domain.NewValidationError("idx", "must be an integer", domain.ErrValidation), "Invalid idx: must be an integer"},
		{"circuit open", resilience.ErrCircuitOpen, "Speech synthesis is unavailable"},
		{"internal details hidden", errors.New("dial tcp 10.0.0.1:5432: secret"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, GetSafeErrorMessage(tc.err), tc.want)
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	t.Run("safe message", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/memorize?idx=9", nil), domain.ErrIndexOutOfRange, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Sentence not found")
	})

	t.Run("custom message", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password=hunter2"), "Failed to save practice session")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to save practice session")
		assert.NotContains(t, rec.Body.String(), "hunter2")
	})
}

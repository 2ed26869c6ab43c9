package shared

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), TraceIDKey, "abc123")
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	RespondWithError(rec, r, http.StatusNotFound, "Sentence not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Sentence not found (trace id: abc123)\n", rec.Body.String())
}

func TestRespondWithErrorAndLogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{"server error", http.StatusBadGateway, nil, "ERROR"},
		{"client error", http.StatusBadRequest, nil, "DEBUG"},
		{"elevated client error", http.StatusBadRequest, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
		{"too many requests", http.StatusTooManyRequests, nil, "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			buf, log := logger.NewTestLogger(t)
			r := httptest.NewRequest(http.MethodGet, "/tts", nil)
			r = r.WithContext(logger.WithLogger(r.Context(), log))
			rec := httptest.NewRecorder()

			RespondWithErrorAndLog(rec, r, tc.status, "safe", errors.New("api_key=sk-abcdefghijkl failed"), tc.opts...)

			assert.Equal(t, tc.status, rec.Code)
			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.wantLevel, entries[0]["level"])
			assert.NotContains(t, buf.String(), "sk-abcdefghijkl")
		})
	}
}

func TestRespondWithAudio(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondWithAudio(rec, httptest.NewRequest(http.MethodGet, "/tts", nil), "audio/mpeg", []byte("abc"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "3", rec.Header().Get("Content-Length"))
	assert.Equal(t, "abc", rec.Body.String())
}

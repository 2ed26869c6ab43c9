package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/recite/internal/api"
	"github.com/phrazzld/recite/internal/mocks"
	"github.com/phrazzld/recite/internal/platform/resilience"
	"github.com/phrazzld/recite/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpeechService(t *testing.T, synth *mocks.MockSynthesizer) *speech.Service {
	t.Helper()
	detector := &mocks.MockDetector{Language: "fr"}
	svc, err := speech.NewService(detector, synth, "en", nil)
	require.NoError(t, err)
	return svc
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	synth := &mocks.MockSynthesizer{
		Audio: &speech.Audio{Data: []byte("ID3fake"), ContentType: speech.ContentTypeMPEG},
	}
	h := api.NewSpeechHandler(newSpeechService(t, synth), nil)

	req := httptest.NewRequest(http.MethodGet, "/tts?text=bonjour+le+monde", nil)
	rec := httptest.NewRecorder()
	h.Synthesize(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ID3fake", rec.Body.String())

	calls := synth.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, mocks.SynthesizeCall{Text: "bonjour le monde", Lang: "fr"}, calls[0])
}

func TestSynthesizeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		speaker    api.Speaker
		target     string
		wantStatus int
	}{
		{
			name:       "empty text",
			speaker:    nil,
			target:     "/tts?text=",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not configured",
			speaker:    nil,
			target:     "/tts?text=hello",
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "synthesis failure",
			speaker: speakerFunc(func(context.Context, string) (*speech.Audio, error) {
				return nil, speech.ErrSynthesisFailed
			}),
			target:     "/tts?text=hello",
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "open circuit",
			speaker: speakerFunc(func(context.Context, string) (*speech.Audio, error) {
				return nil, resilience.ErrCircuitOpen
			}),
			target:     "/tts?text=hello",
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := api.NewSpeechHandler(tc.speaker, nil)

			rec := httptest.NewRecorder()
			h.Synthesize(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		})
	}
}

type speakerFunc func(ctx context.Context, text string) (*speech.Audio, error)

func (f speakerFunc) Speak(ctx context.Context, text string) (*speech.Audio, error) {
	return f(ctx, text)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	api.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

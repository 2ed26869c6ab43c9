package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/recite/internal/api/shared"
	"github.com/phrazzld/recite/internal/speech"
)

// Speaker turns text into audio.
type Speaker interface {
	Speak(ctx context.Context, text string) (*speech.Audio, error)
}

// SpeechHandler serves synthesized audio.
type SpeechHandler struct {
	speaker Speaker
	logger  *slog.Logger
}

// NewSpeechHandler creates a new SpeechHandler. A nil speaker makes every
// request fail with 502.
func NewSpeechHandler(speaker Speaker, logger *slog.Logger) *SpeechHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpeechHandler{
		speaker: speaker,
		logger:  logger.With(slog.String("component", "speech_handler")),
	}
}

// Synthesize handles GET /tts?text= requests
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		HandleAPIError(w, r, speech.ErrEmptyText, "")
		return
	}

	if h.speaker == nil {
		HandleAPIError(w, r, speech.ErrSynthesisFailed, "Speech synthesis is not configured")
		return
	}

	audio, err := h.speaker.Speak(r.Context(), text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	contentType := audio.ContentType
	if contentType == "" {
		contentType = speech.ContentTypeMPEG
	}
	shared.RespondWithAudio(w, r, contentType, audio.Data)
}

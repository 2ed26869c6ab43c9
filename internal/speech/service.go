package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/phrazzld/recite/internal/redact"
)

// Service detects the language of a text and synthesizes it.
type Service struct {
	detector         LanguageDetector
	synthesizer      SpeechSynthesizer
	fallbackLanguage string
	logger           *slog.Logger
}

// NewService creates a Service. fallbackLanguage is used whenever detection
// fails.
func NewService(
	detector LanguageDetector,
	synthesizer SpeechSynthesizer,
	fallbackLanguage string,
	logger *slog.Logger,
) (*Service, error) {
	if detector == nil {
		return nil, fmt.Errorf("detector cannot be nil")
	}
	if synthesizer == nil {
		return nil, fmt.Errorf("synthesizer cannot be nil")
	}
	if fallbackLanguage == "" {
		return nil, fmt.Errorf("fallback language cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		detector:         detector,
		synthesizer:      synthesizer,
		fallbackLanguage: fallbackLanguage,
		logger:           logger.With(slog.String("component", "speech_service")),
	}, nil
}

// DetectLanguage returns the detected language of text, or the fallback
// language if detection fails.
func (s *Service) DetectLanguage(ctx context.Context, text string) string {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lang, err := s.detector.Detect(ctx, text)
	if err != nil || lang == "" {
		log.Debug("language detection failed, using fallback",
			slog.String("fallback_language", s.fallbackLanguage),
			slog.String("error", redact.Error(err)))
		return s.fallbackLanguage
	}
	return lang
}

// Speak synthesizes text in its detected language.
func (s *Service) Speak(ctx context.Context, text string) (*Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	lang := s.DetectLanguage(ctx, text)

	audio, err := s.synthesizer.Synthesize(ctx, text, lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	if audio == nil || len(audio.Data) == 0 {
		return nil, ErrNoAudio
	}
	if audio.ContentType == "" {
		audio.ContentType = ContentTypeMPEG
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("speech synthesized",
		slog.String("language", lang),
		slog.Int("text_length", len(text)),
		slog.Int("audio_bytes", len(audio.Data)))

	return audio, nil
}

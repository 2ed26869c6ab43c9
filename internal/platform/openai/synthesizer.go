package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/recite/internal/config"
	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/phrazzld/recite/internal/speech"
	openaiapi "github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Models that accept free-form speaking instructions.
var instructableModels = map[string]bool{
	"gpt-4o-mini-tts":           true,
	"gpt-4o-mini-audio-preview": true,
}

// Synthesizer implements speech.SpeechSynthesizer with the OpenAI speech
// endpoint. Audio is always requested as MP3.
type Synthesizer struct {
	client       *openaiapi.Client
	model        string
	voice        string
	voices       map[string]string
	speed        float64
	instructable bool
	instructions string
	logger       *slog.Logger
}

var _ speech.SpeechSynthesizer = (*Synthesizer)(nil)

// NewSynthesizer creates a Synthesizer from the speech config.
func NewSynthesizer(logger *slog.Logger, cfg config.SpeechConfig) (*Synthesizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("openai API key cannot be empty")
	}
	if cfg.OpenAIModel == "" || cfg.Voice == "" {
		return nil, errors.New("speech model and voice are required")
	}

	voices := make(map[string]string, len(cfg.Voices))
	for lang, voice := range cfg.Voices {
		if voice != "" {
			voices[strings.ToLower(lang)] = voice
		}
	}

	return &Synthesizer{
		client:       newClient(cfg.OpenAIAPIKey, cfg.OpenAIURL),
		model:        cfg.OpenAIModel,
		voice:        cfg.Voice,
		voices:       voices,
		speed:        cfg.Speed,
		instructable: instructableModels[cfg.OpenAIModel],
		instructions: strings.TrimSpace(cfg.Instructions),
		logger:       logger.With(slog.String("component", "openai_synthesizer")),
	}, nil
}

// voiceFor returns the configured voice for lang, trying the full code and
// then its base language ("zh-cn", then "zh").
func (s *Synthesizer) voiceFor(lang string) string {
	lang = strings.ToLower(lang)
	if v, ok := s.voices[lang]; ok {
		return v
	}
	if base, _, found := strings.Cut(lang, "-"); found {
		if v, ok := s.voices[base]; ok {
			return v
		}
	}
	return s.voice
}

// instructionsFor tells instructable models which language to speak, ahead
// of any configured instructions. Other models get none.
func (s *Synthesizer) instructionsFor(lang string) string {
	if !s.instructable {
		return ""
	}
	parts := make([]string, 0, 2)
	if name := languageName(lang); name != "" {
		parts = append(parts, "Speak in "+name+".")
	}
	if s.instructions != "" {
		parts = append(parts, s.instructions)
	}
	return strings.Join(parts, " ")
}

// languageName returns the English name of a BCP 47 code, or "" when the
// code is not recognized.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return ""
	}
	return display.English.Languages().Name(tag)
}

// Synthesize speaks text in lang. lang selects the voice and, for
// instructable models, is named in the instructions.
func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string) (*speech.Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, speech.ErrEmptyText
	}

	voice := s.voiceFor(lang)
	instructions := s.instructionsFor(lang)

	logger.FromContextOrDefault(ctx, s.logger).Debug("requesting speech",
		slog.String("model", s.model),
		slog.String("voice", voice),
		slog.String("language", lang),
		slog.Int("text_length", len(text)))

	resp, err := s.client.CreateSpeech(ctx, openaiapi.CreateSpeechRequest{
		Model:          openaiapi.SpeechModel(s.model),
		Input:          text,
		Voice:          openaiapi.SpeechVoice(voice),
		Speed:          s.speed,
		ResponseFormat: openaiapi.SpeechResponseFormatMp3,
		Instructions:   instructions,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech request failed: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, speech.ErrNoAudio
	}

	return &speech.Audio{Data: data, ContentType: speech.ContentTypeMPEG}, nil
}

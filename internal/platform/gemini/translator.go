package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/recite/internal/config"
	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/phrazzld/recite/internal/translation"
	"google.golang.org/genai"
)

// translationTemperature keeps the output close to a word-for-word rendering.
const translationTemperature float32 = 0.1

// contentGenerator is the part of the genai client used by Translator.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Translator implements translation.Translator using the Gemini API.
type Translator struct {
	logger    *slog.Logger
	generator contentGenerator
	model     string
}

var _ translation.Translator = (*Translator)(nil)

// NewTranslator creates a Translator with a new Gemini client.
func NewTranslator(ctx context.Context, logger *slog.Logger, cfg config.TranslationConfig) (*Translator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", translation.ErrInvalidConfig)
	}
	if cfg.GeminiModel == "" {
		return nil, fmt.Errorf("%w: gemini model cannot be empty", translation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", translation.ErrInvalidConfig, err)
	}

	return newTranslator(logger, client.Models, cfg.GeminiModel), nil
}

func newTranslator(logger *slog.Logger, generator contentGenerator, model string) *Translator {
	return &Translator{
		logger:    logger.With(slog.String("component", "gemini_translator")),
		generator: generator,
		model:     model,
	}
}

// Translate asks the model for a literal translation of text into target.
func (t *Translator) Translate(ctx context.Context, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", translation.ErrEmptyText
	}

	instruction, err := translation.SystemInstruction(target)
	if err != nil {
		return "", err
	}

	temperature := translationTemperature
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature: &temperature,
	}

	log := logger.FromContextOrDefault(ctx, t.logger)
	log.Debug("requesting translation",
		slog.String("model", t.model),
		slog.String("target_language", target),
		slog.Int("text_length", len(text)))

	resp, err := t.generator.GenerateContent(ctx, t.model, genai.Text(text), genConfig)
	if err != nil {
		return "", fmt.Errorf("%w: %w", translation.ErrTranslationFailed, err)
	}

	return responseText(resp)
}

// responseText extracts the text of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", translation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate == nil {
		return "", fmt.Errorf("%w: nil candidate", translation.ErrInvalidResponse)
	}
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", translation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", translation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("%w: empty text", translation.ErrInvalidResponse)
	}
	return out, nil
}

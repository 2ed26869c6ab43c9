package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/recite/internal/config"
	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/phrazzld/recite/internal/translation"
	openaiapi "github.com/sashabaranov/go-openai"
)

const (
	translationMaxTokens   = 256
	translationTemperature = 0.1
)

// Translator implements translation.Translator with a chat completion.
type Translator struct {
	client *openaiapi.Client
	model  string
	logger *slog.Logger
}

var _ translation.Translator = (*Translator)(nil)

// NewTranslator creates a Translator from the translation config.
func NewTranslator(logger *slog.Logger, cfg config.TranslationConfig) (*Translator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", translation.ErrInvalidConfig)
	}
	if cfg.OpenAIModel == "" {
		return nil, fmt.Errorf("%w: openai model cannot be empty", translation.ErrInvalidConfig)
	}

	return &Translator{
		client: newClient(cfg.OpenAIAPIKey, cfg.OpenAIURL),
		model:  cfg.OpenAIModel,
		logger: logger.With(slog.String("component", "openai_translator")),
	}, nil
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

	logger.FromContextOrDefault(ctx, t.logger).Debug("requesting translation",
		slog.String("model", t.model),
		slog.String("target_language", target),
		slog.Int("text_length", len(text)))

	resp, err := t.client.CreateChatCompletion(ctx, openaiapi.ChatCompletionRequest{
		Model: t.model,
		Messages: []openaiapi.ChatCompletionMessage{
			{Role: openaiapi.ChatMessageRoleSystem, Content: instruction},
			{Role: openaiapi.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   translationMaxTokens,
		Temperature: translationTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", translation.ErrTranslationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", translation.ErrInvalidResponse)
	}
	choice := resp.Choices[0]
	if choice.FinishReason == openaiapi.FinishReasonContentFilter {
		return "", translation.ErrContentBlocked
	}

	out := strings.TrimSpace(choice.Message.Content)
	if out == "" {
		return "", fmt.Errorf("%w: empty text", translation.ErrInvalidResponse)
	}
	return out, nil
}

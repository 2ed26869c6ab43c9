package translation

import (
	"context"
	"log/slog"

	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/phrazzld/recite/internal/redact"
)

// Fetcher produces the auto-prompt list for a session by translating each
// sentence on its own.
type Fetcher struct {
	translator Translator
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher. A nil translator yields empty prompts.
func NewFetcher(translator Translator, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		translator: translator,
		logger:     logger.With(slog.String("component", "translation_fetcher")),
	}
}

// FetchAll translates every sentence into target, one call per sentence.
//
// A failure for one sentence is logged and replaced by the empty string; it
// never aborts the batch. The result is always positionally aligned with
// sentences and has the same length.
func (f *Fetcher) FetchAll(ctx context.Context, sentences []string, target string) []string {
	prompts := make([]string, len(sentences))
	if f.translator == nil {
		return prompts
	}

	log := logger.FromContextOrDefault(ctx, f.logger)
	failed := 0

	for i, sentence := range sentences {
		translated, err := f.translator.Translate(ctx, sentence, target)
		if err != nil {
			failed++
			log.Warn("translation failed, using empty prompt",
				slog.Int("index", i),
				slog.String("target_language", target),
				slog.String("error", redact.Error(err)))
			continue
		}
		prompts[i] = translated
	}

	log.Debug("auto prompts fetched",
		slog.Int("sentence_count", len(sentences)),
		slog.Int("failed_count", failed),
		slog.String("target_language", target))

	return prompts
}

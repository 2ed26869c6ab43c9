package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/platform/logger"
)

// AutoPromptFetcher produces one auto prompt per sentence. Implementations
// never fail as a whole; a failed sentence yields "".
type AutoPromptFetcher interface {
	FetchAll(ctx context.Context, sentences []string, target string) []string
}

// PracticeService defines the memorization flow.
type PracticeService interface {
	// Start builds a new session from the input form.
	Start(ctx context.Context, in StartInput) (*domain.Session, error)

	// Step describes the practice screen for the sentence at idx.
	Step(ctx context.Context, sess *domain.Session, idx int) (*Step, error)

	// Submit scores input for the sentence at idx and records the result.
	Submit(ctx context.Context, sess *domain.Session, idx int, input string) (*Outcome, error)

	// Results returns the recorded results in sentence order.
	Results(ctx context.Context, sess *domain.Session) *Summary
}

// StartInput is the submitted input form.
type StartInput struct {
	Text             string
	Prompts          string
	TargetLanguage   string
	UseCustomPrompts bool
	UseAutoPrompts   bool
	UseSpeech        bool
}

// Step is one practice screen.
type Step struct {
	Index     int
	Position  int // 1-based
	Total     int
	Sentence  string
	Prompt    string
	UseSpeech bool
}

// Outcome is the result of a submission and where the flow goes next.
type Outcome struct {
	Result    domain.Result
	NextIndex int
	Done      bool
}

// ResultRow is one line of the results table.
type ResultRow struct {
	Index    int
	Sentence string
	Input    string
	Status   domain.Status
}

// Summary is the results table plus the per-status counts.
type Summary struct {
	Rows      []ResultRow
	Tally     map[domain.Status]int
	Total     int
	Attempted int
}

// Practice implements PracticeService.
type Practice struct {
	fetcher AutoPromptFetcher
	logger  *slog.Logger
}

var _ PracticeService = (*Practice)(nil)

// NewPractice creates a Practice. A nil fetcher leaves every auto prompt
// empty.
func NewPractice(fetcher AutoPromptFetcher, logger *slog.Logger) *Practice {
	if logger == nil {
		logger = slog.Default()
	}
	return &Practice{
		fetcher: fetcher,
		logger:  logger.With(slog.String("component", "practice_service")),
	}
}

// Start implements PracticeService.
func (p *Practice) Start(ctx context.Context, in StartInput) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	sentences := domain.SplitSentences(in.Text)
	if len(sentences) == 0 {
		return nil, domain.ErrNoSentences
	}

	prompts, err := domain.ParsePrompts(in.Prompts)
	if err != nil {
		log.Debug("rejected prompts", slog.String("error", err.Error()))
		return nil, err
	}

	target := in.TargetLanguage
	if target == "" {
		target = domain.DefaultLanguage
	}
	if _, ok := domain.LanguageName(target); !ok {
		return nil, domain.NewValidationError("target_lang", "is not a supported language", domain.ErrUnsupportedLanguage)
	}

	var autoPrompts []string
	if in.UseAutoPrompts && p.fetcher != nil {
		autoPrompts = p.fetcher.FetchAll(ctx, sentences, target)
	}

	sess, err := domain.NewSession(sentences, prompts, autoPrompts, domain.Options{
		UseCustomPrompts: in.UseCustomPrompts,
		UseAutoPrompts:   in.UseAutoPrompts,
		UseSpeech:        in.UseSpeech,
		TargetLanguage:   target,
	})
	if err != nil {
		return nil, NewPracticeError("start", "failed to create session", err)
	}

	log.Info("practice session started",
		slog.Int("sentence_count", sess.Total()),
		slog.Int("prompt_count", len(prompts)),
		slog.Bool("use_custom_prompts", sess.UseCustomPrompts),
		slog.Bool("use_auto_prompts", sess.UseAutoPrompts),
		slog.Bool("use_speech", sess.UseSpeech),
		slog.String("target_language", target))

	return sess, nil
}

// Step implements PracticeService.
func (p *Practice) Step(_ context.Context, sess *domain.Session, idx int) (*Step, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	sentence, err := sess.Sentence(idx)
	if err != nil {
		return nil, err
	}
	return &Step{
		Index:     idx,
		Position:  idx + 1,
		Total:     sess.Total(),
		Sentence:  sentence,
		Prompt:    sess.PromptFor(idx),
		UseSpeech: sess.UseSpeech,
	}, nil
}

// Submit implements PracticeService. Resubmitting an index replaces the
// earlier result.
func (p *Practice) Submit(ctx context.Context, sess *domain.Session, idx int, input string) (*Outcome, error) {
	if sess == nil {
		return nil, ErrNoSession
	}

	_, seen := sess.Results[idx]
	res, err := sess.Record(idx, input)
	if err != nil {
		return nil, err
	}

	next, done := sess.Next(idx)

	logger.FromContextOrDefault(ctx, p.logger).Debug("recall scored",
		slog.Int("index", idx),
		slog.String("status", string(res.Status)),
		slog.Float64("error_rate", res.Rate),
		slog.Bool("resubmission", seen))

	return &Outcome{Result: res, NextIndex: next, Done: done}, nil
}

// Results implements PracticeService.
func (p *Practice) Results(_ context.Context, sess *domain.Session) *Summary {
	if sess == nil {
		return &Summary{Tally: make(map[domain.Status]int)}
	}

	summary := &Summary{Tally: sess.Tally(), Total: sess.Total()}

	for _, idx := range sess.ResultIndexes() {
		sentence, err := sess.Sentence(idx)
		if err != nil {
			continue
		}
		r := sess.Results[idx]
		summary.Rows = append(summary.Rows, ResultRow{
			Index:    idx,
			Sentence: sentence,
			Input:    r.Input,
			Status:   r.Status,
		})
	}
	summary.Attempted = len(summary.Rows)
	return summary
}

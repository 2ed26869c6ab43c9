package domain

import (
	"sort"
	"strings"
	"time"
)

// Result records a scored recall for one sentence. Rate is not persisted.
type Result struct {
	Input  string  `json:"input"`
	Status Status  `json:"status"`
	Rate   float64 `json:"-"`
}

// Session is the per-user state bag carried across the practice flow.
//
// It is created when the input form is submitted and mutated by each
// practice submission. AutoPrompts is always positionally aligned with
// Sentences.
type Session struct {
	ID               string         `json:"id,omitempty"`
	Sentences        []string       `json:"sentences"`
	Prompts          []PromptEntry  `json:"prompts,omitempty"`
	AutoPrompts      []string       `json:"auto_prompts"`
	UseCustomPrompts bool           `json:"use_custom_prompts"`
	UseAutoPrompts   bool           `json:"use_auto_prompts"`
	UseSpeech        bool           `json:"use_speech"`
	TargetLanguage   string         `json:"target_language"`
	Results          map[int]Result `json:"results"`
	CreatedAt        time.Time      `json:"created_at"`
}

// Options holds the user's choices from the input form.
type Options struct {
	UseCustomPrompts bool
	UseAutoPrompts   bool
	UseSpeech        bool
	TargetLanguage   string
}

// NewSession builds a session for the given sentences. A nil or short
// autoPrompts slice is padded with empty strings so that it matches the
// sentence count.
func NewSession(sentences []string, prompts []PromptEntry, autoPrompts []string, opts Options) (*Session, error) {
	if len(sentences) == 0 {
		return nil, ErrNoSentences
	}

	lang := opts.TargetLanguage
	if lang == "" {
		lang = DefaultLanguage
	}

	aligned := make([]string, len(sentences))
	copy(aligned, autoPrompts)

	return &Session{
		Sentences:        sentences,
		Prompts:          prompts,
		AutoPrompts:      aligned,
		UseCustomPrompts: opts.UseCustomPrompts,
		UseAutoPrompts:   opts.UseAutoPrompts,
		UseSpeech:        opts.UseSpeech,
		TargetLanguage:   lang,
		Results:          make(map[int]Result),
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// Total returns the number of sentences in the session.
func (s *Session) Total() int {
	return len(s.Sentences)
}

// Sentence returns the sentence at idx.
func (s *Session) Sentence(idx int) (string, error) {
	if idx < 0 || idx >= len(s.Sentences) {
		return "", ErrIndexOutOfRange
	}
	return s.Sentences[idx], nil
}

// PromptFor selects the prompt shown for the sentence at idx.
//
// With custom prompts enabled the first entry covering idx wins. Failing
// that, the auto prompt is used when auto prompts are enabled. Otherwise no
// prompt is shown and the empty string is returned.
func (s *Session) PromptFor(idx int) string {
	if s.UseCustomPrompts {
		for _, p := range s.Prompts {
			if p.Covers(idx) {
				if p.Text != "" {
					return p.Text
				}
				break
			}
		}
	}
	if s.UseAutoPrompts && idx >= 0 && idx < len(s.AutoPrompts) {
		return s.AutoPrompts[idx]
	}
	return ""
}

// Record scores input against the sentence at idx and stores the result,
// replacing any earlier result for the same index.
func (s *Session) Record(idx int, input string) (Result, error) {
	sentence, err := s.Sentence(idx)
	if err != nil {
		return Result{}, err
	}

	input = strings.TrimSpace(input)
	status, rate := Score(sentence, input)
	res := Result{Input: input, Status: status, Rate: rate}

	if s.Results == nil {
		s.Results = make(map[int]Result)
	}
	s.Results[idx] = res
	return res, nil
}

// Completed returns a copy of s in which every sentence still without a
// result is recorded as a perfect recall of itself. Recorded results are
// kept.
func (s *Session) Completed() *Session {
	cp := *s
	cp.Results = make(map[int]Result, len(s.Sentences))
	for idx, res := range s.Results {
		cp.Results[idx] = res
	}
	for idx, sentence := range s.Sentences {
		if _, ok := cp.Results[idx]; !ok {
			cp.Results[idx] = Result{Input: strings.TrimSpace(sentence), Status: StatusPerfect}
		}
	}
	return &cp
}

// Next returns the index that follows idx in the practice flow, or done when
// idx was the last sentence.
func (s *Session) Next(idx int) (next int, done bool) {
	next = idx + 1
	if next >= len(s.Sentences) {
		return 0, true
	}
	return next, false
}

// ResultIndexes returns the indexes that have a recorded result, ascending.
func (s *Session) ResultIndexes() []int {
	idxs := make([]int, 0, len(s.Results))
	for idx := range s.Results {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	return idxs
}

// Tally counts recorded results per status.
func (s *Session) Tally() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, r := range s.Results {
		counts[r.Status]++
	}
	return counts
}

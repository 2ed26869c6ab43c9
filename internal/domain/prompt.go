package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PromptEntry associates a custom prompt with an inclusive, 0-based range of
// sentence indexes.
type PromptEntry struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Covers reports whether idx falls inside the entry's range.
func (p PromptEntry) Covers(idx int) bool {
	return p.Start <= idx && idx <= p.End
}

// PromptRangeError reports a prompt line whose range is not two integers.
// It matches ErrInvalidPromptRange with errors.Is.
type PromptRangeError struct {
	Line  int    // 1-based line number in the prompts text
	Range string // the text before the colon
	Err   error  // the integer parse failure
}

// Error implements the error interface.
func (e *PromptRangeError) Error() string {
	return fmt.Sprintf("%v on line %d: %q: %v", ErrInvalidPromptRange, e.Line, e.Range, e.Err)
}

// Is reports whether target is ErrInvalidPromptRange.
func (e *PromptRangeError) Is(target error) bool {
	return target == ErrInvalidPromptRange
}

// Unwrap returns the underlying parse failure.
func (e *PromptRangeError) Unwrap() error {
	return e.Err
}

// ParsePrompts converts free-form prompt lines into prompt entries.
//
// A line whose text before the first colon contains a hyphen is read as
// "start-end: prompt" with 1-based inclusive bounds. Any other non-blank line
// becomes a single-sentence prompt for the next auto index; only these lines
// advance the auto index. Entries keep the order in which they appear.
//
// Ranges are not checked for bounds or overlap. A range whose bounds are not
// integers fails the whole parse with ErrInvalidPromptRange.
func ParsePrompts(raw string) ([]PromptEntry, error) {
	var entries []PromptEntry
	autoIdx := 0

	for lineNo, line := range splitLines(raw) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		head, rest, hasColon := strings.Cut(line, ":")
		if hasColon && strings.Contains(head, "-") {
			start, end, err := parseRange(head)
			if err != nil {
				return nil, &PromptRangeError{Line: lineNo + 1, Range: strings.TrimSpace(head), Err: err}
			}
			entries = append(entries, PromptEntry{
				Start: start - 1,
				End:   end - 1,
				Text:  strings.TrimSpace(rest),
			})
			continue
		}

		entries = append(entries, PromptEntry{Start: autoIdx, End: autoIdx, Text: line})
		autoIdx++
	}

	return entries, nil
}

// parseRange reads "s-e" into its two 1-based bounds.
func parseRange(head string) (int, int, error) {
	s, e, _ := strings.Cut(head, "-")
	start, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, 0, err
	}
	end, err := strconv.Atoi(strings.TrimSpace(e))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

package domain

import "strings"

// Status classifies how well a sentence was recalled.
type Status string

// Recall statuses, from best to worst.
const (
	StatusPerfect Status = "Perfect"
	StatusPartial Status = "Partial"
	StatusNone    Status = "None"
)

// PartialThreshold is the highest error rate still classified as Partial.
const PartialThreshold = 0.5

// Statuses lists every status in display order.
var Statuses = []Status{StatusPerfect, StatusPartial, StatusNone}

// Score compares a typed recall against the original sentence word by word.
//
// Both strings are split on whitespace. The error count is the number of
// positional mismatches over the shorter word sequence plus the difference in
// sequence lengths. The error rate divides that count by the number of
// original words and is 1.0 when the original has no words.
//
// Returns the status for the rate together with the rate itself:
//   - rate == 0 is StatusPerfect
//   - 0 < rate <= PartialThreshold is StatusPartial
//   - anything higher is StatusNone
func Score(original, input string) (Status, float64) {
	rate := ErrorRate(original, input)
	return Classify(rate), rate
}

// ErrorRate returns the word-level error rate of input against original.
func ErrorRate(original, input string) float64 {
	want := strings.Fields(original)
	got := strings.Fields(input)
	if len(want) == 0 {
		return 1.0
	}

	shorter := min(len(want), len(got))
	errs := 0
	for i := 0; i < shorter; i++ {
		if want[i] != got[i] {
			errs++
		}
	}
	errs += abs(len(want) - len(got))

	return float64(errs) / float64(len(want))
}

// Classify maps an error rate onto a Status.
func Classify(rate float64) Status {
	switch {
	case rate == 0:
		return StatusPerfect
	case rate <= PartialThreshold:
		return StatusPartial
	default:
		return StatusNone
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

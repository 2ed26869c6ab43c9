// Package whatlang implements speech.LanguageDetector with local n-gram
// detection from github.com/abadojack/whatlanggo.
package whatlang

import (
	"context"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/phrazzld/recite/internal/speech"
)

// DefaultMinConfidence rejects guesses below this confidence.
const DefaultMinConfidence = 0.1

// Detector implements speech.LanguageDetector.
type Detector struct {
	minConfidence float64
}

var _ speech.LanguageDetector = (*Detector)(nil)

// NewDetector creates a Detector. A non-positive minConfidence uses
// DefaultMinConfidence.
func NewDetector(minConfidence float64) *Detector {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Detector{minConfidence: minConfidence}
}

// Detect returns the ISO 639-1 code of the language of text.
func (d *Detector) Detect(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty text", speech.ErrDetectionFailed)
	}

	info := whatlanggo.Detect(text)
	if info.Lang < 0 {
		return "", fmt.Errorf("%w: no language recognized", speech.ErrDetectionFailed)
	}
	if info.Confidence < d.minConfidence {
		return "", fmt.Errorf("%w: confidence %.2f below %.2f",
			speech.ErrDetectionFailed, info.Confidence, d.minConfidence)
	}

	code := info.Lang.Iso6391()
	if code == "" {
		return "", fmt.Errorf("%w: %s has no ISO 639-1 code", speech.ErrDetectionFailed, info.Lang)
	}
	return code, nil
}

package speech

import (
	"context"
	"errors"
)

// ContentTypeMPEG is the content type of MP3 audio.
const ContentTypeMPEG = "audio/mpeg"

var (
	// ErrEmptyText is returned when there is nothing to speak.
	ErrEmptyText = errors.New("text to speak cannot be empty")

	// ErrDetectionFailed is returned by detectors that cannot name a language.
	ErrDetectionFailed = errors.New("language detection failed")

	// ErrSynthesisFailed wraps synthesizer failures.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrNoAudio is returned when a synthesizer answers with an empty body.
	ErrNoAudio = errors.New("no audio data received")
)

// Audio is synthesized speech.
type Audio struct {
	Data        []byte
	ContentType string
}

// LanguageDetector names the language of a piece of text.
type LanguageDetector interface {
	// Detect returns an ISO 639-1 code such as "en" or "fr".
	Detect(ctx context.Context, text string) (string, error)
}

// SpeechSynthesizer renders text as audio.
type SpeechSynthesizer interface {
	// Synthesize speaks text in the given language.
	Synthesize(ctx context.Context, text, lang string) (*Audio, error)
}

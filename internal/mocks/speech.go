package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/recite/internal/speech"
)

// MockDetector implements speech.LanguageDetector for testing.
type MockDetector struct {
	DetectFn func(ctx context.Context, text string) (string, error)

	Language string
	Err      error

	mu    sync.Mutex
	texts []string
}

var _ speech.LanguageDetector = (*MockDetector)(nil)

// Detect implements speech.LanguageDetector.
func (m *MockDetector) Detect(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()

	if m.DetectFn != nil {
		return m.DetectFn(ctx, text)
	}
	return m.Language, m.Err
}

// Texts returns the texts passed to Detect.
func (m *MockDetector) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

// SynthesizeCall captures the arguments of one Synthesize call.
type SynthesizeCall struct {
	Text string
	Lang string
}

// MockSynthesizer implements speech.SpeechSynthesizer for testing.
type MockSynthesizer struct {
	SynthesizeFn func(ctx context.Context, text, lang string) (*speech.Audio, error)

	Audio *speech.Audio
	Err   error

	mu    sync.Mutex
	calls []SynthesizeCall
}

var _ speech.SpeechSynthesizer = (*MockSynthesizer)(nil)

// Synthesize implements speech.SpeechSynthesizer.
func (m *MockSynthesizer) Synthesize(ctx context.Context, text, lang string) (*speech.Audio, error) {
	m.mu.Lock()
	m.calls = append(m.calls, SynthesizeCall{Text: text, Lang: lang})
	m.mu.Unlock()

	if m.SynthesizeFn != nil {
		return m.SynthesizeFn(ctx, text, lang)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Audio != nil {
		// Copy so callers mutating the result do not affect later calls.
		a := *m.Audio
		return &a, nil
	}
	return nil, nil
}

// Calls returns a copy of the recorded calls.
func (m *MockSynthesizer) Calls() []SynthesizeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SynthesizeCall(nil), m.calls...)
}

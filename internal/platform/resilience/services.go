package resilience

import (
	"context"

	"github.com/phrazzld/recite/internal/speech"
	"github.com/phrazzld/recite/internal/translation"
)

// Translator guards a translation.Translator with a Breaker.
type Translator struct {
	next    translation.Translator
	breaker *Breaker
}

var _ translation.Translator = (*Translator)(nil)

// NewTranslator wraps next.
func NewTranslator(next translation.Translator, breaker *Breaker) *Translator {
	return &Translator{next: next, breaker: breaker}
}

// Translate implements translation.Translator.
func (t *Translator) Translate(ctx context.Context, text, target string) (string, error) {
	var out string
	err := t.breaker.Execute(func() error {
		var err error
		out, err = t.next.Translate(ctx, text, target)
		return err
	})
	return out, err
}

// Synthesizer guards a speech.SpeechSynthesizer with a Breaker.
type Synthesizer struct {
	next    speech.SpeechSynthesizer
	breaker *Breaker
}

var _ speech.SpeechSynthesizer = (*Synthesizer)(nil)

// NewSynthesizer wraps next.
func NewSynthesizer(next speech.SpeechSynthesizer, breaker *Breaker) *Synthesizer {
	return &Synthesizer{next: next, breaker: breaker}
}

// Synthesize implements speech.SpeechSynthesizer.
func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string) (*speech.Audio, error) {
	var out *speech.Audio
	err := s.breaker.Execute(func() error {
		var err error
		out, err = s.next.Synthesize(ctx, text, lang)
		return err
	})
	return out, err
}

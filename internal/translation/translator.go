package translation

import "context"

// Translator defines the interface for producing a literal translation of a
// single sentence. This interface is the boundary between the practice flow
// and the external translation services.
type Translator interface {
	// Translate returns text rendered in the target language. target is one
	// of the language codes offered on the input form, e.g. "fr" or "zh-cn".
	Translate(ctx context.Context, text, target string) (string, error)
}

// TranslatorFunc adapts an ordinary function to the Translator interface.
type TranslatorFunc func(ctx context.Context, text, target string) (string, error)

// Translate calls f(ctx, text, target).
func (f TranslatorFunc) Translate(ctx context.Context, text, target string) (string, error) {
	return f(ctx, text, target)
}

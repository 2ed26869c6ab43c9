package translation

import (
	"fmt"

	"github.com/phrazzld/recite/internal/domain"
)

// Prompt names are sent to the models; they differ from the form labels only
// where the label is ambiguous.
var modelLanguageNames = map[string]string{
	"zh-cn": "Simplified Chinese",
}

// TargetLanguageName returns the language name a model should translate into.
func TargetLanguageName(code string) (string, error) {
	if name, ok := modelLanguageNames[code]; ok {
		return name, nil
	}
	name, ok := domain.LanguageName(code)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, code)
	}
	return name, nil
}

// SystemInstruction builds the instruction given to a model before the
// sentence to translate.
func SystemInstruction(code string) (string, error) {
	name, err := TargetLanguageName(code)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Translate the user's text into %s as literally as possible, "+
			"keeping the word order close to the original. "+
			"Respond with only the translation, without quotes, notes or explanations.",
		name,
	), nil
}

package domain

// Language is a translation target offered on the input form.
type Language struct {
	Code string
	Name string
}

// DefaultLanguage is used when the form does not name a target language.
const DefaultLanguage = "en"

// SupportedLanguages lists the translation targets in display order.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English"},
	{Code: "zh-cn", Name: "Chinese"},
	{Code: "fr", Name: "French"},
	{Code: "es", Name: "Spanish"},
}

// LanguageName returns the display name for a language code.
func LanguageName(code string) (string, bool) {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return l.Name, true
		}
	}
	return "", false
}

// Package gemini provides an implementation of the translation.Translator
// interface backed by Google's Gemini API.
//
// The package is an infrastructure adapter: it turns a single sentence and a
// target language code into a GenerateContent call with a literal-translation
// system instruction, and maps the response (or its absence) onto the
// sentinel errors of the translation package. Callers never see genai types.
package gemini

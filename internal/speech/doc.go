// Package speech turns arbitrary text into audio for the practice screen.
// It defines the LanguageDetector and SpeechSynthesizer capabilities and the
// Service that combines them: detect the language, fall back to a fixed
// language when detection fails, then synthesize. Nothing is cached; every
// call synthesizes again.
package speech

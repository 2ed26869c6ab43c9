// Package openai adapts the OpenAI API to the application's capability
// interfaces: Translator implements translation.Translator with a chat
// completion and Synthesizer implements speech.SpeechSynthesizer with the
// speech endpoint.
package openai

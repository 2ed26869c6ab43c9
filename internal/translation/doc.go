// Package translation provides the Translator interface used to produce
// literal-translation prompts for each sentence, and the Fetcher that runs a
// Translator over a whole sentence list. It abstracts the external translation
// services (Gemini, OpenAI) so the practice flow can be tested with fakes.
package translation

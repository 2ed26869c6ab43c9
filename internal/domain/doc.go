// Package domain contains the core entities and pure logic of the memorization
// flow: splitting text into sentences, parsing custom prompts, selecting the
// prompt shown for a sentence, scoring a typed recall and tracking per-session
// progress. Nothing in this package performs I/O.
package domain

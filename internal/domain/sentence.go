package domain

import "strings"

// SplitSentences turns the raw memorization text into the sentence list: one
// sentence per line, trimmed, blank lines dropped.
func SplitSentences(text string) []string {
	lines := splitLines(text)
	sentences := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sentences = append(sentences, line)
	}
	return sentences
}

// splitLines splits on \n, \r\n and bare \r so that text pasted from any
// platform yields the same lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

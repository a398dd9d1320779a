package extract

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// Everything outside word characters, whitespace, and basic punctuation
	// is stripped.
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:()\[\]{}"'-]`)
)

// Clean normalizes extracted text: characters outside the whitelist are
// stripped, whitespace runs (including CR/LF variants) collapse to single
// spaces, and the result is trimmed. Clean is idempotent.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	// Strip before collapsing: removing a character between two spaces must
	// not leave a double space behind, or Clean would not be idempotent.
	text = disallowedChars.ReplaceAllString(text, "")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

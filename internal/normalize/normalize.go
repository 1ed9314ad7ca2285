// Package normalize cleans scraped page text into a compact form suitable
// for LLM input: tags and entities removed, odd characters dropped, all
// whitespace collapsed to single spaces.
package normalize

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)
	// Everything outside letters, digits, basic punctuation, and whitespace.
	disallowedRe = regexp.MustCompile(`[^\p{L}\p{N}.,:;!?\-()'"/\s]`)
)

// Clean normalizes raw scraped text. Deterministic and idempotent; the output
// never contains tabs, newlines, or runs of consecutive spaces, and is never
// longer than the input. Empty input yields empty output.
func Clean(raw string) string {
	s := html.UnescapeString(raw)
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = disallowedRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

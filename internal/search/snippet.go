// ABOUTME: Snippet extraction around the earliest query term occurrence
// ABOUTME: Centers a fixed window on the hit with ellipses at cut edges
package search

import (
	"strings"
	"unicode/utf8"
)

// DefaultSnippetLength is the snippet window size in characters
const DefaultSnippetLength = 200

// MakeSnippet returns a window of snippetLength characters centered on
// the earliest case-insensitive occurrence of any query term, with
// ellipses where the window cuts into the text. The window is measured
// and cut in characters, never mid-rune. When no term occurs, the
// leading snippetLength characters are returned.
func MakeSnippet(content, query string, snippetLength int) string {
	if snippetLength <= 0 {
		snippetLength = DefaultSnippetLength
	}

	contentLower := strings.ToLower(content)
	best := -1
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if pos := strings.Index(contentLower, term); pos != -1 && (best == -1 || pos < best) {
			best = pos
		}
	}

	runes := []rune(content)
	if best == -1 {
		// No term found: return the beginning
		if len(runes) > snippetLength {
			return string(runes[:snippetLength]) + "..."
		}
		return content
	}

	center := utf8.RuneCountInString(contentLower[:best])
	if center > len(runes) {
		center = len(runes)
	}

	start := center - snippetLength/2
	if start < 0 {
		start = 0
	}
	end := start + snippetLength
	if end > len(runes) {
		end = len(runes)
		if len(runes) > snippetLength {
			start = end - snippetLength
		}
	}

	snippet := string(runes[start:end])
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(runes) {
		snippet = snippet + "..."
	}
	return snippet
}

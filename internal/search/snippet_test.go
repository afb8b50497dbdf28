// ABOUTME: Tests for snippet extraction around query term occurrences
// ABOUTME: Verifies centering, ellipses, and fallback to the document head
package search

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMakeSnippet_TermInMiddle(t *testing.T) {
	content := strings.Repeat("x", 300) + " target " + strings.Repeat("y", 300)

	snippet := MakeSnippet(content, "target", 100)

	if !strings.Contains(snippet, "target") {
		t.Error("snippet does not contain the matched term")
	}
	if !strings.HasPrefix(snippet, "...") {
		t.Error("snippet cut at the front should start with ellipsis")
	}
	if !strings.HasSuffix(snippet, "...") {
		t.Error("snippet cut at the back should end with ellipsis")
	}
}

func TestMakeSnippet_TermAtStart(t *testing.T) {
	content := "target appears immediately " + strings.Repeat("z", 300)

	snippet := MakeSnippet(content, "target", 100)

	if strings.HasPrefix(snippet, "...") {
		t.Error("snippet starting at content head should not begin with ellipsis")
	}
	if !strings.Contains(snippet, "target") {
		t.Error("snippet does not contain the matched term")
	}
}

func TestMakeSnippet_NoMatchReturnsHead(t *testing.T) {
	content := strings.Repeat("alpha beta ", 50)

	snippet := MakeSnippet(content, "missing", 60)

	if !strings.HasPrefix(content, strings.TrimSuffix(snippet, "...")) {
		t.Errorf("snippet %q is not the head of the content", snippet)
	}
	if !strings.HasSuffix(snippet, "...") {
		t.Error("truncated head should end with ellipsis")
	}
}

func TestMakeSnippet_ShortContentUnchanged(t *testing.T) {
	content := "short note"

	if got := MakeSnippet(content, "missing", 200); got != content {
		t.Errorf("MakeSnippet() = %q, want unmodified content", got)
	}
	if got := MakeSnippet(content, "note", 200); got != content {
		t.Errorf("MakeSnippet() = %q, want unmodified content", got)
	}
}

func TestMakeSnippet_CaseInsensitive(t *testing.T) {
	content := strings.Repeat("x", 200) + " DEPLOYMENT failed " + strings.Repeat("y", 200)

	snippet := MakeSnippet(content, "deployment", 80)

	if !strings.Contains(snippet, "DEPLOYMENT") {
		t.Error("case-insensitive match did not center on the term")
	}
}

func TestMakeSnippet_MultibyteContent(t *testing.T) {
	content := strings.Repeat("前置きの文章です。", 20) + "キーワード target はこの後に続きます。" + strings.Repeat("残りの文章です。", 20)

	snippet := MakeSnippet(content, "target", 40)

	if !utf8.ValidString(snippet) {
		t.Errorf("snippet is not valid UTF-8: %q", snippet)
	}
	if !strings.Contains(snippet, "target") {
		t.Error("snippet does not contain the matched term")
	}

	// The no-match head is cut in characters, never mid-rune
	head := MakeSnippet(content, "missing", 10)
	if !utf8.ValidString(head) {
		t.Errorf("head snippet is not valid UTF-8: %q", head)
	}
	if got := utf8.RuneCountInString(strings.TrimSuffix(head, "...")); got != 10 {
		t.Errorf("head snippet length = %d characters, want 10", got)
	}
}

func TestMakeSnippet_EarliestTermWins(t *testing.T) {
	content := "alpha comes first here" + strings.Repeat(" filler", 50) + " beta comes later"

	snippet := MakeSnippet(content, "beta alpha", 60)

	if !strings.Contains(snippet, "alpha") {
		t.Errorf("snippet %q should center on the earliest occurring term", snippet)
	}
}

// ABOUTME: Tests for document chunking with overlapping windows
// ABOUTME: Verifies overlap invariants, sentence boundaries, and lossless reconstruction
package core

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunker_ShortContentSingleChunk(t *testing.T) {
	c := NewChunker(500, 50)

	content := "A short note that fits in one window."
	chunks := c.Chunk(content)

	if len(chunks) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0] != content {
		t.Errorf("chunk = %q, want unmodified content", chunks[0])
	}
}

func TestChunker_OverlapInvariant(t *testing.T) {
	c := NewChunker(100, 20)

	content := strings.Repeat("abcdefghij", 45) // 450 chars, no sentence boundaries
	chunks := c.Chunk(content)

	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want several", len(chunks))
	}

	// Every chunk but the last is exactly the window size
	for i, chunk := range chunks[:len(chunks)-1] {
		if len(chunk) != 100 {
			t.Errorf("chunk %d length = %d, want 100", i, len(chunk))
		}
	}

	// Each chunk begins with the last overlap characters of its predecessor
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-c.Overlap():]
		if !strings.HasPrefix(chunks[i], prevTail) {
			t.Errorf("chunk %d does not start with predecessor's tail", i)
		}
	}
}

func TestChunker_Reconstruction(t *testing.T) {
	c := NewChunker(80, 15)

	content := "The first topic came up early. Then we moved to the second topic, which needed more detail. Finally the third topic closed out the discussion with a few action items to follow up on next week."
	chunks := c.Chunk(content)

	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want several", len(chunks))
	}

	// Dropping the overlap prefix from every chunk after the first must
	// reproduce the original content exactly.
	var sb strings.Builder
	sb.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		sb.WriteString(chunk[c.Overlap():])
	}
	if sb.String() != content {
		t.Errorf("reconstruction mismatch:\ngot  %q\nwant %q", sb.String(), content)
	}
}

func TestChunker_SentenceBoundary(t *testing.T) {
	c := NewChunker(100, 10)

	// A sentence ends at position 80, past the window midpoint
	content := strings.Repeat("a", 79) + "." + strings.Repeat("b", 120)
	chunks := c.Chunk(content)

	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want at least 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk should end at the sentence boundary, got %q", chunks[0][len(chunks[0])-5:])
	}
	if len(chunks[0]) != 80 {
		t.Errorf("first chunk length = %d, want 80", len(chunks[0]))
	}
}

func TestChunker_BoundaryBeforeMidpointIgnored(t *testing.T) {
	c := NewChunker(100, 10)

	// The only period sits at position 20, before the midpoint; the window
	// must not shrink to it
	content := strings.Repeat("a", 19) + "." + strings.Repeat("b", 200)
	chunks := c.Chunk(content)

	if len(chunks[0]) != 100 {
		t.Errorf("first chunk length = %d, want full window of 100", len(chunks[0]))
	}
}

func TestNewChunker_Fallbacks(t *testing.T) {
	c := NewChunker(0, 0)
	if c.size != DefaultChunkSize {
		t.Errorf("size = %d, want default %d", c.size, DefaultChunkSize)
	}
	if c.overlap != DefaultChunkOverlap {
		t.Errorf("overlap = %d, want default %d", c.overlap, DefaultChunkOverlap)
	}

	// Overlap >= size falls back too
	c = NewChunker(100, 100)
	if c.overlap != DefaultChunkOverlap {
		t.Errorf("overlap = %d, want default when overlap >= size", c.overlap)
	}
}

func TestChunker_LargeOverlapCapped(t *testing.T) {
	// An overlap beyond half the window must be capped: a window ending at
	// a sentence boundary just past its midpoint would otherwise start the
	// next window before the current one.
	c := NewChunker(100, 80)
	if c.overlap > 50 {
		t.Fatalf("overlap = %d, want at most half the window", c.overlap)
	}

	content := strings.Repeat("a", 51) + "." + strings.Repeat("b", 300)
	chunks := c.Chunk(content)

	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want several", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk should end at the sentence boundary, got %q", chunks[0])
	}

	var sb strings.Builder
	sb.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		sb.WriteString(chunk[c.Overlap():])
	}
	if sb.String() != content {
		t.Errorf("reconstruction mismatch after overlap capping")
	}
}

func TestChunker_MultibyteContent(t *testing.T) {
	c := NewChunker(50, 10)

	content := strings.Repeat("日本語のメモ", 30) // 180 characters, no sentence boundaries
	chunks := c.Chunk(content)

	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want several", len(chunks))
	}
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, chunk)
		}
	}

	// Windows are measured in characters, not bytes
	if got := utf8.RuneCountInString(chunks[0]); got != 50 {
		t.Errorf("first chunk length = %d characters, want 50", got)
	}

	// Reconstruction strips the overlap in characters
	var sb strings.Builder
	sb.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		sb.WriteString(string([]rune(chunk)[c.Overlap():]))
	}
	if sb.String() != content {
		t.Errorf("reconstruction mismatch for multibyte content")
	}
}

func TestEmbeddable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"normal chunk", "a reasonable amount of text", true},
		{"too short", "hey", false},
		{"whitespace only", "    \n\t   ", false},
		{"short after trim", "   hi    ", false},
		{"exactly minimum", "0123456789", true},
		{"multibyte counted in characters", "日本語のメモ", false},
		{"multibyte at minimum", "日本語のメモを残します", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Embeddable(tt.text); got != tt.want {
				t.Errorf("Embeddable(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

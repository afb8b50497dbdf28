// ABOUTME: Chunker splits long documents into overlapping windows for embedding
// ABOUTME: Windows are measured in characters and prefer sentence boundaries past the midpoint
package core

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the window size in characters
	DefaultChunkSize = 500
	// DefaultChunkOverlap is the character overlap between consecutive chunks
	DefaultChunkOverlap = 50
	// MinEmbedLength is the minimum trimmed chunk length worth embedding
	MinEmbedLength = 10
)

// Chunker splits document content into overlapping chunks
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a Chunker; non-positive arguments fall back to
// defaults. Overlap is capped at half the window size: a window may end
// at a sentence boundary just past its midpoint, and the next window
// must still start after the previous one.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap <= 0 || overlap > size/2 {
		overlap = DefaultChunkOverlap
	}
	if overlap > size/2 {
		overlap = size / 2
	}
	return &Chunker{size: size, overlap: overlap}
}

// Overlap returns the configured overlap in characters
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Chunk splits content into overlapping windows of size characters.
// Content that fits one window is returned as a single chunk. Each
// window ends at the last sentence boundary (. ! ?) found past the
// window midpoint, so embeddings rarely cut mid-sentence while chunk
// size stays bounded. Consecutive chunks repeat the final overlap
// characters of their predecessor: strip that prefix from every chunk
// but the first and concatenation restores the content exactly.
func (c *Chunker) Chunk(content string) []string {
	runes := []rune(content)
	if len(runes) <= c.size {
		return []string{content}
	}

	var chunks []string
	start := 0

	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			end = len(runes)
		} else if boundary := lastSentenceEnd(runes[start:end]); boundary > c.size/2 {
			end = start + boundary + 1
		}

		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
		start = end - c.overlap
	}

	return chunks
}

// lastSentenceEnd returns the index of the last sentence terminator in
// the window, or -1 when it has none.
func lastSentenceEnd(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		switch window[i] {
		case '.', '!', '?':
			return i
		}
	}
	return -1
}

// Embeddable reports whether a chunk carries enough text to embed
func Embeddable(chunkText string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(chunkText)) >= MinEmbedLength
}

// ABOUTME: Deterministic hash-based embedding fallback for offline use
// ABOUTME: Availability fallback only; its similarities carry no semantic meaning
package llm

import (
	"context"
	"crypto/sha256"
)

// HashEmbedder produces deterministic pseudo-embeddings from a SHA-256 of
// the text, for deployments with no embedding API credential. Identical
// text always maps to an identical vector, so exact-duplicate lookups
// work, but cosine similarities between different texts are effectively
// random.
type HashEmbedder struct {
	dimension int
}

// NewHashEmbedder creates a fallback embedder with the given dimension
func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &HashEmbedder{dimension: dimension}
}

// Name identifies the provider in errors and logs
func (h *HashEmbedder) Name() string {
	return "hash-fallback"
}

// Dimension returns the fallback vector dimension
func (h *HashEmbedder) Dimension() int {
	return h.dimension
}

// Embed derives a vector from the SHA-256 digest of text: each digest byte
// maps into [-1, 1] and the 32-value pattern repeats up to the configured
// dimension. Never fails and ignores the context.
func (h *HashEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	digest := sha256.Sum256([]byte(text))

	vector := make([]float64, h.dimension)
	for i := range vector {
		b := digest[i%len(digest)]
		vector[i] = (float64(b)/255.0)*2 - 1
	}
	return vector, nil
}

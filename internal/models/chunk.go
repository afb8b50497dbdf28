// ABOUTME: Chunk model for the semantic index
// ABOUTME: A chunk is a bounded, overlapping slice of document content with its embedding
package models

import "time"

// Chunk is the unit of embedding: a contiguous slice of a document's content.
// Chunk indexes are 0-based and sequential per document, and consecutive
// chunks overlap so no sentence is split across an embedding boundary.
type Chunk struct {
	TranscriptID int64     `json:"transcript_id"`
	ChunkIndex   int       `json:"chunk_index"`
	ChunkText    string    `json:"chunk_text"`
	Embedding    []float64 `json:"embedding"`
	CreatedAt    time.Time `json:"created_at"`
}

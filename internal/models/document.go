// ABOUTME: Document and Analysis models for ingested transcripts
// ABOUTME: Documents are immutable; analyses are append-only annotations
package models

import "time"

// Document is a single ingested transcript. It is created once per distinct
// source file and never mutated; re-ingesting changed content produces a new
// document under a new id.
type Document struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	Date         string    `json:"date"`
	Timestamp    string    `json:"timestamp"`
	OriginEngine string    `json:"origin_engine"`
	FilePath     string    `json:"file_path"`
	Content      string    `json:"content"`
	WordCount    int       `json:"word_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Analysis is a derived annotation produced by an external classification
// step and attached to one document. Re-analysis appends a new row; readers
// use the most recent one.
type Analysis struct {
	ID             int64     `json:"id"`
	TranscriptID   int64     `json:"transcript_id"`
	Mode           string    `json:"mode"`
	Model          string    `json:"model"`
	Summary        string    `json:"summary"`
	ActionItems    []string  `json:"action_items"`
	Tags           []string  `json:"tags"`
	Classification string    `json:"classification"`
	Sentiment      string    `json:"sentiment"`
	Confidence     float64   `json:"confidence"`
	FilePath       string    `json:"file_path"`
	CreatedAt      time.Time `json:"created_at"`
}

// Stats summarizes the content store. All counts are zero and dates empty
// for an empty store.
type Stats struct {
	TotalDocuments  int64            `json:"total_documents"`
	TotalAnalyses   int64            `json:"total_analyses"`
	EarliestDate    string           `json:"earliest_date"`
	LatestDate      string           `json:"latest_date"`
	TotalWords      int64            `json:"total_words"`
	Classifications map[string]int64 `json:"classifications"`
}

// EmbeddingStats summarizes semantic index coverage.
type EmbeddingStats struct {
	DocumentsWithChunks int64   `json:"documents_with_chunks"`
	TotalChunks         int64   `json:"total_chunks"`
	AvgChunkLength      float64 `json:"avg_chunk_length"`
	TotalDocuments      int64   `json:"total_documents"`
	CoveragePercent     float64 `json:"coverage_percent"`
}

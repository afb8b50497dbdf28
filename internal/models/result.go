// ABOUTME: Query-scoped result models for keyword, semantic and hybrid search
// ABOUTME: Results join document, latest analysis and (for semantic) chunk data; never persisted
package models

// SearchResult is a keyword search hit. Score is index-relative (FTS rank)
// and must be normalized before it is combined with other signals.
type SearchResult struct {
	TranscriptID    int64    `json:"transcript_id"`
	Filename        string   `json:"filename"`
	Date            string   `json:"date"`
	Timestamp       string   `json:"timestamp"`
	Content         string   `json:"content"`
	Snippet         string   `json:"snippet"`
	Score           float64  `json:"score"`
	AnalysisSummary string   `json:"analysis_summary,omitempty"`
	ActionItems     []string `json:"action_items,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// SemanticResult is a similarity search hit for a single chunk.
// Similarity is cosine similarity of the query and chunk embeddings.
type SemanticResult struct {
	TranscriptID    int64    `json:"transcript_id"`
	Filename        string   `json:"filename"`
	Date            string   `json:"date"`
	Timestamp       string   `json:"timestamp"`
	Content         string   `json:"content"`
	Snippet         string   `json:"snippet"`
	Similarity      float64  `json:"similarity"`
	ChunkIndex      int      `json:"chunk_index"`
	AnalysisSummary string   `json:"analysis_summary,omitempty"`
	ActionItems     []string `json:"action_items,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// Result source tags for hybrid search.
const (
	SourceKeyword  = "keyword"
	SourceSemantic = "semantic"
	SourceHybrid   = "hybrid"
)

// FusedResult is a hybrid search hit. KeywordScore and SemanticScore are
// each max-normalized into [0,1] against their own result set before the
// weighted combination is computed.
type FusedResult struct {
	TranscriptID    int64    `json:"transcript_id"`
	Filename        string   `json:"filename"`
	Date            string   `json:"date"`
	Timestamp       string   `json:"timestamp"`
	Content         string   `json:"content"`
	Snippet         string   `json:"snippet"`
	KeywordScore    float64  `json:"keyword_score"`
	SemanticScore   float64  `json:"semantic_score"`
	CombinedScore   float64  `json:"combined_score"`
	Source          string   `json:"source"`
	AnalysisSummary string   `json:"analysis_summary,omitempty"`
	ActionItems     []string `json:"action_items,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// ContextEntry is one retrieved passage handed to the language model
// and echoed back to the caller alongside the answer.
type ContextEntry struct {
	Filename string  `json:"filename"`
	Excerpt  string  `json:"excerpt"`
	Summary  string  `json:"summary,omitempty"`
	Score    float64 `json:"score"`
}

// Answer is the outcome of a retrieval-augmented question. Sources are
// always populated from retrieval even when answer generation failed.
type Answer struct {
	Question string         `json:"question"`
	Answer   string         `json:"answer"`
	Sources  []FusedResult  `json:"sources"`
	Contexts []ContextEntry `json:"contexts"`
	Degraded bool           `json:"degraded,omitempty"`
}

// BatchStats reports the outcome of a batch embedding run.
type BatchStats struct {
	Processed           int `json:"processed"`
	EmbeddingsGenerated int `json:"embeddings_generated"`
	Errors              int `json:"errors"`
}

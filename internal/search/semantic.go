// ABOUTME: Semantic similarity search: exhaustive cosine scan over stored chunk vectors
// ABOUTME: Query is embedded once; chunks below the similarity threshold are discarded
package search

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/harper/recall-standalone/internal/llm"
	"github.com/harper/recall-standalone/internal/models"
	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

const (
	// DefaultSemanticLimit bounds semantic result sets when no limit is given
	DefaultSemanticLimit = 20
	// DefaultSimilarityThreshold is the minimum cosine similarity for a hit
	DefaultSimilarityThreshold = 0.3
)

// SemanticParams are the inputs to a similarity search
type SemanticParams struct {
	Query               string
	Limit               int
	SimilarityThreshold float64
	DateFrom            string
	DateTo              string
}

// SemanticSearcher runs similarity queries against the chunk store
type SemanticSearcher struct {
	chunks   *sqlite.ChunkStore
	provider llm.EmbeddingProvider
}

// NewSemanticSearcher creates a SemanticSearcher over the given database
// and embedding provider
func NewSemanticSearcher(db *sqlite.DB, provider llm.EmbeddingProvider) *SemanticSearcher {
	return &SemanticSearcher{
		chunks:   sqlite.NewChunkStore(db),
		provider: provider,
	}
}

// Search embeds the query once and scans every stored chunk vector,
// optionally pre-filtered by document date range. Results below the
// similarity threshold are dropped; the rest sort by similarity
// descending and truncate to the limit. A stored vector whose dimension
// differs from the provider's is a dimension mismatch error, not a
// silent zero.
func (s *SemanticSearcher) Search(ctx context.Context, params SemanticParams) ([]models.SemanticResult, error) {
	threshold := params.SimilarityThreshold
	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultSemanticLimit
	}

	queryVector, err := s.provider.Embed(ctx, params.Query)
	if err != nil {
		return nil, err
	}

	stored, err := s.chunks.ForSimilarity(params.DateFrom, params.DateTo)
	if err != nil {
		return nil, err
	}

	var results []models.SemanticResult
	for _, chunk := range stored {
		if len(chunk.Embedding) != s.provider.Dimension() {
			return nil, &llm.EmbeddingError{
				Provider: s.provider.Name(),
				Err: fmt.Errorf("%w: stored chunk %d/%d has dimension %d, index uses %d",
					llm.ErrDimensionMismatch, chunk.TranscriptID, chunk.ChunkIndex,
					len(chunk.Embedding), s.provider.Dimension()),
			}
		}

		similarity := CosineSimilarity(queryVector, chunk.Embedding)
		if similarity < threshold {
			continue
		}

		results = append(results, models.SemanticResult{
			TranscriptID:    chunk.TranscriptID,
			Filename:        chunk.Filename,
			Date:            chunk.Date,
			Timestamp:       chunk.Timestamp,
			Content:         chunk.Content,
			Snippet:         chunk.ChunkText,
			Similarity:      similarity,
			ChunkIndex:      chunk.ChunkIndex,
			AnalysisSummary: chunk.AnalysisSummary,
			ActionItems:     chunk.ActionItems,
			Tags:            chunk.Tags,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// CosineSimilarity calculates cosine similarity between two raw vectors.
// Mismatched lengths and zero-norm vectors evaluate to 0 rather than
// raising a division error.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ABOUTME: Hybrid search fusing keyword and semantic result sets into one ranked list
// ABOUTME: Each set is max-normalized independently, then merged by document with weighted scores
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/harper/recall-standalone/internal/llm"
	"github.com/harper/recall-standalone/internal/models"
	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

const (
	// DefaultHybridLimit bounds hybrid result sets when no limit is given
	DefaultHybridLimit = 20
	// DefaultKeywordWeight weights the normalized keyword score
	DefaultKeywordWeight = 0.7
	// DefaultSemanticWeight weights the normalized semantic score
	DefaultSemanticWeight = 0.3
)

// HybridParams are the inputs to a hybrid search. Zero weights for both
// components select the defaults.
type HybridParams struct {
	Query          string
	Limit          int
	KeywordWeight  float64
	SemanticWeight float64
	DateFrom       string
	DateTo         string
}

// HybridSearcher issues both search legs and fuses their results.
// Exact terminology matches come from the keyword leg; paraphrased and
// conceptual matches come from the semantic leg.
type HybridSearcher struct {
	keyword  *KeywordSearcher
	semantic *SemanticSearcher
}

// NewHybridSearcher creates a HybridSearcher over the given database and
// embedding provider
func NewHybridSearcher(db *sqlite.DB, provider llm.EmbeddingProvider) *HybridSearcher {
	return &HybridSearcher{
		keyword:  NewKeywordSearcher(db),
		semantic: NewSemanticSearcher(db, provider),
	}
}

// Search runs both legs at twice the requested limit, normalizes each
// result set against its own maximum, and merges by transcript id.
// A transcript present in both sets is tagged "hybrid" and scored
// kw*Wk + sem*Ws; one present in a single set carries only that
// component. An embedding provider outage degrades the query to
// keyword-only results and sets the returned degraded flag instead of
// failing.
func (s *HybridSearcher) Search(ctx context.Context, params HybridParams) ([]models.FusedResult, bool, error) {
	kwWeight, semWeight := params.KeywordWeight, params.SemanticWeight
	if kwWeight == 0 && semWeight == 0 {
		kwWeight, semWeight = DefaultKeywordWeight, DefaultSemanticWeight
	}
	if kwWeight < 0 || kwWeight > 1 || semWeight < 0 || semWeight > 1 {
		return nil, false, &QueryError{
			Reason: fmt.Sprintf("weights must be in [0,1], got keyword=%g semantic=%g", kwWeight, semWeight),
		}
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultHybridLimit
	}

	// Each leg fetches extra candidates to allow for overlap
	keywordResults, err := s.keyword.Search(KeywordParams{
		Query:    params.Query,
		Limit:    limit * 2,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
	})
	if err != nil {
		return nil, false, err
	}

	degraded := false
	semanticResults, err := s.semantic.Search(ctx, SemanticParams{
		Query:    params.Query,
		Limit:    limit * 2,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
	})
	if err != nil {
		var embErr *llm.EmbeddingError
		if !errors.As(err, &embErr) {
			return nil, false, err
		}
		// Provider outage: fall back to keyword-only results
		log.Printf("Warning: semantic search unavailable, degrading to keyword-only: %v", err)
		degraded = true
		semanticResults = nil
	}

	fused := fuse(keywordResults, semanticResults, kwWeight, semWeight)
	if len(fused) > limit {
		fused = fused[:limit]
	}
	return fused, degraded, nil
}

// fuse normalizes both result sets and merges them by transcript id
func fuse(keywordResults []models.SearchResult, semanticResults []models.SemanticResult, kwWeight, semWeight float64) []models.FusedResult {
	combined := make(map[int64]*models.FusedResult)
	var order []int64

	maxKeyword := 0.0
	for _, r := range keywordResults {
		if r.Score > maxKeyword {
			maxKeyword = r.Score
		}
	}
	if maxKeyword <= 0 {
		maxKeyword = 1.0
	}
	for _, r := range keywordResults {
		normalized := r.Score / maxKeyword
		combined[r.TranscriptID] = &models.FusedResult{
			TranscriptID:    r.TranscriptID,
			Filename:        r.Filename,
			Date:            r.Date,
			Timestamp:       r.Timestamp,
			Content:         r.Content,
			Snippet:         r.Snippet,
			KeywordScore:    normalized,
			CombinedScore:   normalized * kwWeight,
			Source:          models.SourceKeyword,
			AnalysisSummary: r.AnalysisSummary,
			ActionItems:     r.ActionItems,
			Tags:            r.Tags,
		}
		order = append(order, r.TranscriptID)
	}

	maxSemantic := 0.0
	for _, r := range semanticResults {
		if r.Similarity > maxSemantic {
			maxSemantic = r.Similarity
		}
	}
	if maxSemantic <= 0 {
		maxSemantic = 1.0
	}
	for _, r := range semanticResults {
		normalized := r.Similarity / maxSemantic

		if existing, ok := combined[r.TranscriptID]; ok {
			// Keep the best chunk's similarity for a transcript seen twice
			if existing.Source != models.SourceKeyword && normalized <= existing.SemanticScore {
				continue
			}
			existing.SemanticScore = normalized
			existing.CombinedScore = existing.KeywordScore*kwWeight + normalized*semWeight
			existing.Source = models.SourceHybrid
			// Prefer the semantic chunk as snippet when it is the stronger signal
			if normalized > existing.KeywordScore {
				existing.Snippet = r.Snippet
			}
			continue
		}

		combined[r.TranscriptID] = &models.FusedResult{
			TranscriptID:    r.TranscriptID,
			Filename:        r.Filename,
			Date:            r.Date,
			Timestamp:       r.Timestamp,
			Content:         r.Content,
			Snippet:         r.Snippet,
			SemanticScore:   normalized,
			CombinedScore:   normalized * semWeight,
			Source:          models.SourceSemantic,
			AnalysisSummary: r.AnalysisSummary,
			ActionItems:     r.ActionItems,
			Tags:            r.Tags,
		}
		order = append(order, r.TranscriptID)
	}

	fused := make([]models.FusedResult, 0, len(combined))
	for _, id := range order {
		fused = append(fused, *combined[id])
	}
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].CombinedScore > fused[j].CombinedScore
	})
	return fused
}

// ABOUTME: Keyword search: query sanitization, FTS5 match expression building, result assembly
// ABOUTME: Single terms prefix-match; multi-term queries rank exact phrases above individual terms
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harper/recall-standalone/internal/models"
	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

// DefaultKeywordLimit bounds keyword result sets when no limit is given
const DefaultKeywordLimit = 50

// sanitizePattern strips everything outside letters, digits, underscore,
// whitespace, hyphens and periods before the query reaches FTS5. The
// letter and digit classes are Unicode-wide so accented and CJK terms
// survive sanitization.
var sanitizePattern = regexp.MustCompile(`[^\p{L}\p{N}_\s.-]`)

// KeywordParams are the inputs to a keyword search
type KeywordParams struct {
	Query          string
	Limit          int
	Offset         int
	DateFrom       string
	DateTo         string
	Classification string
}

// KeywordSearcher runs ranked full-text queries with snippet extraction
type KeywordSearcher struct {
	store *sqlite.KeywordStore
}

// NewKeywordSearcher creates a KeywordSearcher over the given database
func NewKeywordSearcher(db *sqlite.DB) *KeywordSearcher {
	return &KeywordSearcher{store: sqlite.NewKeywordStore(db)}
}

// Search sanitizes the query, runs it against both FTS indexes, and
// attaches a snippet to each hit. An empty or fully-sanitized-away query
// returns an empty list, not an error.
func (s *KeywordSearcher) Search(params KeywordParams) ([]models.SearchResult, error) {
	if params.Offset < 0 {
		return nil, &QueryError{Reason: fmt.Sprintf("offset must be non-negative, got %d", params.Offset)}
	}

	match := PrepareMatchQuery(params.Query)
	if match == "" {
		return nil, nil
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}

	results, err := s.store.Search(match, limit, params.Offset, params.DateFrom, params.DateTo, params.Classification)
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Snippet = MakeSnippet(results[i].Content, params.Query, DefaultSnippetLength)
	}
	return results, nil
}

// PrepareMatchQuery converts a raw user query into an FTS5 match
// expression. Special characters are stripped, a single term becomes a
// prefix match, and multi-term queries search the exact phrase OR any
// individual term, so phrase matches outrank term matches by
// construction rather than post-hoc boosting. Returns "" when nothing
// searchable remains.
func PrepareMatchQuery(query string) string {
	cleaned := sanitizePattern.ReplaceAllString(query, " ")
	terms := strings.Fields(cleaned)

	if len(terms) == 0 {
		return ""
	}
	if len(terms) == 1 {
		return fmt.Sprintf(`"%s"*`, terms[0])
	}

	phrase := fmt.Sprintf(`"%s"`, strings.Join(terms, " "))
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = fmt.Sprintf(`"%s"*`, term)
	}
	return fmt.Sprintf("(%s) OR (%s)", phrase, strings.Join(quoted, " OR "))
}

// ABOUTME: FTS5 keyword search over transcript content and analysis summaries
// ABOUTME: Combines both match ranks into one relevance score with date/classification filters
package sqlite

import (
	"github.com/harper/recall-standalone/internal/models"
)

// KeywordStore executes full-text queries against the FTS5 indexes
type KeywordStore struct {
	db *DB
}

// NewKeywordStore creates a new KeywordStore
func NewKeywordStore(db *DB) *KeywordStore {
	return &KeywordStore{db: db}
}

// Search runs a prepared FTS5 match expression against transcript content
// and analysis summaries. FTS5 bm25 ranks are negative (better match, more
// negative), so they are negated into a positive relevance score; a
// transcript matching in both indexes sums both contributions. Filters
// apply before ranking; results order by (score DESC, timestamp DESC).
//
// Snippets are not generated here; the caller owns snippet extraction.
func (s *KeywordStore) Search(matchQuery string, limit, offset int, dateFrom, dateTo, classification string) ([]models.SearchResult, error) {
	query := `
		SELECT t.id, t.filename, t.date, t.timestamp, t.content,
		       COALESCE(a.summary, ''), COALESCE(a.action_items, '[]'), COALESCE(a.tags, '[]'),
		       (COALESCE(tr.score, 0) + COALESCE(ar.score, 0)) AS score
		FROM transcripts t
		LEFT JOIN analysis a ON a.id = (
			SELECT MAX(id) FROM analysis WHERE transcript_id = t.id
		)
		LEFT JOIN (
			SELECT rowid, -rank AS score FROM transcripts_fts WHERE transcripts_fts MATCH ?
		) tr ON t.id = tr.rowid
		LEFT JOIN (
			SELECT a2.transcript_id AS tid, MAX(fr.score) AS score
			FROM (SELECT rowid, -rank AS score FROM analysis_fts WHERE analysis_fts MATCH ?) fr
			JOIN analysis a2 ON a2.id = fr.rowid
			GROUP BY a2.transcript_id
		) ar ON t.id = ar.tid
		WHERE (tr.score IS NOT NULL OR ar.score IS NOT NULL)
	`
	args := []interface{}{matchQuery, matchQuery}

	if dateFrom != "" {
		query += " AND t.date >= ?"
		args = append(args, dateFrom)
	}
	if dateTo != "" {
		query += " AND t.date <= ?"
		args = append(args, dateTo)
	}
	if classification != "" {
		query += " AND a.classification = ?"
		args = append(args, classification)
	}

	query += `
		ORDER BY score DESC, t.timestamp DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("keyword search", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.SearchResult
	for rows.Next() {
		var (
			r           models.SearchResult
			actionItems string
			tags        string
		)
		if err := rows.Scan(&r.TranscriptID, &r.Filename, &r.Date, &r.Timestamp, &r.Content,
			&r.AnalysisSummary, &actionItems, &tags, &r.Score); err != nil {
			return nil, storageErr("keyword search", err)
		}
		if err := decodeStringList(actionItems, &r.ActionItems); err != nil {
			return nil, storageErr("keyword search", err)
		}
		if err := decodeStringList(tags, &r.Tags); err != nil {
			return nil, storageErr("keyword search", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("keyword search", err)
	}
	return results, nil
}

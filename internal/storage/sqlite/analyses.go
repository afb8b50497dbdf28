// ABOUTME: Analysis storage operations for classification metadata
// ABOUTME: Append-only rows; action items and tags serialize to JSON at the storage boundary
package sqlite

import (
	"database/sql"
	"encoding/json"

	"github.com/harper/recall-standalone/internal/models"
)

// AnalysisStore handles analysis persistence
type AnalysisStore struct {
	db *DB
}

// NewAnalysisStore creates a new AnalysisStore
func NewAnalysisStore(db *DB) *AnalysisStore {
	return &AnalysisStore{db: db}
}

// Add inserts an analysis row for a transcript and returns its id.
// Re-analysis appends rather than overwrites; readers pick the most recent.
func (s *AnalysisStore) Add(a *models.Analysis) (int64, error) {
	actionItems, err := json.Marshal(a.ActionItems)
	if err != nil {
		return 0, storageErr("add analysis", err)
	}
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return 0, storageErr("add analysis", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO analysis (transcript_id, mode, model, summary, action_items, tags,
		                      classification, sentiment, confidence, file_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.TranscriptID, a.Mode, a.Model, a.Summary, string(actionItems), string(tags),
		a.Classification, a.Sentiment, a.Confidence, a.FilePath)
	if err != nil {
		return 0, storageErr("add analysis", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("add analysis", err)
	}
	return id, nil
}

// LatestByTranscript returns the most recent analysis for a transcript,
// or nil when the transcript has none.
func (s *AnalysisStore) LatestByTranscript(transcriptID int64) (*models.Analysis, error) {
	var (
		a           models.Analysis
		actionItems string
		tags        string
	)

	err := s.db.QueryRow(`
		SELECT id, transcript_id, mode, model, summary, action_items, tags,
		       classification, sentiment, confidence, file_path, created_at
		FROM analysis
		WHERE transcript_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, transcriptID).Scan(&a.ID, &a.TranscriptID, &a.Mode, &a.Model, &a.Summary,
		&actionItems, &tags, &a.Classification, &a.Sentiment, &a.Confidence,
		&a.FilePath, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get analysis", err)
	}

	if err := decodeStringList(actionItems, &a.ActionItems); err != nil {
		return nil, storageErr("get analysis", err)
	}
	if err := decodeStringList(tags, &a.Tags); err != nil {
		return nil, storageErr("get analysis", err)
	}

	return &a, nil
}

// decodeStringList unmarshals a JSON string array, tolerating empty columns
func decodeStringList(raw string, dst *[]string) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

// ABOUTME: Transcript storage operations with idempotent ingestion
// ABOUTME: Re-adding a known filename returns the existing id instead of duplicating
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harper/recall-standalone/internal/models"
)

// TranscriptStore handles document persistence
type TranscriptStore struct {
	db *DB
}

// NewTranscriptStore creates a new TranscriptStore
func NewTranscriptStore(db *DB) *TranscriptStore {
	return &TranscriptStore{db: db}
}

// Add inserts a transcript and returns its id. Ingestion is idempotent by
// filename: if the filename already exists the existing id is returned, and
// a concurrent insert of the same filename resolves by re-querying rather
// than failing.
func (s *TranscriptStore) Add(filename, date, timestamp, engine, filePath, content string) (int64, error) {
	wordCount := len(strings.Fields(content))

	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO transcripts (filename, date, timestamp, engine, file_path, content, word_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, filename, date, timestamp, engine, filePath, content, wordCount)
	if err != nil {
		return 0, storageErr("add transcript", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("add transcript", err)
	}
	if affected > 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return 0, storageErr("add transcript", err)
		}
		return id, nil
	}

	// Duplicate filename: return the existing id
	var id int64
	if err := s.db.QueryRow("SELECT id FROM transcripts WHERE filename = ?", filename).Scan(&id); err != nil {
		return 0, storageErr("add transcript", fmt.Errorf("duplicate lookup for %s: %w", filename, err))
	}
	return id, nil
}

// GetByID retrieves a transcript by id, or nil when it does not exist
func (s *TranscriptStore) GetByID(id int64) (*models.Document, error) {
	doc, err := s.scanOne(s.db.QueryRow(`
		SELECT id, filename, date, timestamp, engine, file_path, content, word_count, created_at
		FROM transcripts WHERE id = ?
	`, id))
	if err != nil {
		return nil, storageErr("get transcript", err)
	}
	return doc, nil
}

// GetByFilename retrieves a transcript by filename, or nil when it does not exist
func (s *TranscriptStore) GetByFilename(filename string) (*models.Document, error) {
	doc, err := s.scanOne(s.db.QueryRow(`
		SELECT id, filename, date, timestamp, engine, file_path, content, word_count, created_at
		FROM transcripts WHERE filename = ?
	`, filename))
	if err != nil {
		return nil, storageErr("get transcript", err)
	}
	return doc, nil
}

// All returns every transcript ordered by id
func (s *TranscriptStore) All() ([]models.Document, error) {
	rows, err := s.db.Query(`
		SELECT id, filename, date, timestamp, engine, file_path, content, word_count, created_at
		FROM transcripts ORDER BY id ASC
	`)
	if err != nil {
		return nil, storageErr("list transcripts", err)
	}
	defer func() { _ = rows.Close() }()

	docs, err := s.scanAll(rows)
	if err != nil {
		return nil, storageErr("list transcripts", err)
	}
	return docs, nil
}

// WithoutChunks returns transcripts that have no embedded chunks yet
func (s *TranscriptStore) WithoutChunks() ([]models.Document, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.filename, t.date, t.timestamp, t.engine, t.file_path, t.content, t.word_count, t.created_at
		FROM transcripts t
		LEFT JOIN chunks c ON t.id = c.transcript_id
		WHERE c.transcript_id IS NULL
		ORDER BY t.id ASC
	`)
	if err != nil {
		return nil, storageErr("list transcripts without chunks", err)
	}
	defer func() { _ = rows.Close() }()

	docs, err := s.scanAll(rows)
	if err != nil {
		return nil, storageErr("list transcripts without chunks", err)
	}
	return docs, nil
}

// Stats returns aggregate statistics. An empty store yields zero counts
// and empty dates rather than an error.
func (s *TranscriptStore) Stats() (*models.Stats, error) {
	stats := &models.Stats{Classifications: make(map[string]int64)}

	var earliest, latest sql.NullString
	var totalWords sql.NullInt64
	err := s.db.QueryRow(`
		SELECT COUNT(*), MIN(date), MAX(date), SUM(word_count) FROM transcripts
	`).Scan(&stats.TotalDocuments, &earliest, &latest, &totalWords)
	if err != nil {
		return nil, storageErr("stats", err)
	}
	if earliest.Valid {
		stats.EarliestDate = earliest.String
	}
	if latest.Valid {
		stats.LatestDate = latest.String
	}
	if totalWords.Valid {
		stats.TotalWords = totalWords.Int64
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM analysis").Scan(&stats.TotalAnalyses); err != nil {
		return nil, storageErr("stats", err)
	}

	rows, err := s.db.Query(`
		SELECT classification, COUNT(*)
		FROM analysis
		WHERE classification != ''
		GROUP BY classification
	`)
	if err != nil {
		return nil, storageErr("stats", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var classification string
		var count int64
		if err := rows.Scan(&classification, &count); err != nil {
			return nil, storageErr("stats", err)
		}
		stats.Classifications[classification] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("stats", err)
	}

	return stats, nil
}

// scanOne scans a single transcript row, mapping sql.ErrNoRows to nil
func (s *TranscriptStore) scanOne(row *sql.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(&doc.ID, &doc.Filename, &doc.Date, &doc.Timestamp,
		&doc.OriginEngine, &doc.FilePath, &doc.Content, &doc.WordCount, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// scanAll scans transcript rows
func (s *TranscriptStore) scanAll(rows *sql.Rows) ([]models.Document, error) {
	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Date, &doc.Timestamp,
			&doc.OriginEngine, &doc.FilePath, &doc.Content, &doc.WordCount, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

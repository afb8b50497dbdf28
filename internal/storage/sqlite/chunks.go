// ABOUTME: Chunk storage with binary vector encoding for the semantic index
// ABOUTME: Chunk sets are replaced atomically so a document never has a partial chunk set
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"math"

	"github.com/harper/recall-standalone/internal/models"
)

// ChunkStore handles embedded chunk persistence
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// StoredChunk is a chunk joined with its document and latest analysis,
// as loaded for a similarity scan.
type StoredChunk struct {
	TranscriptID    int64
	ChunkIndex      int
	ChunkText       string
	Embedding       []float64
	Filename        string
	Date            string
	Timestamp       string
	Content         string
	AnalysisSummary string
	ActionItems     []string
	Tags            []string
}

// Replace atomically swaps the chunk set for a transcript: existing chunks
// are deleted and the new set inserted in one transaction, so a crash
// cannot leave a partial chunk set behind.
func (s *ChunkStore) Replace(transcriptID int64, chunks []models.Chunk) error {
	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("replace chunks", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM chunks WHERE transcript_id = ?", transcriptID); err != nil {
		return storageErr("replace chunks", err)
	}

	for _, c := range chunks {
		if _, err := tx.Exec(`
			INSERT INTO chunks (transcript_id, chunk_index, chunk_text, embedding)
			VALUES (?, ?, ?, ?)
		`, transcriptID, c.ChunkIndex, c.ChunkText, vectorToBlob(c.Embedding)); err != nil {
			return storageErr("replace chunks", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("replace chunks", err)
	}
	return nil
}

// HasChunks reports whether a transcript already has embedded chunks
func (s *ChunkStore) HasChunks(transcriptID int64) (bool, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM chunks WHERE transcript_id = ?", transcriptID).Scan(&count)
	if err != nil {
		return false, storageErr("has chunks", err)
	}
	return count > 0, nil
}

// ByTranscript returns a transcript's chunks in index order
func (s *ChunkStore) ByTranscript(transcriptID int64) ([]models.Chunk, error) {
	rows, err := s.db.Query(`
		SELECT transcript_id, chunk_index, chunk_text, embedding, created_at
		FROM chunks
		WHERE transcript_id = ?
		ORDER BY chunk_index ASC
	`, transcriptID)
	if err != nil {
		return nil, storageErr("get chunks", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []models.Chunk
	for rows.Next() {
		var (
			c    models.Chunk
			blob []byte
		)
		if err := rows.Scan(&c.TranscriptID, &c.ChunkIndex, &c.ChunkText, &blob, &c.CreatedAt); err != nil {
			return nil, storageErr("get chunks", err)
		}
		c.Embedding = blobToVector(blob)
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get chunks", err)
	}
	return chunks, nil
}

// ForSimilarity returns all chunks joined with document metadata and the
// latest analysis, optionally pre-filtered by document date range. Empty
// date bounds are not applied.
func (s *ChunkStore) ForSimilarity(dateFrom, dateTo string) ([]StoredChunk, error) {
	query := `
		SELECT c.transcript_id, c.chunk_index, c.chunk_text, c.embedding,
		       t.filename, t.date, t.timestamp, t.content,
		       COALESCE(a.summary, ''), COALESCE(a.action_items, '[]'), COALESCE(a.tags, '[]')
		FROM chunks c
		JOIN transcripts t ON c.transcript_id = t.id
		LEFT JOIN analysis a ON a.id = (
			SELECT MAX(id) FROM analysis WHERE transcript_id = t.id
		)
	`
	var (
		conditions []string
		args       []interface{}
	)
	if dateFrom != "" {
		conditions = append(conditions, "t.date >= ?")
		args = append(args, dateFrom)
	}
	if dateTo != "" {
		conditions = append(conditions, "t.date <= ?")
		args = append(args, dateTo)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("scan chunks", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []StoredChunk
	for rows.Next() {
		var (
			c           StoredChunk
			blob        []byte
			actionItems string
			tags        string
		)
		if err := rows.Scan(&c.TranscriptID, &c.ChunkIndex, &c.ChunkText, &blob,
			&c.Filename, &c.Date, &c.Timestamp, &c.Content,
			&c.AnalysisSummary, &actionItems, &tags); err != nil {
			return nil, storageErr("scan chunks", err)
		}
		c.Embedding = blobToVector(blob)
		if err := decodeStringList(actionItems, &c.ActionItems); err != nil {
			return nil, storageErr("scan chunks", err)
		}
		if err := decodeStringList(tags, &c.Tags); err != nil {
			return nil, storageErr("scan chunks", err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("scan chunks", err)
	}
	return chunks, nil
}

// Stats returns semantic index coverage statistics
func (s *ChunkStore) Stats() (*models.EmbeddingStats, error) {
	stats := &models.EmbeddingStats{}

	var avgLen sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT COUNT(DISTINCT transcript_id), COUNT(*), AVG(LENGTH(chunk_text)) FROM chunks
	`).Scan(&stats.DocumentsWithChunks, &stats.TotalChunks, &avgLen)
	if err != nil {
		return nil, storageErr("chunk stats", err)
	}
	if avgLen.Valid {
		stats.AvgChunkLength = avgLen.Float64
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM transcripts").Scan(&stats.TotalDocuments); err != nil {
		return nil, storageErr("chunk stats", err)
	}
	if stats.TotalDocuments > 0 {
		stats.CoveragePercent = float64(stats.DocumentsWithChunks) / float64(stats.TotalDocuments) * 100
	}

	return stats, nil
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

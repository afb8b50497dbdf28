// ABOUTME: Tests for embedding generation and batch indexing
// ABOUTME: Uses a stub provider to verify incremental behavior, forcing, and cancellation
package core

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

// stubProvider is a deterministic in-test embedding provider
type stubProvider struct {
	dim      int
	calls    atomic.Int64
	failWith error
}

func (p *stubProvider) Embed(_ context.Context, text string) ([]float64, error) {
	p.calls.Add(1)
	if p.failWith != nil {
		return nil, p.failWith
	}
	vector := make([]float64, p.dim)
	for i := range vector {
		vector[i] = float64(len(text)%7) + float64(i)
	}
	return vector, nil
}

func (p *stubProvider) Dimension() int { return p.dim }
func (p *stubProvider) Name() string   { return "stub" }

func newTestIndexer(t *testing.T) (*Indexer, *sqlite.DB, *stubProvider) {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	provider := &stubProvider{dim: 8}
	return NewIndexer(db, provider, NewChunker(100, 20)), db, provider
}

func TestIndexer_GenerateEmbeddings(t *testing.T) {
	ix, db, _ := newTestIndexer(t)
	transcripts := sqlite.NewTranscriptStore(db)
	chunks := sqlite.NewChunkStore(db)

	content := strings.Repeat("interesting notes about the project ", 10)
	id, err := transcripts.Add("doc.txt", "2026-08-30", "", "manual", "", content)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	generated, err := ix.GenerateEmbeddings(context.Background(), id, content, false)
	if err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}
	if len(generated) < 2 {
		t.Fatalf("generated %d chunks, want several for long content", len(generated))
	}

	stored, err := chunks.ByTranscript(id)
	if err != nil {
		t.Fatalf("ByTranscript() error = %v", err)
	}
	if len(stored) != len(generated) {
		t.Errorf("stored %d chunks, generated %d", len(stored), len(generated))
	}
	for _, c := range stored {
		if len(c.Embedding) != 8 {
			t.Errorf("chunk %d embedding dimension = %d, want 8", c.ChunkIndex, len(c.Embedding))
		}
	}
}

func TestIndexer_SkipsAlreadyEmbedded(t *testing.T) {
	ix, db, provider := newTestIndexer(t)
	transcripts := sqlite.NewTranscriptStore(db)

	content := strings.Repeat("note content here and there ", 10)
	id, _ := transcripts.Add("doc.txt", "2026-08-30", "", "manual", "", content)

	if _, err := ix.GenerateEmbeddings(context.Background(), id, content, false); err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}
	callsAfterFirst := provider.calls.Load()

	generated, err := ix.GenerateEmbeddings(context.Background(), id, content, false)
	if err != nil {
		t.Fatalf("GenerateEmbeddings() second run error = %v", err)
	}
	if generated != nil {
		t.Errorf("second run generated %d chunks, want skip", len(generated))
	}
	if provider.calls.Load() != callsAfterFirst {
		t.Error("provider was called again for an already-embedded transcript")
	}
}

func TestIndexer_ForceRegenerate(t *testing.T) {
	ix, db, provider := newTestIndexer(t)
	transcripts := sqlite.NewTranscriptStore(db)

	content := strings.Repeat("regenerate me please without fail ", 10)
	id, _ := transcripts.Add("doc.txt", "2026-08-30", "", "manual", "", content)

	if _, err := ix.GenerateEmbeddings(context.Background(), id, content, false); err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}
	callsAfterFirst := provider.calls.Load()

	generated, err := ix.GenerateEmbeddings(context.Background(), id, content, true)
	if err != nil {
		t.Fatalf("GenerateEmbeddings() forced error = %v", err)
	}
	if len(generated) == 0 {
		t.Error("forced run generated no chunks")
	}
	if provider.calls.Load() == callsAfterFirst {
		t.Error("forced run did not call the provider")
	}
}

func TestIndexer_SkipsTrivialChunks(t *testing.T) {
	ix, db, _ := newTestIndexer(t)
	transcripts := sqlite.NewTranscriptStore(db)

	// Short content is a single chunk below the embed threshold
	id, _ := transcripts.Add("tiny.txt", "2026-08-30", "", "manual", "", "ok")

	generated, err := ix.GenerateEmbeddings(context.Background(), id, "ok", false)
	if err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}
	if len(generated) != 0 {
		t.Errorf("generated %d chunks for trivial content, want 0", len(generated))
	}
}

func TestIndexer_BatchConvergesOnTrivialDocuments(t *testing.T) {
	ix, db, provider := newTestIndexer(t)
	transcripts := sqlite.NewTranscriptStore(db)

	// A document whose only chunk is below the embed threshold stores no
	// chunk rows, so the chunks table alone cannot mark it done
	if _, err := transcripts.Add("tiny.txt", "2026-08-30", "", "manual", "", "ok"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	stats, err := ix.BatchGenerateEmbeddings(context.Background(), false)
	if err != nil {
		t.Fatalf("BatchGenerateEmbeddings() error = %v", err)
	}
	if stats.Processed != 1 {
		t.Errorf("Processed = %d, want 1", stats.Processed)
	}
	if provider.calls.Load() != 0 {
		t.Errorf("provider calls = %d, want 0 for trivial content", provider.calls.Load())
	}

	// Later incremental batches must not pick the document up again
	stats, err = ix.BatchGenerateEmbeddings(context.Background(), false)
	if err != nil {
		t.Fatalf("BatchGenerateEmbeddings() second run error = %v", err)
	}
	if stats.Processed != 0 {
		t.Errorf("second run Processed = %d, want 0", stats.Processed)
	}
}

func TestIndexer_BatchGenerateEmbeddings(t *testing.T) {
	ix, db, _ := newTestIndexer(t)
	transcripts := sqlite.NewTranscriptStore(db)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := transcripts.Add(name, "2026-08-30", "", "manual", "",
			strings.Repeat("batch document content ", 8)); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	stats, err := ix.BatchGenerateEmbeddings(context.Background(), false)
	if err != nil {
		t.Fatalf("BatchGenerateEmbeddings() error = %v", err)
	}
	if stats.Processed != 3 {
		t.Errorf("Processed = %d, want 3", stats.Processed)
	}
	if stats.EmbeddingsGenerated == 0 {
		t.Error("EmbeddingsGenerated = 0, want some")
	}
	if stats.Errors != 0 {
		t.Errorf("Errors = %d, want 0", stats.Errors)
	}

	// Second incremental run has nothing to do
	stats, err = ix.BatchGenerateEmbeddings(context.Background(), false)
	if err != nil {
		t.Fatalf("BatchGenerateEmbeddings() second run error = %v", err)
	}
	if stats.Processed != 0 {
		t.Errorf("second run Processed = %d, want 0", stats.Processed)
	}
}

func TestIndexer_BatchCountsErrors(t *testing.T) {
	ix, db, provider := newTestIndexer(t)
	transcripts := sqlite.NewTranscriptStore(db)

	if _, err := transcripts.Add("doc.txt", "2026-08-30", "", "manual", "",
		strings.Repeat("content that should embed ", 8)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	provider.failWith = errors.New("provider down")

	stats, err := ix.BatchGenerateEmbeddings(context.Background(), false)
	if err != nil {
		t.Fatalf("BatchGenerateEmbeddings() error = %v", err)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if stats.Processed != 0 {
		t.Errorf("Processed = %d, want 0", stats.Processed)
	}
}

func TestIndexer_BatchHonorsCancellation(t *testing.T) {
	ix, db, _ := newTestIndexer(t)
	transcripts := sqlite.NewTranscriptStore(db)

	if _, err := transcripts.Add("doc.txt", "2026-08-30", "", "manual", "",
		strings.Repeat("cancel before processing ", 8)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := ix.BatchGenerateEmbeddings(ctx, false)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("BatchGenerateEmbeddings() error = %v, want context.Canceled", err)
	}
	if stats == nil {
		t.Fatal("stats should be returned even when cancelled")
	}
	if stats.Processed != 0 {
		t.Errorf("Processed = %d, want 0 after immediate cancel", stats.Processed)
	}
}

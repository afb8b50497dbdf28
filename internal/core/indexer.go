// ABOUTME: Indexer generates and persists chunk embeddings for transcripts
// ABOUTME: Per-document locking serializes regeneration; batches are interruptible between documents
package core

import (
	"context"
	"log"
	"sync"

	"github.com/harper/recall-standalone/internal/llm"
	"github.com/harper/recall-standalone/internal/models"
	"github.com/harper/recall-standalone/internal/storage/sqlite"
)

// Indexer owns the semantic index write path: chunking, embedding and
// atomic chunk replacement.
type Indexer struct {
	transcripts *sqlite.TranscriptStore
	chunks      *sqlite.ChunkStore
	provider    llm.EmbeddingProvider
	chunker     *Chunker

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
	// indexed remembers transcripts this indexer has already handled. A
	// document whose chunks are all below MinEmbedLength stores zero rows,
	// so the chunks table alone cannot mark it done.
	indexed map[int64]bool
}

// NewIndexer creates an Indexer over the given store and embedding provider
func NewIndexer(db *sqlite.DB, provider llm.EmbeddingProvider, chunker *Chunker) *Indexer {
	if chunker == nil {
		chunker = NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	}
	return &Indexer{
		transcripts: sqlite.NewTranscriptStore(db),
		chunks:      sqlite.NewChunkStore(db),
		provider:    provider,
		chunker:     chunker,
		locks:       make(map[int64]*sync.Mutex),
		indexed:     make(map[int64]bool),
	}
}

// Provider returns the embedding provider bound to this index instance
func (ix *Indexer) Provider() llm.EmbeddingProvider {
	return ix.provider
}

// GenerateEmbeddings chunks content, embeds each non-trivial chunk, and
// persists the chunk set for the transcript. Without forceRegenerate it is
// additive only: a transcript that already has chunks is left untouched.
// With forceRegenerate the existing chunk set is replaced atomically.
// Embeddings are computed before any store mutation, so no write lock is
// held while waiting on the provider.
func (ix *Indexer) GenerateEmbeddings(ctx context.Context, transcriptID int64, content string, forceRegenerate bool) ([]models.Chunk, error) {
	lock := ix.documentLock(transcriptID)
	lock.Lock()
	defer lock.Unlock()

	if !forceRegenerate {
		has, err := ix.chunks.HasChunks(transcriptID)
		if err != nil {
			return nil, err
		}
		if has {
			ix.markIndexed(transcriptID)
			return nil, nil
		}
	}

	var generated []models.Chunk
	for i, text := range ix.chunker.Chunk(content) {
		if !Embeddable(text) {
			continue
		}

		vector, err := ix.provider.Embed(ctx, text)
		if err != nil {
			return nil, err
		}

		generated = append(generated, models.Chunk{
			TranscriptID: transcriptID,
			ChunkIndex:   i,
			ChunkText:    text,
			Embedding:    vector,
		})
	}

	if err := ix.chunks.Replace(transcriptID, generated); err != nil {
		return nil, err
	}
	ix.markIndexed(transcriptID)
	return generated, nil
}

// BatchGenerateEmbeddings embeds every transcript lacking chunks (or every
// transcript when forcing). Transcripts already handled by this indexer
// are skipped, including those whose chunks were all too short to store,
// so repeated incremental batches converge. A per-document failure is
// logged and counted, and the batch continues. Cancellation is honored
// between documents, so an interrupted batch leaves every processed
// document fully indexed.
func (ix *Indexer) BatchGenerateEmbeddings(ctx context.Context, forceRegenerate bool) (*models.BatchStats, error) {
	var (
		docs []models.Document
		err  error
	)
	if forceRegenerate {
		docs, err = ix.transcripts.All()
	} else {
		docs, err = ix.transcripts.WithoutChunks()
	}
	if err != nil {
		return nil, err
	}

	stats := &models.BatchStats{}
	log.Printf("Generating embeddings for %d transcripts", len(docs))

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		if !forceRegenerate && ix.wasIndexed(doc.ID) {
			continue
		}

		generated, err := ix.GenerateEmbeddings(ctx, doc.ID, doc.Content, forceRegenerate)
		if err != nil {
			log.Printf("Error generating embeddings for transcript %d: %v", doc.ID, err)
			stats.Errors++
			continue
		}

		stats.Processed++
		stats.EmbeddingsGenerated += len(generated)

		if stats.Processed%10 == 0 {
			log.Printf("Processed %d/%d transcripts", stats.Processed, len(docs))
		}
	}

	return stats, nil
}

func (ix *Indexer) markIndexed(transcriptID int64) {
	ix.mu.Lock()
	ix.indexed[transcriptID] = true
	ix.mu.Unlock()
}

func (ix *Indexer) wasIndexed(transcriptID int64) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.indexed[transcriptID]
}

// documentLock returns the mutex serializing writes for one transcript
func (ix *Indexer) documentLock(transcriptID int64) *sync.Mutex {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	lock, ok := ix.locks[transcriptID]
	if !ok {
		lock = &sync.Mutex{}
		ix.locks[transcriptID] = lock
	}
	return lock
}

package indexer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/config"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/embeddings"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/vectordb"
)

// Pipeline orchestrates a full ingestion run:
// load -> chunk -> embed -> upload -> persist.
type Pipeline struct {
	embedder   embeddings.Embedder
	store      vectordb.VectorStore
	cfg        *config.Config
	onProgress ProgressFunc
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(embedder embeddings.Embedder, store vectordb.VectorStore, cfg *config.Config) *Pipeline {
	return &Pipeline{
		embedder: embedder,
		store:    store,
		cfg:      cfg,
	}
}

// SetProgressFunc sets the embedding progress callback.
func (p *Pipeline) SetProgressFunc(fn ProgressFunc) {
	p.onProgress = fn
}

// Run ingests the documents file at docsPath and persists the store to the
// configured data directory. Any embedding or upload failure aborts the run
// without a partial write making it into the persisted store.
func (p *Pipeline) Run(ctx context.Context, docsPath string) (*RunResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	log.Printf("indexer: run %s starting (docs=%s)", runID, docsPath)

	docs, skipped, err := LoadDocuments(docsPath)
	if err != nil {
		return nil, err
	}
	log.Printf("indexer: run %s loaded %d documents (%d skipped)", runID, len(docs), skipped)

	chunker := NewChunker(p.cfg.ChunkSize, p.cfg.ChunkOverlap)
	var chunks []Chunk
	for i, doc := range docs {
		chunks = append(chunks, chunker.ChunkDocument(doc, i)...)
	}
	log.Printf("indexer: run %s created %d chunks", runID, len(chunks))

	batcher := NewBatcher(p.cfg.MaxConcurrency, p.embedder, p.onProgress)
	vectors, err := batcher.EmbedChunks(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	writer := NewWriter(p.store, p.cfg.UploadBatchSize)
	batches, err := writer.Upload(ctx, chunks, vectors)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	if err := p.store.Persist(ctx, p.cfg.DataDir); err != nil {
		return nil, fmt.Errorf("run %s: persisting store: %w", runID, err)
	}

	result := &RunResult{
		RunID:       runID,
		DocsLoaded:  len(docs),
		DocsSkipped: skipped,
		ChunksTotal: len(chunks),
		BatchesSent: batches,
		Duration:    time.Since(start),
	}
	log.Printf("indexer: run %s complete (%d chunks, %d batches, %s)",
		runID, result.ChunksTotal, result.BatchesSent, result.Duration.Round(time.Millisecond))
	return result, nil
}

package indexer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/embeddings"
)

// Batcher embeds chunks concurrently with bounded parallelism. Each chunk
// retries independently inside the embedder; a chunk that still fails after
// its retries fails the whole batch, because silently skipping it would
// desynchronize the chunk and embedding counts the writer depends on.
type Batcher struct {
	concurrency int
	embedder    embeddings.Embedder
	onProgress  ProgressFunc
}

// NewBatcher creates a new Batcher with the given concurrency limit.
func NewBatcher(concurrency int, embedder embeddings.Embedder, onProgress ProgressFunc) *Batcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Batcher{
		concurrency: concurrency,
		embedder:    embedder,
		onProgress:  onProgress,
	}
}

// EmbedChunks returns one embedding per chunk, aligned by index.
func (b *Batcher) EmbedChunks(ctx context.Context, chunks []Chunk) ([][]float32, error) {
	total := len(chunks)
	if total == 0 {
		return nil, nil
	}

	// First failure cancels the remaining work.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, total)
	sem := make(chan struct{}, b.concurrency)

	var (
		mu        sync.Mutex
		firstErr  error
		processed int64
		wg        sync.WaitGroup
	)

	for i, chunk := range chunks {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
		}

		mu.Lock()
		failed := firstErr != nil
		mu.Unlock()
		if failed || ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(idx int, c Chunk) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := b.embedder.Embed(ctx, []string{c.Content})
			if err == nil && len(result) != 1 {
				err = fmt.Errorf("embedder returned %d vectors for one chunk", len(result))
			}

			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("embedding chunk %s (%s #%d): %w", c.ID, c.Source, c.ChunkID, err)
				}
				mu.Unlock()
				cancel()
				return
			}

			vectors[idx] = result[0]

			count := atomic.AddInt64(&processed, 1)
			if b.onProgress != nil {
				b.onProgress(int(count), total, c.ID)
			}
		}(i, chunk)
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return vectors, nil
}

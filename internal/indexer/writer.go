package indexer

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/vectordb"
)

var moduleMarker = regexp.MustCompile(`(?i)(?:module|mod)[\s_-]*(\d+)`)

// moduleFromSource recovers a module number from the source filename, or ""
// when the filename carries none. Either way the field stays a string.
func moduleFromSource(source string) string {
	m := moduleMarker.FindStringSubmatch(source)
	if m == nil {
		return ""
	}
	return m[1]
}

// CountMismatchError reports a divergence between the number of chunks and
// the number of embeddings handed to the writer. It is fatal: uploading a
// misaligned batch would silently attach the wrong vectors to chunks.
type CountMismatchError struct {
	Chunks     int
	Embeddings int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("chunk count %d does not match embedding count %d", e.Chunks, e.Embeddings)
}

// Writer uploads embedded chunks to the vector store in fixed-size batches.
type Writer struct {
	store     vectordb.VectorStore
	batchSize int
}

// NewWriter creates a Writer that uploads in batches of batchSize records.
func NewWriter(store vectordb.VectorStore, batchSize int) *Writer {
	if batchSize <= 0 {
		batchSize = 300
	}
	return &Writer{store: store, batchSize: batchSize}
}

// Upload upserts chunks and their embeddings, paired by index. The counts
// must match before any store call happens; batches go out sequentially so
// the upload order in the logs is deterministic.
func (w *Writer) Upload(ctx context.Context, chunks []Chunk, vectors [][]float32) (int, error) {
	if len(chunks) != len(vectors) {
		return 0, &CountMismatchError{Chunks: len(chunks), Embeddings: len(vectors)}
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	batches := 0
	for i := 0; i < len(chunks); i += w.batchSize {
		end := i + w.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		records := make([]vectordb.Record, 0, end-i)
		for j := i; j < end; j++ {
			records = append(records, vectordb.Record{
				ID:        chunks[j].ID,
				Content:   chunks[j].Content,
				Embedding: vectors[j],
				Metadata:  chunkMetadata(chunks[j]),
			})
		}

		log.Printf("indexer: uploading batch %d-%d of %d", i, end, len(chunks))
		if err := w.store.Upsert(ctx, records); err != nil {
			return batches, fmt.Errorf("uploading batch starting at %d: %w", i, err)
		}
		batches++
	}

	return batches, nil
}

// chunkMetadata builds the sanitized metadata for a chunk. Every field is a
// string; absent values become "" because the store rejects nulls.
func chunkMetadata(c Chunk) vectordb.Metadata {
	return vectordb.Metadata{
		Source: c.Source,
		PDFURL: "/pdf/" + c.Source,
		Module: moduleFromSource(c.Source),
	}
}

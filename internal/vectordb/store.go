package vectordb

import "context"

// VectorStore defines the interface for storing and querying embedded chunks.
type VectorStore interface {
	// Upsert adds or overwrites records by ID. Re-uploading the same ID
	// replaces the prior content, which makes ingestion safely re-runnable.
	Upsert(ctx context.Context, records []Record) error

	// QueryEmbedding returns the k nearest neighbors of the given vector,
	// ranked by similarity, with document text and metadata included.
	QueryEmbedding(ctx context.Context, embedding []float32, k int) ([]SearchResult, error)

	// Persist saves the store's data to the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the store's data from the given directory.
	Load(ctx context.Context, dir string) error

	// Count returns the total number of records in the store.
	Count() int
}

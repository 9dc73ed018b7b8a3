package indexer

import "time"

// Document is a single extracted document: the output of the external
// text extractor, consumed immediately by the chunker.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Chunk is one bounded text window cut from a document. Chunks are created
// once per ingestion run and never mutated afterwards.
type Chunk struct {
	ID       string `json:"id"`        // content-addressed: sha1 of source, position, and content
	Source   string `json:"source"`    // filename the chunk came from
	DocIndex int    `json:"doc_index"` // position of the document in the run
	ChunkID  int    `json:"chunk_id"`  // position of the chunk within its document
	Content  string `json:"content"`
}

// RunResult summarizes the outcome of a full ingestion run.
type RunResult struct {
	RunID        string
	DocsLoaded   int
	DocsSkipped  int
	ChunksTotal  int
	BatchesSent  int
	Duration     time.Duration
}

// ProgressFunc is called during batch embedding to report progress.
type ProgressFunc func(processed int, total int, chunkID string)

package vectordb

// Metadata holds the per-chunk fields persisted alongside each vector.
// Every field marshals to a plain string: the store rejects null metadata
// values, so absent fields are empty strings, never nil.
type Metadata struct {
	Source string // filename the chunk came from
	PDFURL string // retrievable link for the frontend
	Module string // module number as a string, or ""
}

// Record is one upsertable unit: a chunk of text, its precomputed
// embedding, and its sanitized metadata.
type Record struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  Metadata
}

// SearchResult pairs a stored record with its similarity score.
type SearchResult struct {
	ID         string
	Content    string
	Metadata   Metadata
	Similarity float32
}

// metadataToMap converts Metadata to the flat string map the store expects.
func metadataToMap(m Metadata) map[string]string {
	return map[string]string{
		"source":  m.Source,
		"pdf_url": m.PDFURL,
		"module":  m.Module,
	}
}

// mapToMetadata converts a flat string map back to Metadata.
func mapToMetadata(m map[string]string) Metadata {
	return Metadata{
		Source: m["source"],
		PDFURL: m["pdf_url"],
		Module: m["module"],
	}
}

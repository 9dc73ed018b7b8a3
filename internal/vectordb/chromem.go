package vectordb

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/embeddings"
)

// ChromemStore implements VectorStore using chromem-go.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates a new in-memory ChromemStore with the given
// collection name. The embedder is only consulted when a record arrives
// without a precomputed embedding.
func NewChromemStore(name string, embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(name, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		name:       name,
		embedFunc:  ef,
	}, nil
}

func (s *ChromemStore) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(records))
	for i, rec := range records {
		docs[i] = chromem.Document{
			ID:        rec.ID,
			Content:   rec.Content,
			Embedding: rec.Embedding,
			Metadata:  metadataToMap(rec.Metadata),
		}
	}

	return s.collection.AddDocuments(ctx, docs, 1)
}

func (s *ChromemStore) QueryEmbedding(ctx context.Context, embedding []float32, k int) ([]SearchResult, error) {
	if k <= 0 {
		k = 5
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	searchResults := make([]SearchResult, len(results))
	for i, r := range results {
		searchResults[i] = SearchResult{
			ID:         r.ID,
			Content:    r.Content,
			Metadata:   mapToMetadata(r.Metadata),
			Similarity: r.Similarity,
		}
	}

	return searchResults, nil
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	return s.db.ExportToFile(dir+"/chromem.gob.gz", true, "")
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	err := s.db.ImportFromFile(dir+"/chromem.gob.gz", "")
	if err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(s.name, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", s.name)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

package vectordb

import (
	"context"
	"testing"
)

// unitEmbedder maps each text to a fixed axis-aligned unit vector, so
// nearest-neighbor results are fully deterministic.
type unitEmbedder struct {
	axes map[string]int
}

func (e *unitEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, 4)
		vec[e.axes[text]] = 1
		result[i] = vec
	}
	return result, nil
}

func (e *unitEmbedder) Dimensions() int { return 4 }
func (e *unitEmbedder) Name() string    { return "unit" }

func axis(i int) []float32 {
	vec := make([]float32, 4)
	vec[i] = 1
	return vec
}

func testRecords() []Record {
	return []Record{
		{
			ID:        "chunk-os",
			Content:   "process scheduling",
			Embedding: axis(0),
			Metadata:  Metadata{Source: "os module 1.pdf", PDFURL: "/pdf/os module 1.pdf", Module: "1"},
		},
		{
			ID:        "chunk-dbms",
			Content:   "relational algebra",
			Embedding: axis(1),
			Metadata:  Metadata{Source: "dbms module 2.pdf", PDFURL: "/pdf/dbms module 2.pdf", Module: "2"},
		},
		{
			ID:        "chunk-cn",
			Content:   "tcp handshake",
			Embedding: axis(2),
			Metadata:  Metadata{Source: "cn notes.pdf", PDFURL: "/pdf/cn notes.pdf", Module: ""},
		},
	}
}

func newTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore("rag_academic_docs", &unitEmbedder{})
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	return store
}

func TestUpsertAndQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, testRecords()); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if store.Count() != 3 {
		t.Fatalf("expected 3 records, got %d", store.Count())
	}

	results, err := store.QueryEmbedding(ctx, axis(1), 2)
	if err != nil {
		t.Fatalf("QueryEmbedding: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	top := results[0]
	if top.ID != "chunk-dbms" {
		t.Errorf("expected chunk-dbms first, got %s", top.ID)
	}
	if top.Content != "relational algebra" {
		t.Errorf("unexpected content: %q", top.Content)
	}
	if top.Metadata.Source != "dbms module 2.pdf" {
		t.Errorf("unexpected source: %q", top.Metadata.Source)
	}
	if top.Metadata.PDFURL != "/pdf/dbms module 2.pdf" {
		t.Errorf("unexpected pdf url: %q", top.Metadata.PDFURL)
	}
	if top.Metadata.Module != "2" {
		t.Errorf("unexpected module: %q", top.Metadata.Module)
	}
}

func TestUpsertOverwritesByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, testRecords()); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Same ID, new content: re-ingestion must replace, not duplicate.
	updated := []Record{{
		ID:        "chunk-os",
		Content:   "updated scheduling notes",
		Embedding: axis(0),
		Metadata:  Metadata{Source: "os module 1.pdf"},
	}}
	if err := store.Upsert(ctx, updated); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if store.Count() != 3 {
		t.Errorf("expected 3 records after overwrite, got %d", store.Count())
	}

	results, err := store.QueryEmbedding(ctx, axis(0), 1)
	if err != nil {
		t.Fatalf("QueryEmbedding: %v", err)
	}
	if results[0].Content != "updated scheduling notes" {
		t.Errorf("overwrite did not take: %q", results[0].Content)
	}
}

func TestQueryEmptyStore(t *testing.T) {
	store := newTestStore(t)

	results, err := store.QueryEmbedding(context.Background(), axis(0), 5)
	if err != nil {
		t.Fatalf("QueryEmbedding: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results from empty store, got %v", results)
	}
}

func TestQueryClampsK(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, testRecords()); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	results, err := store.QueryEmbedding(ctx, axis(0), 50)
	if err != nil {
		t.Fatalf("QueryEmbedding with oversized k: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestPersistAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := newTestStore(t)
	if err := store.Upsert(ctx, testRecords()); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Persist(ctx, dir); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	reloaded := newTestStore(t)
	if err := reloaded.Load(ctx, dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Count() != 3 {
		t.Fatalf("expected 3 records after reload, got %d", reloaded.Count())
	}

	results, err := reloaded.QueryEmbedding(ctx, axis(2), 1)
	if err != nil {
		t.Fatalf("QueryEmbedding: %v", err)
	}
	if results[0].ID != "chunk-cn" {
		t.Errorf("expected chunk-cn, got %s", results[0].ID)
	}
	if results[0].Metadata.Source != "cn notes.pdf" {
		t.Errorf("metadata lost in round trip: %q", results[0].Metadata.Source)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	meta := Metadata{Source: "os.pdf", PDFURL: "/pdf/os.pdf", Module: ""}
	m := metadataToMap(meta)

	// Absent module stays an empty string in the map, never missing.
	if v, ok := m["module"]; !ok || v != "" {
		t.Errorf("module key must be present and empty, got %q %v", v, ok)
	}

	if got := mapToMetadata(m); got != meta {
		t.Errorf("round trip changed metadata: %+v", got)
	}
}

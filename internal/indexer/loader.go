package indexer

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// LoadDocuments reads the extractor's output file: a JSON array of
// {name, text} objects. Entries with no name or no usable text are logged
// and skipped; a corrupt document costs zero chunks, never the run.
func LoadDocuments(path string) ([]Document, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading documents file %s: %w", path, err)
	}

	var docs []Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, 0, fmt.Errorf("parsing documents file %s: %w", path, err)
	}

	valid := docs[:0]
	skipped := 0
	for _, doc := range docs {
		if doc.Name == "" {
			log.Printf("indexer: skipping unnamed document")
			skipped++
			continue
		}
		if strings.TrimSpace(doc.Text) == "" {
			log.Printf("indexer: skipping empty document: %s", doc.Name)
			skipped++
			continue
		}
		valid = append(valid, doc)
	}

	return valid, skipped, nil
}

package indexer

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
)

// boundaries are tried in order when choosing where to end a window:
// paragraph break, line break, sentence end, word gap. If none lands in
// the acceptable range the window is cut at the size limit.
var boundaries = []string{"\n\n", "\n", ". ", " "}

// Chunker splits extracted text into overlapping windows. Given the same
// input it always produces the same windows and the same chunk IDs, which
// is what makes re-ingestion an idempotent upsert.
type Chunker struct {
	Size    int // target window size in bytes
	Overlap int // bytes carried over into the next window
}

// NewChunker creates a Chunker with the given window size and overlap.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 1200
	}
	if overlap < 0 || overlap >= size {
		overlap = 200
	}
	return &Chunker{Size: size, Overlap: overlap}
}

// ChunkDocument splits a document into chunks tagged with their position.
// Empty or whitespace-only documents produce zero chunks. docIndex is the
// position of the document within the ingestion run.
func (c *Chunker) ChunkDocument(doc Document, docIndex int) []Chunk {
	text := strings.TrimSpace(doc.Text)
	if text == "" {
		return nil
	}

	// Normalize the source to a bare filename regardless of how the
	// extractor spelled the path.
	source := path.Base(strings.ReplaceAll(doc.Name, "\\", "/"))

	windows := c.Split(text)
	chunks := make([]Chunk, 0, len(windows))
	for i, w := range windows {
		chunks = append(chunks, Chunk{
			ID:       chunkID(source, docIndex, i, w),
			Source:   source,
			DocIndex: docIndex,
			ChunkID:  i,
			Content:  w,
		})
	}
	return chunks
}

// Split cuts text into overlapping windows of at most c.Size bytes,
// preferring to end each window at a paragraph, line, sentence, or word
// boundary before falling back to a hard cut.
func (c *Chunker) Split(text string) []string {
	if len(text) <= c.Size {
		return []string{text}
	}

	var windows []string
	start := 0
	for start < len(text) {
		end := start + c.Size
		if end >= len(text) {
			windows = append(windows, text[start:])
			break
		}

		cut := c.findCut(text, start, end)
		windows = append(windows, text[start:cut])

		next := cut - c.Overlap
		if next <= start {
			// Guarantee forward progress even when the window is
			// smaller than the overlap.
			next = cut
		}
		start = next
	}
	return windows
}

// findCut picks the cut point for a window spanning [start, limit).
// It searches backwards from the limit for the strongest boundary that
// still leaves the window at least half full, then falls back to a hard
// (rune-safe) cut at the limit.
func (c *Chunker) findCut(text string, start, limit int) int {
	minCut := start + c.Size/2
	window := text[start:limit]

	for _, sep := range boundaries {
		if idx := strings.LastIndex(window, sep); idx >= 0 {
			cut := start + idx + len(sep)
			if cut > minCut {
				return cut
			}
		}
	}

	// Hard cut: back off so a multi-byte rune is never split.
	cut := limit
	for cut > minCut && !isRuneStart(text[cut]) {
		cut--
	}
	return cut
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// chunkID derives the content-addressed chunk identity. The hash input
// includes the chunk's position, so duplicate content in the same run
// still yields distinct IDs.
func chunkID(source string, docIndex, chunkIndex int, content string) string {
	h := sha1.Sum([]byte(fmt.Sprintf("%s:%d:%d:%s", source, docIndex, chunkIndex, content)))
	return hex.EncodeToString(h[:])
}

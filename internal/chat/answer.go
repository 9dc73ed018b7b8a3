package chat

import (
	"context"
	"log"
	"path"
	"strings"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/catalog"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/embeddings"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/llm"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/vectordb"
)

// Source identifies the notes file an answer was grounded on.
type Source struct {
	Label string
	Link  string
}

// Answerer runs the retrieval-augmented answer path: embed the question,
// pull the nearest chunks, and ask the model to answer strictly from them.
type Answerer struct {
	embedder embeddings.Embedder
	store    vectordb.VectorStore
	provider llm.Provider
	model    string
	topK     int
}

// NewAnswerer wires the retrieval path together. topK values below 1 fall
// back to 5.
func NewAnswerer(embedder embeddings.Embedder, store vectordb.VectorStore, provider llm.Provider, model string, topK int) *Answerer {
	if topK < 1 {
		topK = 5
	}
	return &Answerer{embedder: embedder, store: store, provider: provider, model: model, topK: topK}
}

// Answer returns the grounded answer text plus the source of the top
// retrieved chunk. Every failure along the path degrades to the sentinel
// rather than an error: a broken retrieval pipeline must never turn into a
// hallucinated answer. The source is nil when nothing was retrieved, when
// the model replied with the sentinel, or when the catalog has no entry for
// the chunk's file.
func (a *Answerer) Answer(ctx context.Context, question string, cat *catalog.Catalog) (string, *Source) {
	vectors, err := a.embedder.Embed(ctx, []string{question})
	if err != nil || len(vectors) == 0 {
		log.Printf("chat: question embedding failed: %v", err)
		return NotFoundAnswer, nil
	}

	results, err := a.store.QueryEmbedding(ctx, vectors[0], a.topK)
	if err != nil {
		log.Printf("chat: retrieval failed: %v", err)
		return NotFoundAnswer, nil
	}
	if len(results) == 0 {
		return NotFoundAnswer, nil
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Content
	}
	contextBlock := CleanContext(strings.Join(texts, "\n"))
	if contextBlock == "" {
		return NotFoundAnswer, nil
	}

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model: a.model,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: groundedPrompt(question, contextBlock)},
		},
		Temperature: 0,
	})
	if err != nil {
		log.Printf("chat: grounded completion failed: %v", err)
		return NotFoundAnswer, nil
	}

	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		return NotFoundAnswer, nil
	}
	if strings.Contains(strings.ToLower(answer), NotFoundAnswer) {
		return NotFoundAnswer, nil
	}

	return answer, a.attribute(results[0].Metadata.Source, cat)
}

// attribute maps the retrieved chunk's file back through the catalog. The
// label is the bare file name without its extension; the link comes from
// the catalog entry. A catalog miss keeps the label and leaves the link
// empty, so the answer still names its file.
func (a *Answerer) attribute(source string, cat *catalog.Catalog) *Source {
	if source == "" {
		return nil
	}

	base := path.Base(source)
	label := strings.TrimSuffix(base, path.Ext(base))

	link := ""
	if cat != nil {
		var ok bool
		if _, link, ok = cat.FindByName(source); !ok {
			log.Printf("chat: no catalog entry for source %q", source)
		}
	}
	return &Source{Label: label, Link: link}
}

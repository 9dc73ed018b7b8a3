package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/catalog"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/config"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/llm"
)

// Response is the assistant's reply to one question. SourceLabel and
// SourceLink are nil whenever the answer is not grounded on a specific
// file, which serializes to JSON null.
type Response struct {
	Question    string  `json:"question"`
	Answer      string  `json:"answer"`
	SourceLabel *string `json:"source_label"`
	SourceLink  *string `json:"source_link"`
}

// Engine routes a question through intent classification to one of four
// handlers. It holds no per-conversation state; every call stands alone.
type Engine struct {
	classifier *Classifier
	resolver   Resolver
	answerer   *Answerer
	provider   llm.Provider
	model      string
	catalog    *catalog.Catalog
	subjects   []config.SubjectRule
}

// NewEngine assembles the full chat pipeline.
func NewEngine(classifier *Classifier, answerer *Answerer, provider llm.Provider, model string, cat *catalog.Catalog, subjects []config.SubjectRule) *Engine {
	return &Engine{
		classifier: classifier,
		answerer:   answerer,
		provider:   provider,
		model:      model,
		catalog:    cat,
		subjects:   subjects,
	}
}

// Respond answers a question. It never returns an error: every internal
// failure degrades to a safe canned answer so the caller always has
// something to show the student.
func (e *Engine) Respond(ctx context.Context, question string) *Response {
	resp := &Response{Question: question}

	question = strings.TrimSpace(question)
	if question == "" {
		resp.Answer = scopeReminder
		return resp
	}

	intent := e.classifier.Classify(ctx, question)
	log.Printf("chat: intent=%s question=%q", intent, question)

	switch intent {
	case IntentSmallTalk:
		resp.Answer = e.smallTalk(ctx, question)
	case IntentDirectNotes:
		e.directNotes(question, resp)
	case IntentNotesQuery:
		answer, source := e.answerer.Answer(ctx, question, e.catalog)
		resp.Answer = answer
		if source != nil {
			resp.SourceLabel = &source.Label
			if source.Link != "" {
				resp.SourceLink = &source.Link
			}
		}
	default:
		resp.Answer = scopeReminder
	}

	return resp
}

// smallTalk hands the message to the model with the casual persona. A
// failed call falls back to a canned greeting instead of surfacing the
// error to the student.
func (e *Engine) smallTalk(ctx context.Context, question string) string {
	r, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model: e.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: smallTalkSystemPrompt},
			{Role: llm.RoleUser, Content: question},
		},
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("chat: small talk completion failed: %v", err)
		return smallTalkFallback
	}
	answer := strings.TrimSpace(r.Content)
	if answer == "" {
		return smallTalkFallback
	}
	return answer
}

// directNotes resolves the requested file and fills in the response. The
// resolver always finds something when the catalog is non-empty; the
// sentinel only appears when there is nothing to search.
func (e *Engine) directNotes(question string, resp *Response) {
	filters := ExtractFilters(question, e.subjects)
	p, link, ok := e.resolver.Resolve(question, filters, e.catalog)
	if !ok {
		resp.Answer = NotFoundAnswer
		return
	}

	resp.Answer = fmt.Sprintf("%s\n%s", directNotesAck, p)
	resp.SourceLabel = &p
	resp.SourceLink = &link
}

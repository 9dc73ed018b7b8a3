package chat

import (
	"context"
	"log"
	"strings"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/llm"
)

// Intent is the routing decision for an incoming question. Exactly one of
// four mutually exclusive intents is chosen per request; nothing is carried
// between requests.
type Intent string

const (
	IntentSmallTalk   Intent = "SMALL_TALK"
	IntentDirectNotes Intent = "DIRECT_NOTES_REQUEST"
	IntentNotesQuery  Intent = "NOTES_QUERY"
	IntentOther       Intent = "OTHER"
)

// intentLabels is the containment-check order for classifier output.
var intentLabels = []Intent{IntentSmallTalk, IntentDirectNotes, IntentNotesQuery, IntentOther}

// Classifier decides the intent of a question with a single generative
// call constrained to answer with one label.
type Classifier struct {
	provider llm.Provider
	model    string
}

// NewClassifier creates a Classifier backed by the given provider.
func NewClassifier(provider llm.Provider, model string) *Classifier {
	return &Classifier{provider: provider, model: model}
}

// Classify returns the intent for a question. A response that does not
// cleanly contain one of the known labels — or a failed model call —
// defaults to IntentOther, which routes to a harmless scope reminder.
func (c *Classifier) Classify(ctx context.Context, question string) Intent {
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Model: c.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: classifierSystemPrompt},
			{Role: llm.RoleUser, Content: question},
		},
		MaxTokens:   16,
		Temperature: 0,
	})
	if err != nil {
		log.Printf("chat: classification failed, defaulting to OTHER: %v", err)
		return IntentOther
	}

	return ParseIntent(resp.Content)
}

// ParseIntent normalizes a raw classifier response and matches it against
// the known labels by substring containment. The OTHER default is the
// safety net against verbose or malformed model output.
func ParseIntent(raw string) Intent {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, label := range intentLabels {
		if strings.Contains(normalized, string(label)) {
			return label
		}
	}
	return IntentOther
}

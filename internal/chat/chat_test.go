package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/catalog"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/config"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/llm"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/vectordb"
)

// --- Mock LLM Provider ---

// mockProvider replays scripted responses in call order.
type mockProvider struct {
	responses []string
	errs      []error
	calls     []llm.CompletionRequest
}

func (m *mockProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.calls = append(m.calls, req)
	idx := len(m.calls) - 1
	if idx < len(m.errs) && m.errs[idx] != nil {
		return nil, m.errs[idx]
	}
	content := ""
	if idx < len(m.responses) {
		content = m.responses[idx]
	}
	return &llm.CompletionResponse{Content: content}, nil
}

func (m *mockProvider) Name() string { return "mock" }

// --- Mock Embedder ---

type mockEmbedder struct {
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = []float32{1, 0, 0}
	}
	return result, nil
}

func (m *mockEmbedder) Dimensions() int { return 3 }
func (m *mockEmbedder) Name() string    { return "mock" }

// --- Mock Vector Store ---

type mockStore struct {
	results []vectordb.SearchResult
	err     error
}

func (m *mockStore) Upsert(_ context.Context, _ []vectordb.Record) error { return nil }

func (m *mockStore) QueryEmbedding(_ context.Context, _ []float32, k int) ([]vectordb.SearchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if k > len(m.results) {
		k = len(m.results)
	}
	return m.results[:k], nil
}

func (m *mockStore) Persist(_ context.Context, _ string) error { return nil }
func (m *mockStore) Load(_ context.Context, _ string) error    { return nil }
func (m *mockStore) Count() int                                { return len(m.results) }

// --- Fixtures ---

func testCatalog() *catalog.Catalog {
	return catalog.New(map[string]string{
		"3rd sem/os/os module 1.pdf":     "https://files.example.com/os1.pdf",
		"3rd sem/os/os module 2.pdf":     "https://files.example.com/os2.pdf",
		"3rd sem/dbms/dbms module 1.pdf": "https://files.example.com/dbms1.pdf",
		"4th sem/cn/cn module 3.pdf":     "https://files.example.com/cn3.pdf",
	})
}

// --- ParseIntent ---

func TestParseIntent(t *testing.T) {
	cases := map[string]Intent{
		"SMALL_TALK":                   IntentSmallTalk,
		" notes_query ":                IntentNotesQuery,
		"DIRECT_NOTES_REQUEST":         IntentDirectNotes,
		"The category is NOTES_QUERY.": IntentNotesQuery,
		"OTHER":                        IntentOther,
		"I cannot classify this":       IntentOther,
		"":                             IntentOther,
	}
	for raw, want := range cases {
		if got := ParseIntent(raw); got != want {
			t.Errorf("ParseIntent(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestClassifyDefaultsToOtherOnError(t *testing.T) {
	provider := &mockProvider{errs: []error{errors.New("model down")}}
	c := NewClassifier(provider, "test-model")

	if got := c.Classify(context.Background(), "anything"); got != IntentOther {
		t.Errorf("expected OTHER on provider failure, got %s", got)
	}
}

// --- Filters ---

func TestExtractFilters(t *testing.T) {
	subjects := config.DefaultSubjects

	cases := []struct {
		question string
		module   int // 0 means nil
		semester int // 0 means nil
		subject  string
	}{
		{"send me os module 2 notes", 2, 0, "os"},
		{"Module_3 of dbms please", 3, 0, "dbms"},
		{"mod-4 computer networks", 4, 0, "cn"},
		{"3rd sem operating system notes", 0, 3, "os"},
		{"1st semester maths", 0, 1, "maths"},
		{"hello there", 0, 0, ""},
	}

	for _, tc := range cases {
		f := ExtractFilters(tc.question, subjects)

		if tc.module == 0 && f.Module != nil {
			t.Errorf("%q: unexpected module %d", tc.question, *f.Module)
		}
		if tc.module != 0 && (f.Module == nil || *f.Module != tc.module) {
			t.Errorf("%q: expected module %d, got %v", tc.question, tc.module, f.Module)
		}
		if tc.semester == 0 && f.Semester != nil {
			t.Errorf("%q: unexpected semester %d", tc.question, *f.Semester)
		}
		if tc.semester != 0 && (f.Semester == nil || *f.Semester != tc.semester) {
			t.Errorf("%q: expected semester %d, got %v", tc.question, tc.semester, f.Semester)
		}
		if f.Subject != tc.subject {
			t.Errorf("%q: expected subject %q, got %q", tc.question, tc.subject, f.Subject)
		}
	}
}

// --- Resolver ---

func intPtr(n int) *int { return &n }

func TestResolveWithFilters(t *testing.T) {
	var r Resolver
	cat := testCatalog()

	path, link, ok := r.Resolve("send me os module 2 notes", Filters{Module: intPtr(2), Subject: "os"}, cat)
	if !ok {
		t.Fatal("expected a match")
	}
	if path != "3rd sem/os/os module 2.pdf" {
		t.Errorf("unexpected path: %q", path)
	}
	if link != "https://files.example.com/os2.pdf" {
		t.Errorf("unexpected link: %q", link)
	}
}

func TestResolveDiscardsFiltersWhenEmpty(t *testing.T) {
	var r Resolver
	cat := testCatalog()

	// Module 9 matches nothing; the filters must be dropped entirely and
	// the best fuzzy match over the full catalog returned.
	path, _, ok := r.Resolve("os module 9 notes", Filters{Module: intPtr(9), Subject: "os"}, cat)
	if !ok {
		t.Fatal("expected a match from the unfiltered catalog")
	}
	if path == "" {
		t.Error("expected a non-empty path")
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	var r Resolver

	if _, _, ok := r.Resolve("anything", Filters{}, catalog.New(nil)); ok {
		t.Error("empty catalog must not resolve")
	}
}

func TestResolveSemesterFilter(t *testing.T) {
	var r Resolver
	cat := testCatalog()

	path, _, ok := r.Resolve("4th sem cn notes", Filters{Semester: intPtr(4), Subject: "cn"}, cat)
	if !ok || path != "4th sem/cn/cn module 3.pdf" {
		t.Errorf("unexpected path: %q", path)
	}
}

func TestSimilarity(t *testing.T) {
	if got := similarity("abc", "abc"); got != 1 {
		t.Errorf("identical strings: got %v", got)
	}
	if got := similarity("", ""); got != 1 {
		t.Errorf("empty strings: got %v", got)
	}
	if got := similarity("abc", "xyz"); got != 0 {
		t.Errorf("disjoint strings: got %v", got)
	}
	if a, b := similarity("os module", "os module 1"), similarity("os module", "dbms module 1"); a <= b {
		t.Errorf("expected closer string to score higher: %v vs %v", a, b)
	}
}

// --- CleanContext ---

func TestCleanContext(t *testing.T) {
	in := "Thé quîck processes\n\n\nare scheduled   by  a\nb\nOS kernels"
	out := CleanContext(in)

	if strings.ContainsAny(out, "éî") {
		t.Errorf("non-ASCII survived: %q", out)
	}
	if strings.Contains(out, "\n\n") {
		t.Errorf("blank runs survived: %q", out)
	}
	if strings.Contains(out, "  ") {
		t.Errorf("space runs survived: %q", out)
	}
	if strings.Contains(out, " a\n") || strings.Contains(out, "\nb\n") {
		t.Errorf("short tokens survived: %q", out)
	}
}

func TestCleanContextEmpty(t *testing.T) {
	if got := CleanContext("  \n é  "); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

// --- Answerer ---

func osResults() []vectordb.SearchResult {
	return []vectordb.SearchResult{
		{
			ID:      "chunk1",
			Content: "A process is a program in execution. Scheduling decides which process runs next.",
			Metadata: vectordb.Metadata{
				Source: "os module 1.pdf",
				PDFURL: "/pdf/os module 1.pdf",
				Module: "1",
			},
			Similarity: 0.91,
		},
		{
			ID:         "chunk2",
			Content:    "Deadlock requires mutual exclusion, hold and wait, no preemption, and circular wait.",
			Metadata:   vectordb.Metadata{Source: "os module 2.pdf"},
			Similarity: 0.84,
		},
	}
}

func TestAnswerGrounded(t *testing.T) {
	provider := &mockProvider{responses: []string{"A process is a program in execution."}}
	a := NewAnswerer(&mockEmbedder{}, &mockStore{results: osResults()}, provider, "test-model", 5)

	answer, source := a.Answer(context.Background(), "what is a process?", testCatalog())
	if answer != "A process is a program in execution." {
		t.Errorf("unexpected answer: %q", answer)
	}
	if source == nil {
		t.Fatal("expected a source for a grounded answer")
	}
	if source.Label != "os module 1" {
		t.Errorf("expected label without extension, got %q", source.Label)
	}
	if source.Link != "https://files.example.com/os1.pdf" {
		t.Errorf("unexpected link: %q", source.Link)
	}

	// The prompt must carry the retrieved context, not raw chunks only.
	prompt := provider.calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Use ONLY the context below") {
		t.Error("grounded prompt rules missing")
	}
	if !strings.Contains(prompt, "what is a process?") {
		t.Error("question missing from prompt")
	}
}

func TestAnswerSentinelWhenModelSaysSo(t *testing.T) {
	provider := &mockProvider{responses: []string{`"` + NotFoundAnswer + `"`}}
	a := NewAnswerer(&mockEmbedder{}, &mockStore{results: osResults()}, provider, "test-model", 5)

	answer, source := a.Answer(context.Background(), "what is quantum entanglement?", testCatalog())
	if answer != NotFoundAnswer {
		t.Errorf("expected sentinel, got %q", answer)
	}
	if source != nil {
		t.Error("a not-found answer must carry no source")
	}
}

func TestAnswerSentinelOnEmptyStore(t *testing.T) {
	provider := &mockProvider{}
	a := NewAnswerer(&mockEmbedder{}, &mockStore{}, provider, "test-model", 5)

	answer, source := a.Answer(context.Background(), "anything", testCatalog())
	if answer != NotFoundAnswer {
		t.Errorf("expected sentinel, got %q", answer)
	}
	if source != nil {
		t.Error("expected no source")
	}
	if len(provider.calls) != 0 {
		t.Error("model must not be called without retrieved context")
	}
}

func TestAnswerSentinelOnEmbedFailure(t *testing.T) {
	a := NewAnswerer(&mockEmbedder{err: errors.New("quota")}, &mockStore{results: osResults()}, &mockProvider{}, "test-model", 5)

	if answer, _ := a.Answer(context.Background(), "anything", testCatalog()); answer != NotFoundAnswer {
		t.Errorf("expected sentinel on embed failure, got %q", answer)
	}
}

func TestAnswerSentinelOnModelFailure(t *testing.T) {
	provider := &mockProvider{errs: []error{errors.New("model down")}}
	a := NewAnswerer(&mockEmbedder{}, &mockStore{results: osResults()}, provider, "test-model", 5)

	if answer, _ := a.Answer(context.Background(), "anything", testCatalog()); answer != NotFoundAnswer {
		t.Errorf("expected sentinel on model failure, got %q", answer)
	}
}

func TestAnswerCatalogMiss(t *testing.T) {
	results := []vectordb.SearchResult{{
		ID:       "chunk1",
		Content:  "Relevant content about an uncataloged file.",
		Metadata: vectordb.Metadata{Source: "stray notes.pdf"},
	}}
	provider := &mockProvider{responses: []string{"Here is the answer."}}
	a := NewAnswerer(&mockEmbedder{}, &mockStore{results: results}, provider, "test-model", 5)

	answer, source := a.Answer(context.Background(), "anything", testCatalog())
	if answer != "Here is the answer." {
		t.Errorf("unexpected answer: %q", answer)
	}
	if source == nil {
		t.Fatal("catalog miss must keep the label")
	}
	if source.Label != "stray notes" {
		t.Errorf("unexpected label: %q", source.Label)
	}
	if source.Link != "" {
		t.Errorf("catalog miss must leave the link empty, got %q", source.Link)
	}
}

// --- Engine ---

func newTestEngine(provider *mockProvider, store *mockStore) *Engine {
	classifier := NewClassifier(provider, "test-model")
	answerer := NewAnswerer(&mockEmbedder{}, store, provider, "test-model", 5)
	return NewEngine(classifier, answerer, provider, "test-model", testCatalog(), config.DefaultSubjects)
}

func TestRespondDirectNotesRequest(t *testing.T) {
	provider := &mockProvider{responses: []string{"DIRECT_NOTES_REQUEST"}}
	engine := newTestEngine(provider, &mockStore{})

	resp := engine.Respond(context.Background(), "send me os module 2 notes")

	if resp.SourceLabel == nil || *resp.SourceLabel != "3rd sem/os/os module 2.pdf" {
		t.Fatalf("expected full catalog path as label, got %v", resp.SourceLabel)
	}
	if resp.SourceLink == nil || *resp.SourceLink != "https://files.example.com/os2.pdf" {
		t.Fatalf("expected catalog link, got %v", resp.SourceLink)
	}
	if !strings.Contains(resp.Answer, "3rd sem/os/os module 2.pdf") {
		t.Errorf("answer should name the file: %q", resp.Answer)
	}
}

func TestRespondNotesQuery(t *testing.T) {
	provider := &mockProvider{responses: []string{
		"NOTES_QUERY",
		"A process is a program in execution.",
	}}
	engine := newTestEngine(provider, &mockStore{results: osResults()})

	resp := engine.Respond(context.Background(), "what is a process?")

	if resp.Answer != "A process is a program in execution." {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
	if resp.SourceLabel == nil || *resp.SourceLabel != "os module 1" {
		t.Fatalf("expected basename label, got %v", resp.SourceLabel)
	}
}

func TestRespondNotesQueryNotFound(t *testing.T) {
	provider := &mockProvider{responses: []string{"NOTES_QUERY", NotFoundAnswer}}
	engine := newTestEngine(provider, &mockStore{results: osResults()})

	resp := engine.Respond(context.Background(), "who won the world cup?")

	if resp.Answer != NotFoundAnswer {
		t.Errorf("expected sentinel, got %q", resp.Answer)
	}
	if resp.SourceLabel != nil || resp.SourceLink != nil {
		t.Error("not-found responses must carry null source fields")
	}
}

func TestRespondSmallTalk(t *testing.T) {
	provider := &mockProvider{responses: []string{"SMALL_TALK", "Hey! Ready when you are."}}
	engine := newTestEngine(provider, &mockStore{})

	resp := engine.Respond(context.Background(), "hi there!")

	if resp.Answer != "Hey! Ready when you are." {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
	if resp.SourceLabel != nil {
		t.Error("small talk must not cite a source")
	}
}

func TestRespondSmallTalkFallback(t *testing.T) {
	provider := &mockProvider{
		responses: []string{"SMALL_TALK"},
		errs:      []error{nil, errors.New("model down")},
	}
	engine := newTestEngine(provider, &mockStore{})

	resp := engine.Respond(context.Background(), "hello")
	if resp.Answer != smallTalkFallback {
		t.Errorf("expected canned fallback, got %q", resp.Answer)
	}
}

func TestRespondOther(t *testing.T) {
	provider := &mockProvider{responses: []string{"OTHER"}}
	engine := newTestEngine(provider, &mockStore{})

	resp := engine.Respond(context.Background(), "write me a poem about trucks")
	if resp.Answer != scopeReminder {
		t.Errorf("expected scope reminder, got %q", resp.Answer)
	}
}

func TestRespondEmptyQuestion(t *testing.T) {
	provider := &mockProvider{}
	engine := newTestEngine(provider, &mockStore{})

	resp := engine.Respond(context.Background(), "   ")
	if resp.Answer != scopeReminder {
		t.Errorf("expected scope reminder, got %q", resp.Answer)
	}
	if len(provider.calls) != 0 {
		t.Error("blank questions must not reach the model")
	}
}

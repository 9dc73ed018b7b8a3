package llm

import (
	"context"
	"sync"
	"testing"
)

// MockProvider records calls and returns canned responses.
type MockProvider struct {
	mu       sync.Mutex
	Calls    []CompletionRequest
	Response *CompletionResponse
	Err      error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		Response: &CompletionResponse{
			Content:      "mock response",
			InputTokens:  10,
			OutputTokens: 20,
			Model:        "mock-model",
			FinishReason: "stop",
		},
	}
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// --- Tests ---

func TestRateLimitedProviderPassesThrough(t *testing.T) {
	mock := NewMockProvider()
	limited := NewRateLimitedProvider(mock, 60)

	if limited.Name() != "mock" {
		t.Errorf("Name not passed through: %q", limited.Name())
	}

	resp, err := limited.Complete(context.Background(), CompletionRequest{
		Model:    "test-model",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "mock response" {
		t.Errorf("unexpected content: %q", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRateLimitedProviderWithinBudget(t *testing.T) {
	mock := NewMockProvider()
	limited := NewRateLimitedProvider(mock, 10)

	// The bucket starts full, so the first rpm calls must not block.
	for i := 0; i < 10; i++ {
		if _, err := limited.Complete(context.Background(), CompletionRequest{Model: "m"}); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if mock.CallCount() != 10 {
		t.Errorf("expected 10 calls, got %d", mock.CallCount())
	}
}

func TestRateLimitedProviderRespectsCancellation(t *testing.T) {
	mock := NewMockProvider()
	limited := NewRateLimitedProvider(mock, 1)

	// Drain the bucket.
	if _, err := limited.Complete(context.Background(), CompletionRequest{Model: "m"}); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := limited.Complete(ctx, CompletionRequest{Model: "m"}); err == nil {
		t.Fatal("expected error on canceled context while throttled")
	}
	if mock.CallCount() != 1 {
		t.Errorf("throttled call must not reach the provider, got %d calls", mock.CallCount())
	}
}

func TestNewProviderUnsupported(t *testing.T) {
	if _, err := NewProvider("mystery", "some-model"); err == nil {
		t.Error("expected error for unsupported provider type")
	}
}

func TestNewProviderMissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := NewProvider("google", "gemini-2.0-flash"); err == nil {
		t.Error("expected error when GEMINI_API_KEY is unset")
	}

	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewProvider("openai", "gpt-4o"); err == nil {
		t.Error("expected error when OPENAI_API_KEY is unset")
	}
}

func TestNewProviderOllamaNeedsNoKey(t *testing.T) {
	p, err := NewProvider("ollama", "llama3")
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p == nil {
		t.Fatal("expected a provider")
	}
}

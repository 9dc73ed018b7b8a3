package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/shashikiranbs2006/yoru-chatbot/internal/config"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/embeddings"
	"github.com/shashikiranbs2006/yoru-chatbot/internal/llm"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `yoru init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config,
// wrapped with the configured retry policy. Shared by ingest, serve, and ask.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}

	var inner embeddings.Embedder
	switch provider {
	case config.ProviderGoogle:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderGoogle))
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required for Google embeddings")
		}
		inner = embeddings.NewGoogleEmbedder(apiKey, embeddings.GoogleModel(cfg.EmbeddingModel))
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		inner = embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel))
	case config.ProviderOllama:
		inner = embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, 768, "")
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}

	policy := embeddings.RetryPolicy{
		MaxAttempts: cfg.EmbedRetries,
		Delay:       time.Duration(cfg.EmbedRetryDelay) * time.Second,
	}
	return embeddings.NewRetryEmbedder(inner, policy), nil
}

// createLLMProviderFromConfig creates an LLM provider based on config
// settings, rate limited when llm_rpm is set.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.LLMRateLimit > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.LLMRateLimit)
	}
	return provider, nil
}

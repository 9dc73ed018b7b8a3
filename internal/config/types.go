package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderGoogle ProviderType = "google"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// SubjectRule maps a subject name to the keywords that identify it in a query.
// Order matters: the first rule with a keyword hit wins.
type SubjectRule struct {
	Name     string   `yaml:"name" koanf:"name"`
	Keywords []string `yaml:"keywords" koanf:"keywords"`
}

// Config is the top-level yoru configuration, corresponding to .yoru.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`

	// Vector store.
	Collection string `yaml:"collection" koanf:"collection"`
	DataDir    string `yaml:"data_dir" koanf:"data_dir"`

	// Ingestion.
	ChunkSize       int `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap    int `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	UploadBatchSize int `yaml:"upload_batch_size" koanf:"upload_batch_size"`
	MaxConcurrency  int `yaml:"max_concurrency" koanf:"max_concurrency"`
	EmbedRetries    int `yaml:"embed_retries" koanf:"embed_retries"`
	EmbedRetryDelay int `yaml:"embed_retry_delay_seconds" koanf:"embed_retry_delay_seconds"`

	// Catalog and file serving.
	CatalogFile  string `yaml:"catalog_file" koanf:"catalog_file"`
	FilesDir     string `yaml:"files_dir" koanf:"files_dir"`
	FilesBaseURL string `yaml:"files_base_url" koanf:"files_base_url"`

	// Query serving.
	Port int `yaml:"port" koanf:"port"`
	TopK int `yaml:"top_k" koanf:"top_k"`

	// Requests per minute allowed against the LLM; 0 means unlimited.
	LLMRateLimit int `yaml:"llm_rpm" koanf:"llm_rpm"`

	// Subject table for the filter extractor and fuzzy resolver.
	Subjects []SubjectRule `yaml:"subjects" koanf:"subjects"`
}

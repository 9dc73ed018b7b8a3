package config

// DefaultSubjects is the built-in subject keyword table. Each entry maps a
// catalog subject to the phrasings students actually use for it. The order
// is significant: the first subject with a keyword hit wins.
var DefaultSubjects = []SubjectRule{
	{Name: "os", Keywords: []string{"os", "operating system"}},
	{Name: "dsa", Keywords: []string{"dsa", "data structure", "algorithm"}},
	{Name: "dbms", Keywords: []string{"dbms", "database"}},
	{Name: "cn", Keywords: []string{"cn", "computer network", "networking"}},
	{Name: "sfh", Keywords: []string{"sfh", "smart farming"}},
	{Name: "maths", Keywords: []string{"maths", "math", "calculus", "linear algebra"}},
	{Name: "physics", Keywords: []string{"physics"}},
	{Name: "chemistry", Keywords: []string{"chemistry"}},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGoogle,
		Model:             "gemini-2.0-flash",
		EmbeddingProvider: ProviderGoogle,
		EmbeddingModel:    "text-embedding-004",

		Collection: "rag_academic_docs",
		DataDir:    "data",

		ChunkSize:       1200,
		ChunkOverlap:    200,
		UploadBatchSize: 300,
		MaxConcurrency:  4,
		EmbedRetries:    5,
		EmbedRetryDelay: 2,

		CatalogFile:  "file_index.json",
		FilesDir:     "downloaded_files",
		FilesBaseURL: "http://localhost:3000/files",

		Port: 4000,
		TopK: 5,

		Subjects: DefaultSubjects,
	}
}

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Stages with their own
	// timeout setting use it as the fallback default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "researchmate/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CollectConfig holds settings for the paper collection stage.
type CollectConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults caps the number of candidates requested per provider (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// ArxivTimeout bounds a single arXiv request (default 10s).
	ArxivTimeout time.Duration `json:"arxiv_timeout" yaml:"arxiv_timeout"`

	// SemanticScholarTimeout bounds a single Semantic Scholar request (default 15s).
	SemanticScholarTimeout time.Duration `json:"semantic_scholar_timeout" yaml:"semantic_scholar_timeout"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`
}

// EmbeddingConfig holds settings for the embedding provider.
type EmbeddingConfig struct {
	// Model is the embedding model identifier (default "text-embedding-004").
	Model string `json:"model" yaml:"model"`

	// Dimension is the expected vector length (default 768). Degraded
	// embeddings are zero vectors of this length.
	Dimension int `json:"dimension" yaml:"dimension"`

	// APIKey authenticates against the embedding API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// StoreConfig holds settings for the persistent vector store.
type StoreConfig struct {
	// Dir is the directory holding the store database (default "vectorstore").
	Dir string `json:"dir" yaml:"dir"`

	// Collection names the document collection (default "researchmate_papers").
	Collection string `json:"collection" yaml:"collection"`
}

// PapersConfig holds settings for PDF acquisition.
type PapersConfig struct {
	HTTPConfig `yaml:",inline"`

	// Dir is the directory for downloaded PDFs (default "data/papers").
	Dir string `json:"dir" yaml:"dir"`

	// RequestsPerSecond throttles downloads against provider hosts (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// SummaryConfig holds settings for the generative synthesis stage.
type SummaryConfig struct {
	// Model is the generative model identifier (default "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the generative API. Required for any
	// flow that uses synthesis; absence is a startup error there.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Collect   CollectConfig   `json:"collect" yaml:"collect"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Papers    PapersConfig    `json:"papers" yaml:"papers"`
	Summary   SummaryConfig   `json:"summary" yaml:"summary"`
}

package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// SupportsEmbeddings returns true if the provider exposes an embedding model.
func (p AIProvider) SupportsEmbeddings() bool {
	return p == AIProviderOllama || p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// DefaultEmbeddingDimensions is the embedding size shared by every tier.
const DefaultEmbeddingDimensions = 384

// DefaultCollectionName is the vector collection used when none is configured.
const DefaultCollectionName = "ecommerce_docs"

// EmbeddingSettings holds embedding provider configuration.
// An unconfigured provider leaves the hash embedder as the only source of vectors.
type EmbeddingSettings struct {
	Provider   AIProvider `validate:"omitempty,oneof=ollama openai"`
	Model      string
	BaseURL    string `validate:"omitempty,url"`
	APIKey     string
	Dimensions int `validate:"gt=0"`
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.SupportsEmbeddings() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds text-generation provider configuration.
type LLMSettings struct {
	Provider AIProvider `validate:"omitempty,oneof=ollama openai anthropic"`
	Model    string
	BaseURL  string `validate:"omitempty,url"`
	APIKey   string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// VectorStoreSettings configures the remote and local vector store tiers.
type VectorStoreSettings struct {
	// URI is the remote vector service endpoint. Empty disables the remote tier.
	URI string `validate:"omitempty,url"`

	// Token is the bearer token for the remote service.
	Token string

	// Collection is the collection name used by every tier.
	Collection string `validate:"required"`

	// LocalPath is the JSON file backing the local tier.
	LocalPath string `validate:"required"`

	// TimeoutSeconds bounds each remote request.
	TimeoutSeconds int `validate:"gte=2,lte=60"`

	// RequestsPerSecond limits remote calls.
	RequestsPerSecond float64 `validate:"gt=0"`
}

// RemoteConfigured reports whether the remote tier has an endpoint.
func (v VectorStoreSettings) RemoteConfigured() bool {
	return v.URI != ""
}

// RetrievalSettings tunes the retrieval pipeline.
type RetrievalSettings struct {
	TopK      int `validate:"gte=1,lte=50"`
	MaxTokens int `validate:"gt=0"`
}

// ChunkingSettings configures the text chunker, counted in words.
type ChunkingSettings struct {
	MaxWords int `validate:"gt=0,gtfield=MinWords"`
	MinWords int `validate:"gte=0"`
	Overlap  int `validate:"gte=0,ltfield=MaxWords"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	Embedding   EmbeddingSettings
	LLM         LLMSettings
	VectorStore VectorStoreSettings
	Retrieval   RetrievalSettings
	Chunking    ChunkingSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Providers are left unconfigured; the pipeline runs on hash embeddings,
// local and default tiers, and passage fallback answers until they are set.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Dimensions: DefaultEmbeddingDimensions,
		},
		LLM: LLMSettings{},
		VectorStore: VectorStoreSettings{
			Collection:        DefaultCollectionName,
			LocalPath:         "data/vector_database.json",
			TimeoutSeconds:    30,
			RequestsPerSecond: 5,
		},
		Retrieval: RetrievalSettings{
			TopK:      DefaultTopK,
			MaxTokens: 300,
		},
		Chunking: ChunkingSettings{
			MaxWords: 500,
			MinWords: 200,
			Overlap:  50,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support text generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns 384-dimension models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-3.5-turbo",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
	}
}

// PipelineConfig names the chunking stages and their settings.
type PipelineConfig struct {
	// Processors lists stage names in run order.
	Processors []string

	// ProcessorConfigs is keyed by stage name. A stage without an entry
	// runs with its defaults.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns the settings for one stage, or nil.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFor chunks with the given bounds, then drops chunks whose
// text repeats earlier in the same document.
func PipelineConfigFor(c ChunkingSettings) PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker", "dedupe"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"max_words": c.MaxWords,
				"min_words": c.MinWords,
				"overlap":   c.Overlap,
			},
		},
	}
}

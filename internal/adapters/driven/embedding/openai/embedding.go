// Package openai provides an embedding service adapter for the OpenAI API.
// Vectors are requested at the store dimension through the dimensions parameter.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/shopdesk/internal/adapters/driven/ai/apiclient"
	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "text-embedding-3-small"
	DefaultTimeout = 60 * time.Second
)

// reducibleModels accept the dimensions request parameter.
var reducibleModels = map[string]bool{
	"text-embedding-3-small": true,
	"text-embedding-3-large": true,
}

// fixedDimensions lists models whose output size cannot be reduced.
var fixedDimensions = map[string]int{
	"text-embedding-ada-002": 1536,
}

// Config holds configuration for the OpenAI embedding service.
type Config struct {
	// APIKey is required.
	APIKey string

	// BaseURL may point at any OpenAI compatible endpoint.
	BaseURL string

	Model   string
	Timeout time.Duration

	// Dimensions is the requested vector size. Models that cannot reduce
	// their output report their native size, which the fallback wrapper
	// then rejects.
	Dimensions int
}

// EmbeddingService embeds batches of text through /embeddings.
type EmbeddingService struct {
	api        *apiclient.Client
	model      string
	dimensions int
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// NewEmbeddingService creates an OpenAI embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required: %w", domain.ErrInvalidInput)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	dimensions := cfg.Dimensions
	if dimensions <= 0 {
		dimensions = domain.DefaultEmbeddingDimensions
	}
	if fixed, ok := fixedDimensions[cfg.Model]; ok {
		dimensions = fixed
	}

	return &EmbeddingService{
		api:        apiclient.New("openai", cfg.BaseURL, cfg.Timeout, apiclient.WithBearerToken(cfg.APIKey)),
		model:      cfg.Model,
		dimensions: dimensions,
	}, nil
}

// Embed returns the vector for a single text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch embeds texts in one request. Results come back in input order
// regardless of the order the API lists them in.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := embeddingRequest{Model: s.model, Input: texts}
	if reducibleModels[s.model] {
		req.Dimensions = s.dimensions
	}

	var resp embeddingResponse
	if err := s.api.Post(ctx, "/embeddings", req, &resp); err != nil {
		return nil, err
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("openai: embedding index %d out of range", d.Index)
		}
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		out[d.Index] = vec
	}

	for i, vec := range out {
		if len(vec) == 0 {
			return nil, fmt.Errorf("openai: no embedding for text %d: %w", i, domain.ErrEmbeddingUnavailable)
		}
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int { return s.dimensions }

// ModelName returns the embedding model.
func (s *EmbeddingService) ModelName() string { return s.model }

// Ping retrieves the model record, which checks the key and the model name
// without spending tokens.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/models/"+s.model, nil)
}

// Close releases idle connections.
func (s *EmbeddingService) Close() error {
	s.api.Close()
	return nil
}

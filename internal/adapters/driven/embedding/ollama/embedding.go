// Package ollama provides an embedding service adapter for a local Ollama server.
package ollama

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

// Default configuration values. all-minilm produces 384-dimension vectors,
// matching every vector store tier.
const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultModel      = "all-minilm"
	DefaultTimeout    = 30 * time.Second
	DefaultDimensions = domain.DefaultEmbeddingDimensions
)

// Config holds configuration for the Ollama embedding service.
type Config struct {
	BaseURL    string
	Model      string
	Timeout    time.Duration
	Dimensions int
}

// EmbeddingService embeds text one prompt at a time through /api/embeddings.
type EmbeddingService struct {
	api        *apiclient.Client
	model      string
	dimensions int
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// NewEmbeddingService creates an Ollama embedding service. Zero config
// fields take their defaults.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}

	return &EmbeddingService{
		api:        apiclient.New("ollama", cfg.BaseURL, cfg.Timeout),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

// Embed returns the vector for text. A response of the wrong size is
// reported as ErrDimensionMismatch.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp embedResponse
	if err := s.api.Post(ctx, "/api/embeddings", embedRequest{Model: s.model, Prompt: text}, &resp); err != nil {
		return nil, err
	}

	switch n := len(resp.Embedding); {
	case n == 0:
		return nil, fmt.Errorf("ollama: empty embedding for model %s: %w", s.model, domain.ErrEmbeddingUnavailable)
	case n != s.dimensions:
		return nil, fmt.Errorf("ollama: model %s returned %d dimensions, want %d: %w",
			s.model, n, s.dimensions, domain.ErrDimensionMismatch)
	}

	vec := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// EmbedBatch embeds texts sequentially; the endpoint has no batch form.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		out = append(out, vec)
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int { return s.dimensions }

// ModelName returns the embedding model.
func (s *EmbeddingService) ModelName() string { return s.model }

// Ping checks that the server is up and the model has been pulled.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return apiclient.RequireOllamaModel(ctx, s.api, s.model)
}

// Close releases idle connections.
func (s *EmbeddingService) Close() error {
	s.api.Close()
	return nil
}

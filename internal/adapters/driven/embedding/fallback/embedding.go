// Package fallback wraps an embedding provider with the hash embedder.
package fallback

import (
	"context"
	"fmt"

	"github.com/custodia-labs/shopdesk/internal/adapters/driven/embedding/hash"
	"github.com/custodia-labs/shopdesk/internal/adapters/driven/metrics"
	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService returns the primary provider's vectors when it answers
// with the configured dimension, and hash vectors otherwise. It never
// returns an error.
type EmbeddingService struct {
	primary    driven.EmbeddingService
	hash       *hash.EmbeddingService
	dimensions int
	metrics    driven.RetrievalMetrics
}

// Option configures the fallback service.
type Option func(*EmbeddingService)

// WithMetrics records every fallback.
func WithMetrics(m driven.RetrievalMetrics) Option {
	return func(s *EmbeddingService) {
		s.metrics = metrics.OrNop(m)
	}
}

// NewEmbeddingService wraps primary, which may be nil. Vectors must have
// the given dimension; non-positive values use the default of 384.
func NewEmbeddingService(primary driven.EmbeddingService, dimensions int, opts ...Option) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = domain.DefaultEmbeddingDimensions
	}

	s := &EmbeddingService{
		primary:    primary,
		hash:       hash.NewEmbeddingService(dimensions),
		dimensions: dimensions,
		metrics:    metrics.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Embed returns the primary embedding, or the hash vector on failure.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.primary != nil {
		vec, err := s.primary.Embed(ctx, text)
		if err = s.check(err, vec); err == nil {
			return vec, nil
		}
		s.fallback(err)
	}
	return s.hash.Embed(ctx, text)
}

// EmbedBatch embeds all texts with the primary provider. Any failure in
// the batch switches the whole batch to hash vectors so a store never
// mixes vector spaces within one insert.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if s.primary != nil {
		vecs, err := s.primary.EmbedBatch(ctx, texts)
		if err == nil && len(vecs) != len(texts) {
			err = fmt.Errorf("got %d embeddings for %d texts: %w", len(vecs), len(texts), domain.ErrEmbeddingUnavailable)
		}
		for i := 0; err == nil && i < len(vecs); i++ {
			err = s.check(nil, vecs[i])
		}
		if err == nil {
			return vecs, nil
		}
		s.fallback(err)
	}
	return s.hash.EmbedBatch(ctx, texts)
}

func (s *EmbeddingService) check(err error, vec []float32) error {
	if err != nil {
		return err
	}
	if len(vec) != s.dimensions {
		return fmt.Errorf("expected %d dimensions, got %d: %w", s.dimensions, len(vec), domain.ErrDimensionMismatch)
	}
	return nil
}

func (s *EmbeddingService) fallback(err error) {
	logger.Warn("embedding provider %s failed, using hash embedding: %v", s.primary.ModelName(), err)
	s.metrics.EmbeddingFallback()
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the primary model name, or the hash pseudo-model.
func (s *EmbeddingService) ModelName() string {
	if s.primary != nil {
		return s.primary.ModelName()
	}
	return s.hash.ModelName()
}

// Primary returns the wrapped provider, nil when running hash-only.
func (s *EmbeddingService) Primary() driven.EmbeddingService {
	return s.primary
}

// Ping always succeeds: the hash embedder is always available.
func (s *EmbeddingService) Ping(context.Context) error {
	return nil
}

// Close releases the primary provider.
func (s *EmbeddingService) Close() error {
	if s.primary != nil {
		return s.primary.Close()
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driven"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
	"github.com/custodia-labs/shopdesk/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService runs embed, search and synthesis for a query.
type RetrievalService struct {
	embedder    driven.EmbeddingService
	store       driven.VectorStore
	synthesizer *Synthesizer
	metrics     driven.RetrievalMetrics
	topK        int
	now         func() time.Time
}

// NewRetrievalService creates a retrieval service. The embedder is expected
// to be fallback-wrapped so that it only fails on cancellation.
func NewRetrievalService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	synthesizer *Synthesizer,
	m driven.RetrievalMetrics,
	topK int,
) *RetrievalService {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &RetrievalService{
		embedder:    embedder,
		store:       store,
		synthesizer: synthesizer,
		metrics:     orNop(m),
		topK:        topK,
		now:         time.Now,
	}
}

// ProcessQuery answers query. It always returns an envelope; errors and
// panics are reported through its status and error fields.
func (s *RetrievalService) ProcessQuery(ctx context.Context, query string, qctx map[string]any) (resp domain.QueryResponse) {
	start := s.now()
	resp = domain.QueryResponse{Query: query}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("retrieval panic: %v", r)
			resp = errorResponse(query, fmt.Errorf("internal error: %v", r))
		}
		s.metrics.Query(resp.Status, s.now().Sub(start))
	}()

	logger.Section("Retrieval")
	logger.Debug("Query: %q, context: %v", query, qctx)

	results, err := s.Search(ctx, query, s.topK)
	if err != nil {
		return errorResponse(query, err)
	}

	answer := s.synthesizer.Synthesize(ctx, query, results)
	if err := ctx.Err(); err != nil {
		return errorResponse(query, err)
	}

	sources := make([]domain.Source, len(results))
	for i, r := range results {
		sources[i] = domain.NewSourceFromResult(r)
	}

	return domain.QueryResponse{
		Status:  domain.StatusSuccess,
		Answer:  answer,
		Sources: sources,
		Query:   query,
	}
}

// Search embeds query and returns up to topK ranked passages.
func (s *RetrievalService) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must be a non-empty string", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = s.topK
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.store.Search(ctx, domain.VectorQuery{Text: query, Embedding: embedding, TopK: topK})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Debug("retrieved %d passages", len(results))
	return results, nil
}

// Stats reports the vector store state.
func (s *RetrievalService) Stats(ctx context.Context) domain.StoreStats {
	return s.store.Stats(ctx)
}

func errorResponse(query string, err error) domain.QueryResponse {
	logger.Warn("query failed: %v", err)
	return domain.QueryResponse{
		Status: domain.StatusError,
		Error:  err.Error(),
		Query:  query,
	}
}

package driving

import (
	"context"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// RetrievalService answers knowledge-base questions.
type RetrievalService interface {
	// ProcessQuery runs search then synthesis and always returns an envelope.
	// Failures are reported through the envelope's status and error fields.
	ProcessQuery(ctx context.Context, query string, qctx map[string]any) domain.QueryResponse

	// Search returns ranked passages without synthesis.
	Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error)

	// Stats reports the vector store state.
	Stats(ctx context.Context) domain.StoreStats
}

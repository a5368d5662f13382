package httpapi

import (
	"context"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
)

type mockRetrievalService struct {
	query string
	qctx  map[string]any
	panic bool
}

func (m *mockRetrievalService) ProcessQuery(_ context.Context, query string, qctx map[string]any) domain.QueryResponse {
	if m.panic {
		panic("boom")
	}
	m.query = query
	m.qctx = qctx
	if query == "" {
		return domain.QueryResponse{Status: domain.StatusError, Error: "invalid input: query must be a non-empty string"}
	}
	return domain.QueryResponse{
		Status:  domain.StatusSuccess,
		Answer:  "Standard shipping takes 5-7 business days.",
		Sources: []domain.Source{{ID: "2", Text: "We offer several shipping options", SimilarityScore: 0.8}},
		Query:   query,
	}
}

func (m *mockRetrievalService) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return nil, nil
}

func (m *mockRetrievalService) Stats(_ context.Context) domain.StoreStats {
	return domain.StoreStats{
		State:      domain.StateDegraded.String(),
		ActiveTier: domain.TierLocal,
		Dimension:  domain.DefaultEmbeddingDimensions,
	}
}

type mockAssistant struct {
	userCtx map[string]any
}

func (m *mockAssistant) Route(_ string) domain.Route {
	return domain.Route{Intent: domain.IntentRAG, Tool: domain.ToolRAG, Confidence: 0.5, Reasoning: "Defaulting to RAG for open-ended query"}
}

func (m *mockAssistant) Assist(_ context.Context, query string, userCtx map[string]any) domain.ToolResponse {
	m.userCtx = userCtx
	return domain.SuccessResponse(domain.ToolOrder, query, domain.GuidanceMessage{Message: "ok"})
}

func (m *mockAssistant) Tool(_ string) driving.ToolHandler {
	return nil
}

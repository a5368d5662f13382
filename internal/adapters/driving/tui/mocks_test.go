package tui

import (
	"context"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
)

// MockRetrievalService is a mock implementation of driving.RetrievalService.
type MockRetrievalService struct {
	Response domain.QueryResponse
	Queries  []string
}

func (m *MockRetrievalService) ProcessQuery(_ context.Context, query string, _ map[string]any) domain.QueryResponse {
	m.Queries = append(m.Queries, query)
	resp := m.Response
	resp.Query = query
	return resp
}

func (m *MockRetrievalService) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return nil, nil
}

func (m *MockRetrievalService) Stats(_ context.Context) domain.StoreStats {
	return domain.StoreStats{State: domain.StateConnected.String(), ActiveTier: domain.TierRemote}
}

// MockAssistantService is a mock implementation of driving.AssistantService.
type MockAssistantService struct {
	Response domain.ToolResponse
}

func (m *MockAssistantService) Route(_ string) domain.Route {
	return domain.Route{Intent: domain.IntentTransactional, Tool: domain.ToolOrder, Confidence: 1}
}

func (m *MockAssistantService) Assist(_ context.Context, query string, _ map[string]any) domain.ToolResponse {
	resp := m.Response
	resp.Query = query
	return resp
}

func (m *MockAssistantService) Tool(_ string) driving.ToolHandler {
	return nil
}

package mcp

import (
	"context"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	response domain.QueryResponse
	stats    domain.StoreStats
	query    string
	qctx     map[string]any
}

func (m *mockRetrievalService) ProcessQuery(_ context.Context, query string, qctx map[string]any) domain.QueryResponse {
	m.query = query
	m.qctx = qctx
	resp := m.response
	resp.Query = query
	return resp
}

func (m *mockRetrievalService) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return nil, nil
}

func (m *mockRetrievalService) Stats(_ context.Context) domain.StoreStats {
	return m.stats
}

// mockTool is a mock implementation of driving.ToolHandler.
type mockTool struct {
	name  string
	calls int
}

func (m *mockTool) Name() string { return m.name }

func (m *mockTool) Handle(_ context.Context, query string, _ map[string]any) domain.ToolResponse {
	m.calls++
	return domain.SuccessResponse(m.name, query, domain.GuidanceMessage{Message: "handled by " + m.name})
}

// mockAssistant is a mock implementation of driving.AssistantService.
type mockAssistant struct {
	tools map[string]*mockTool
}

func newMockAssistant(names ...string) *mockAssistant {
	a := &mockAssistant{tools: make(map[string]*mockTool)}
	for _, n := range names {
		a.tools[n] = &mockTool{name: n}
	}
	return a
}

func (m *mockAssistant) Route(_ string) domain.Route {
	return domain.Route{Intent: domain.IntentTransactional, Tool: domain.ToolOrder}
}

func (m *mockAssistant) Assist(ctx context.Context, query string, userCtx map[string]any) domain.ToolResponse {
	return m.tools[domain.ToolOrder].Handle(ctx, query, userCtx)
}

func (m *mockAssistant) Tool(name string) driving.ToolHandler {
	if t, ok := m.tools[name]; ok {
		return t
	}
	return nil
}

// mockOrders is a mock implementation of driving.OrderService.
type mockOrders struct {
	tracking *domain.OrderTracking
	err      error
}

func (m *mockOrders) Track(_ string) (*domain.OrderTracking, error) { return m.tracking, m.err }
func (m *mockOrders) Status(_ string) (*domain.OrderDetails, error) { return nil, m.err }

// mockReturns is a mock implementation of driving.ReturnsService.
type mockReturns struct {
	receipt *domain.ReturnReceipt
	err     error
}

func (m *mockReturns) Status(_ string) (*domain.ReturnDetails, error) {
	return nil, m.err
}

func (m *mockReturns) Initiate(_, _, _ string) (*domain.ReturnReceipt, error) {
	return m.receipt, m.err
}

func (m *mockReturns) Policy() domain.ReturnPolicy {
	return domain.ReturnPolicy{WindowDays: 30, Conditions: []string{"Tags must be attached"}}
}

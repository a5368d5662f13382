package driving

import (
	"context"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// ToolHandler answers queries for one tool (RAG, orders, returns, inventory).
type ToolHandler interface {
	// Name returns the tool name, e.g. domain.ToolOrder.
	Name() string

	// Handle processes a query. It never returns a Go error; failures are
	// reported in the response envelope.
	Handle(ctx context.Context, query string, userCtx map[string]any) domain.ToolResponse
}

// AssistantService routes free-text queries to the matching tool.
type AssistantService interface {
	// Route classifies a query without executing it.
	Route(query string) domain.Route

	// Assist routes a query and dispatches it to the chosen tool.
	Assist(ctx context.Context, query string, userCtx map[string]any) domain.ToolResponse

	// Tool returns the named handler, or nil.
	Tool(name string) ToolHandler
}

package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

// RAGInput is the input schema for the knowledge-base tool.
type RAGInput struct {
	Query   string         `json:"query" jsonschema:"the customer's question"`
	Context map[string]any `json:"context,omitempty" jsonschema:"additional context for the query"`
}

// ToolInput is the input schema for the transactional tools and assist.
type ToolInput struct {
	Query       string         `json:"query" jsonschema:"the customer's request"`
	UserContext map[string]any `json:"user_context,omitempty" jsonschema:"additional context about the user"`
}

// InitiateReturnInput is the input schema for initiate_return.
type InitiateReturnInput struct {
	OrderID   string `json:"order_id" jsonschema:"the order the item belongs to, e.g. ORD-001"`
	ProductID string `json:"product_id" jsonschema:"the product being returned, e.g. PROD-002"`
	Reason    string `json:"reason,omitempty" jsonschema:"why the item is being returned"`
}

// toolDescriptions are shown to MCP clients.
var toolDescriptions = map[string]string{
	domain.ToolRAG:       "Handles static knowledge queries (policies, shipping, FAQ) using retrieval over the documentation",
	domain.ToolOrder:     "Handles order status, tracking, and order-related queries",
	domain.ToolReturns:   "Handles return policy, return status, and return initiation",
	domain.ToolInventory: "Handles product availability, search, and inventory queries",
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        domain.ToolRAG,
		Description: toolDescriptions[domain.ToolRAG],
	}, s.handleRAG)

	if s.ports.Assistant != nil {
		for _, name := range []string{domain.ToolOrder, domain.ToolReturns, domain.ToolInventory} {
			if s.ports.Assistant.Tool(name) == nil {
				continue
			}
			mcp.AddTool(s.server, &mcp.Tool{
				Name:        name,
				Description: toolDescriptions[name],
			}, s.toolHandler(name))
		}

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "assist",
			Description: "Routes a free-text customer request to the right tool and runs it",
		}, s.handleAssist)
	}

	if s.ports.Returns != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "initiate_return",
			Description: "Starts a return for a product of an order and returns the new return ID",
		}, s.handleInitiateReturn)
	}
}

// handleRAG runs the retrieval pipeline. Failures are reported in the envelope.
func (s *Server) handleRAG(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RAGInput,
) (*mcp.CallToolResult, domain.QueryResponse, error) {
	return nil, s.ports.Retrieval.ProcessQuery(ctx, input.Query, input.Context), nil
}

func (s *Server) toolHandler(name string) mcp.ToolHandlerFor[ToolInput, domain.ToolResponse] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ToolInput) (*mcp.CallToolResult, domain.ToolResponse, error) {
		return nil, s.ports.Assistant.Tool(name).Handle(ctx, input.Query, input.UserContext), nil
	}
}

// handleAssist routes the query before running it.
func (s *Server) handleAssist(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ToolInput,
) (*mcp.CallToolResult, domain.ToolResponse, error) {
	return nil, s.ports.Assistant.Assist(ctx, input.Query, input.UserContext), nil
}

// handleInitiateReturn creates a return. Invalid input is a tool error.
func (s *Server) handleInitiateReturn(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input InitiateReturnInput,
) (*mcp.CallToolResult, domain.ReturnReceipt, error) {
	receipt, err := s.ports.Returns.Initiate(input.OrderID, input.ProductID, input.Reason)
	if err != nil {
		return nil, domain.ReturnReceipt{}, err
	}
	return nil, *receipt, nil
}

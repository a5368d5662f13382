package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/shopdesk/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for shopdesk resources.
	uriScheme = "shopdesk://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Vector store state and per-tier record counts",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	if s.ports.Returns != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "return-policy",
			Name:        "return-policy",
			Description: "Return window, conditions, and excluded items",
			MIMEType:    "application/json",
		}, s.handlePolicyResource)
	}

	if s.ports.Orders != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "orders/{orderId}",
			Name:        "order",
			Description: "Tracking timeline of a specific order",
			MIMEType:    "application/json",
		}, s.handleOrderResource)
	}
}

// handleStatsResource returns the vector store statistics.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Retrieval.Stats(ctx))
}

// handlePolicyResource returns the return policy.
func (s *Server) handlePolicyResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Returns.Policy())
}

// handleOrderResource returns the tracking view of one order.
func (s *Server) handleOrderResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract orderId from URI: shopdesk://orders/{orderId}
	orderID := extractOrderID(req.Params.URI)
	if orderID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tracking, err := s.ports.Orders.Track(orderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("tracking order: %w", err)
	}

	return jsonResource(req.Params.URI, tracking)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractOrderID extracts the order ID from a URI like shopdesk://orders/{orderId}.
func extractOrderID(uri string) string {
	const prefix = uriScheme + "orders/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.ToUpper(strings.TrimPrefix(uri, prefix))
}

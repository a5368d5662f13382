package mcp

import (
	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers knowledge-base questions.
	Retrieval driving.RetrievalService

	// Assistant routes free-text queries and owns the transactional tools.
	Assistant driving.AssistantService

	// Orders backs the order resources.
	Orders driving.OrderService

	// Returns backs return initiation and the policy resource.
	Returns driving.ReturnsService
}

// Validate ensures all required ports are set.
// Only Retrieval is required; tools and resources for missing ports are not registered.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}

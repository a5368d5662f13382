package httpapi

import (
	"net/http"

	"github.com/custodia-labs/shopdesk/internal/core/ports/driving"
)

// Ports aggregates the services exposed by the HTTP API.
type Ports struct {
	// Retrieval answers knowledge-base questions. Required.
	Retrieval driving.RetrievalService

	// Assistant backs /api/v1/assist. The route is not mounted when nil.
	Assistant driving.AssistantService

	// Metrics serves /metrics. The route is not mounted when nil.
	Metrics http.Handler

	// MCP serves the streamable MCP transport under /mcp when set.
	MCP http.Handler
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}

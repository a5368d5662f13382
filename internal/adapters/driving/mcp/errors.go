// Package mcp provides an MCP (Model Context Protocol) server adapter for shopdesk.
// It exposes the knowledge-base and transactional tools to AI assistants.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

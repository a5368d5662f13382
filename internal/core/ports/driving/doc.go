// Package driving declares the use cases the CLI, MCP server, HTTP API and
// TUI call into. internal/core/services implements them.
package driving

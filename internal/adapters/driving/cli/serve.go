package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopdesk/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/shopdesk/internal/adapters/driving/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API.

Endpoints:
  POST /api/v1/rag      {"query": "...", "context": {...}}
  POST /api/v1/assist   {"query": "...", "user_context": {...}}
  POST /api/v1/route    {"query": "..."}
  GET  /api/v1/stats
  GET  /healthz
  GET  /metrics         Prometheus metrics
  ANY  /mcp             MCP streamable HTTP transport`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}

	svc, err := loadServices()
	if err != nil {
		return err
	}

	mcpServer, err := mcp.NewServer(mcpPorts(svc), mcp.WithVersion(version))
	if err != nil {
		return err
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Retrieval: svc.Retrieval,
		Assistant: svc.Assistant,
		Metrics:   svc.Metrics,
		MCP:       mcpServer.Handler(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on %s\n", addr)
	return server.Run(cmd.Context(), addr)
}

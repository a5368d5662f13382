package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopdesk/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose shopdesk to AI assistants over MCP",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run a Model Context Protocol server offering the knowledge base search,
the support assistant and the order, returns and inventory tools.

The server speaks JSON-RPC on stdin/stdout, which is what desktop MCP
clients expect when they launch shopdesk themselves:

  {"mcpServers": {"shopdesk": {"command": "shopdesk", "args": ["mcp", "serve"]}}}

With --port it serves the streamable HTTP transport instead. "shopdesk
serve" also mounts the same server at /mcp next to the JSON API.`,
	Example: `  shopdesk mcp serve
  shopdesk mcp serve --port 8000`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	svc, err := loadServices()
	if err != nil {
		return err
	}
	server, err := mcp.NewServer(mcpPorts(svc), mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port <= 0 {
		return server.Run(cmd.Context())
	}
	addr := fmt.Sprintf(":%d", port)
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}

// mcpPorts is shared with serve, which mounts the MCP handler at /mcp.
func mcpPorts(svc *Services) *mcp.Ports {
	return &mcp.Ports{
		Retrieval: svc.Retrieval,
		Assistant: svc.Assistant,
		Orders:    svc.Orders,
		Returns:   svc.Returns,
	}
}

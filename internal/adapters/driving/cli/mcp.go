package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nbmcp/internal/adapters/driving/mcp"
	"github.com/custodia-labs/nbmcp/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

HTTP requests are throttled by the mcp.rate_limit setting (0 disables it).

Examples:
  # Stdio mode (default, for Claude Desktop)
  nbmcp mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  nbmcp mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "notebooks": {
        "command": "/path/to/nbmcp",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Cells:   cellService,
		Outputs: outputService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		var rateLimit float64
		if settingsService != nil {
			settings, err := settingsService.Get()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			rateLimit = settings.RateLimit
		}

		addr := fmt.Sprintf(":%d", port)
		logger.Debug("rate limit %g req/s", rateLimit)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr, rateLimit)
	}

	return server.Run(cmd.Context())
}

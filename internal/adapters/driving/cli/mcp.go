package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trawl/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the gateway to MCP clients",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gateway over the Model Context Protocol",
	Long: `Serve the configured providers to MCP clients such as AI assistants.

Tools mirror the HTTP API: search, trending, recent and category_search query
one site; search_all, trending_all and recent_all fan out to every eligible
site; list_sites returns the capability table. Failures come back as tool
errors carrying the same messages the HTTP API returns.

Resources: trawl://sites, trawl://sites/{siteId} and, when history is
recorded, trawl://history.

Stdio is used unless --port is given, in which case the server speaks
streamable HTTP on that port.

Examples:
  trawl mcp serve
  trawl mcp serve --port 8010 --sites ~/indexers.toml

Client configuration:
  {
    "mcpServers": {
      "trawl": {
        "command": "/path/to/trawl",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "serve streamable HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	gateway, err := gatewayService()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Gateway: gateway,
		History: services.History,
	}, version)
	if err != nil {
		return err
	}

	if port <= 0 {
		// Stdout carries the protocol; nothing else may be printed.
		return server.Run(cmd.Context())
	}

	addr := fmt.Sprintf(":%d", port)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d providers to MCP clients on http://localhost%s\n", len(gateway.Sites()), addr)
	return server.RunHTTP(cmd.Context(), addr)
}

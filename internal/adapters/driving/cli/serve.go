package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trawl/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP API on --addr (default :8009, or serve.addr from settings).

Routes:
  GET /api/v1/search      site, query, limit, page
  GET /api/v1/trending    site, category, limit, page
  GET /api/v1/recent      site, category, limit, page
  GET /api/v1/category    site, query, category, limit, page
  GET /api/v1/all/search  query, limit
  GET /api/v1/all/trending, /api/v1/all/recent
  GET /api/v1/sites, /api/v1/sites/config, /api/v1/stats, /health`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address")
	_ = config.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	gateway, err := gatewayService()
	if err != nil {
		return err
	}

	addr := config.GetString("addr")
	if addr == "" {
		addr = currentSettings().ServeAddr
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Gateway: gateway,
		Stats:   services.Stats,
	}, version)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "trawl API listening on %s\n", addr)
	return server.Run(cmd.Context(), addr)
}

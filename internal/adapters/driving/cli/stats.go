package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trawl/internal/adapters/driven/provider/httpclient"
	"github.com/custodia-labs/trawl/internal/core/domain"
)

// DefaultStatsServer is the API the stats command reads from.
const DefaultStatsServer = "http://localhost:8009"

var statsCmd = noServices(&cobra.Command{
	Use:   "stats",
	Short: "Show outcome counters of a running server",
	Long: `Fetches per-endpoint and per-provider outcome counters from a running
'trawl serve' instance.`,
	Args: cobra.NoArgs,
	RunE: runStats,
})

func init() {
	statsCmd.Flags().String("server", DefaultStatsServer, "base URL of the trawl API")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	server, _ := cmd.Flags().GetString("server")
	url := strings.TrimRight(server, "/") + "/api/v1/stats"

	client := httpclient.New(httpclient.Options{Timeout: 5 * time.Second, UserAgent: "trawl/" + version})
	body, err := client.Get(cmd.Context(), url, "application/json")
	if err != nil {
		return fmt.Errorf("fetching stats from %s: %w", server, err)
	}

	var stats domain.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return fmt.Errorf("decoding stats: %w", err)
	}

	if useJSON(cmd) {
		return printJSON(cmd, stats)
	}

	if !stats.Since.IsZero() {
		cmd.Printf("Since %s\n\n", stats.Since.Format(time.RFC3339))
	}
	printCounters(cmd, "Endpoints", stats.Endpoints)
	printCounters(cmd, "Providers", stats.Providers)
	return nil
}

func printCounters(cmd *cobra.Command, title string, counters map[string]domain.Counter) {
	cmd.Println(title + ":")
	if len(counters) == 0 {
		cmd.Println("  (none)")
		cmd.Println()
		return
	}

	keys := make([]string, 0, len(counters))
	for k := range counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmd.Printf("  %-16s %9s %8s %6s %8s %6s %8s %8s\n",
		"", "requested", "success", "empty", "blocked", "fault", "n/a", "cat n/a")
	for _, k := range keys {
		c := counters[k]
		cmd.Printf("  %-16s %9d %8d %6d %8d %6d %8d %8d\n",
			k, c.Requested, c.Success, c.Empty, c.Blocked, c.Fault, c.NotAvailable, c.CategoryNotAvailable)
	}
	cmd.Println()
}

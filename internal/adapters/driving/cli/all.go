package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// aggregateOutput is the JSON shape of an aggregate answer.
type aggregateOutput struct {
	Data  []domain.Item `json:"data"`
	Total int           `json:"total"`
	Time  float64       `json:"time"`
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Query every provider at once",
	Long: `Fans a query out to every provider supporting it and merges the answers.

Providers that fail or time out are left out; the command only fails when
no provider returned anything.`,
}

var allSearchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search every provider",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAggregate(cmd, domain.OpSearch, driving.Request{Query: strings.Join(args, " ")})
	},
}

var allTrendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending items from every provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		category, _ := cmd.Flags().GetString("category")
		return runAggregate(cmd, domain.OpTrending, driving.Request{Category: category})
	},
}

var allRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent items from every provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		category, _ := cmd.Flags().GetString("category")
		return runAggregate(cmd, domain.OpRecent, driving.Request{Category: category})
	},
}

func init() {
	for _, c := range []*cobra.Command{allSearchCmd, allTrendingCmd, allRecentCmd} {
		c.Flags().IntP("limit", "n", 0, "maximum results per provider (0 = provider default)")
		allCmd.AddCommand(c)
	}
	allTrendingCmd.Flags().StringP("category", "c", "", "category filter applied to every provider")
	allRecentCmd.Flags().StringP("category", "c", "", "category filter applied to every provider")
	rootCmd.AddCommand(allCmd)
}

func runAggregate(cmd *cobra.Command, op domain.Operation, req driving.Request) error {
	gateway, err := gatewayService()
	if err != nil {
		return err
	}

	req.Limit = limitFlag(cmd)
	res := gateway.Aggregate(cmd.Context(), op, req)
	if !res.OK() {
		return outcomeError(domain.Outcome{Kind: domain.OutcomeEmpty})
	}

	if useJSON(cmd) {
		return printJSON(cmd, aggregateOutput{Data: res.Items, Total: res.Total, Time: res.Elapsed.Seconds()})
	}

	cmd.Printf("%d results from %d providers in %s\n", res.Total, contributors(res.Reports), res.Elapsed.Round(time.Millisecond))
	for _, r := range res.Reports {
		cmd.Printf("  %-16s %-22s %3d items  %s\n", r.ProviderID, r.Kind, r.Items, r.Elapsed.Round(time.Millisecond))
	}
	cmd.Println()
	printItems(cmd, res.Items)
	return nil
}

func contributors(reports []domain.ProviderReport) int {
	n := 0
	for _, r := range reports {
		if r.Kind == domain.OutcomeSuccess {
			n++
		}
	}
	return n
}

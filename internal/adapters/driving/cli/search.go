package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

var searchCmd = &cobra.Command{
	Use:   "search <site> <query...>",
	Short: "Search one provider",
	Long: `Searches a single provider for a free-text query.

The site is a provider id from the catalogue (see 'trawl sites').
Words after the site are joined into one query.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, domain.OpSearch, driving.Request{
			Site:  args[0],
			Query: strings.Join(args[1:], " "),
		})
	},
}

var trendingCmd = &cobra.Command{
	Use:   "trending <site>",
	Short: "List trending items from one provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		return runQuery(cmd, domain.OpTrending, driving.Request{Site: args[0], Category: category})
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent <site>",
	Short: "List recently added items from one provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		return runQuery(cmd, domain.OpRecent, driving.Request{Site: args[0], Category: category})
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category <site> <query> <category>",
	Short: "Search one provider within a category",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, domain.OpCategorySearch, driving.Request{
			Site:     args[0],
			Query:    args[1],
			Category: args[2],
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, trendingCmd, recentCmd, categoryCmd} {
		c.Flags().IntP("limit", "n", 0, "maximum number of results (0 = provider default)")
		c.Flags().Int("page", 1, "page number")
		rootCmd.AddCommand(c)
	}
	trendingCmd.Flags().StringP("category", "c", "", "category filter")
	recentCmd.Flags().StringP("category", "c", "", "category filter")
}

func runQuery(cmd *cobra.Command, op domain.Operation, req driving.Request) error {
	gateway, err := gatewayService()
	if err != nil {
		return err
	}

	req.Limit = limitFlag(cmd)
	req.Page, _ = cmd.Flags().GetInt("page")

	out := gateway.Dispatch(cmd.Context(), op, req)
	if !out.OK() {
		return outcomeError(out)
	}

	if useJSON(cmd) {
		return printJSON(cmd, out.Page())
	}

	cmd.Printf("%s: %d of %d results\n\n", out.ProviderID, len(out.Items), out.Total)
	printItems(cmd, out.Items)
	return nil
}

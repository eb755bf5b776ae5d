package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// siteConfig is the JSON view of one provider descriptor.
type siteConfig struct {
	Name                string   `json:"name"`
	Operations          []string `json:"operations"`
	Categories          []string `json:"categories"`
	TrendingHasCategory bool     `json:"trending_has_category"`
	RecentHasCategory   bool     `json:"recent_has_category"`
	DefaultLimit        int      `json:"default_limit"`
	MaxLimit            int      `json:"max_limit"`
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List configured providers",
	Long: `Lists the providers that support search.

With --config, prints every provider with its full capability table.`,
	Args: cobra.NoArgs,
	RunE: runSites,
}

func init() {
	sitesCmd.Flags().Bool("config", false, "show every provider's capabilities")
	rootCmd.AddCommand(sitesCmd)
}

func runSites(cmd *cobra.Command, _ []string) error {
	gateway, err := gatewayService()
	if err != nil {
		return err
	}

	full, _ := cmd.Flags().GetBool("config")
	if !full {
		ids := gateway.SearchableSites()
		if useJSON(cmd) {
			if ids == nil {
				ids = []string{}
			}
			return printJSON(cmd, map[string][]string{"supported_sites": ids})
		}
		if len(ids) == 0 {
			cmd.Println("No searchable sites configured.")
			return nil
		}
		for _, id := range ids {
			cmd.Println(id)
		}
		return nil
	}

	sites := gateway.Sites()
	if useJSON(cmd) {
		out := make(map[string]siteConfig, len(sites))
		for i := range sites {
			out[sites[i].ID] = newSiteConfig(&sites[i])
		}
		return printJSON(cmd, out)
	}

	if len(sites) == 0 {
		cmd.Println("No sites configured.")
		return nil
	}
	for i := range sites {
		d := &sites[i]
		cmd.Printf("%s (%s)\n", d.ID, d.Name)
		cmd.Printf("  operations: %s\n", d.Capabilities)
		cmd.Printf("  limit:      %d (max %d)\n", d.DefaultLimit, d.MaxLimit)
		if len(d.Categories) > 0 {
			cmd.Printf("  categories: %s\n", strings.Join(d.Categories, ", "))
		}
		if d.TrendingHasCategory || d.RecentHasCategory {
			cmd.Printf("  category filter: trending=%t recent=%t\n", d.TrendingHasCategory, d.RecentHasCategory)
		}
	}
	return nil
}

func newSiteConfig(d *domain.ProviderDescriptor) siteConfig {
	ops := d.Capabilities.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	categories := d.Categories
	if categories == nil {
		categories = []string{}
	}
	return siteConfig{
		Name:                d.Name,
		Operations:          names,
		Categories:          categories,
		TrendingHasCategory: d.TrendingHasCategory,
		RecentHasCategory:   d.RecentHasCategory,
		DefaultLimit:        d.DefaultLimit,
		MaxLimit:            d.MaxLimit,
	}
}

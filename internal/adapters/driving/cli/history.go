package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List items returned by earlier queries",
	Long: `Lists items that providers returned before, most recently seen first.

Items are recorded while --record is on (the default).`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of items")
	historyCmd.Flags().StringP("provider", "p", "", "only items from this provider")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if services == nil || services.History == nil {
		return errors.New("history service not configured")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	provider, _ := cmd.Flags().GetString("provider")

	items, err := services.History.Recent(cmd.Context(), provider, limit)
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	if useJSON(cmd) {
		if items == nil {
			items = []domain.SeenItem{}
		}
		return printJSON(cmd, items)
	}

	if len(items) == 0 {
		cmd.Println("No items recorded yet.")
		return nil
	}

	for i := range items {
		it := &items[i]
		episode := ""
		if it.Season != nil && it.Episode != nil {
			episode = fmt.Sprintf(" S%02dE%02d", *it.Season, *it.Episode)
		}
		cmd.Printf("  %-10s %s%s\n", it.ProviderID, it.Name, episode)
		cmd.Printf("             seen %s\n", humanize.Time(it.UpdatedAt))
	}
	return nil
}

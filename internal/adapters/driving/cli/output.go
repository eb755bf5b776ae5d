package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// currentSettings returns the stored preferences, or the defaults.
func currentSettings() domain.Settings {
	if services != nil && services.Settings != nil {
		if s, err := services.Settings.Get(); err == nil {
			return *s
		}
	}
	return domain.DefaultSettings()
}

// useJSON reports whether results should be printed as JSON.
func useJSON(cmd *cobra.Command) bool {
	if asJSON, err := cmd.Flags().GetBool("json"); err == nil && asJSON {
		return true
	}
	switch currentSettings().Output {
	case domain.OutputJSON:
		return true
	case domain.OutputTable:
		return false
	default:
		return !isTerminal(cmd.OutOrStdout())
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// limitFlag returns --limit if given, else the configured default.
func limitFlag(cmd *cobra.Command) int {
	if f := cmd.Flags().Lookup("limit"); f != nil && f.Changed {
		n, _ := cmd.Flags().GetInt("limit")
		return n
	}
	return currentSettings().DefaultLimit
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printItems(cmd *cobra.Command, items []domain.Item) {
	for i := range items {
		it := &items[i]
		cmd.Printf("  [%d] %s\n", i+1, it.Name)

		var meta []string
		if it.Seeders != "" || it.Leechers != "" {
			meta = append(meta, fmt.Sprintf("S:%s L:%s", orDash(it.Seeders), orDash(it.Leechers)))
		}
		for _, v := range []string{it.Size, it.Date, it.Category, it.ProviderID} {
			if v != "" {
				meta = append(meta, v)
			}
		}
		if len(meta) > 0 {
			cmd.Printf("      %s\n", strings.Join(meta, "  "))
		}
		if link := firstNonEmpty(it.Magnet, it.Torrent, it.URL); link != "" {
			cmd.Printf("      %s\n", link)
		}
	}
}

// outcomeError turns a failed outcome into the error the command returns.
func outcomeError(out domain.Outcome) error {
	msg := out.Message()
	if out.Kind == domain.OutcomeCategoryInvalid && len(out.Available) > 0 {
		msg += " Available: " + strings.Join(out.Available, ", ")
	}
	return fmt.Errorf("%s", msg)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

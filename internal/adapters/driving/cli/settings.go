package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage preferences",
	Long: `View and change preferences stored in ~/.trawl/config.toml.

Keys:
  cli.default_limit  page size asked of providers (0 = provider default)
  cli.output         auto, table or json
  serve.addr         listen address of 'trawl serve'`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := services.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if useJSON(cmd) {
		return printJSON(cmd, map[string]any{
			"cli.default_limit": settings.DefaultLimit,
			"cli.output":        settings.Output,
			"serve.addr":        settings.ServeAddr,
		})
	}

	cmd.Printf("cli.default_limit = %d\n", settings.DefaultLimit)
	cmd.Printf("cli.output        = %s\n", settings.Output)
	cmd.Printf("serve.addr        = %s\n", settings.ServeAddr)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if services == nil || services.Settings == nil {
		return errors.New("settings service not configured")
	}

	if err := services.Settings.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s updated\n", args[0])
	return nil
}

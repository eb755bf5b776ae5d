// Package cli implements the trawl command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/custodia-labs/trawl/internal/core/ports/driving"
	"github.com/custodia-labs/trawl/internal/logger"
)

// version is set by SetVersion from the build.
var version = "dev"

// annotationNoServices marks commands that run without bootstrapping.
const annotationNoServices = "trawl/no-services"

// Options are the process settings resolved from flags and TRAWL_* variables.
type Options struct {
	// SitesPath is the sites catalogue file; empty uses the data directory.
	SitesPath string
	// DataDir holds config.toml, the catalogue and the item database.
	DataDir string
	// ProviderTimeout bounds one provider invocation.
	ProviderTimeout time.Duration
	// MaxFanout bounds concurrent providers per aggregate request (0 = all).
	MaxFanout int
	// Record persists returned items for the history command.
	Record bool
}

// Services are the driving ports the commands use.
type Services struct {
	Gateway  driving.GatewayService
	History  driving.HistoryService
	Stats    driving.StatsService
	Actions  driving.ResultActionService
	Settings driving.SettingsService

	// Close releases resources held by the services. May be nil.
	Close func() error
}

// Bootstrap builds the services for the resolved options.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	config    = viper.New()
	bootstrap Bootstrap
	services  *Services
	// ownServices is true when services came from bootstrap and must be closed.
	ownServices bool
)

var rootCmd = &cobra.Command{
	Use:   "trawl",
	Short: "Query many torrent index providers through one interface",
	Long: `trawl queries a catalogue of index providers through one interface.

Each provider declares what it supports (search, trending, recent, category
search). Queries go to one provider or fan out to all of them at once.

Providers are declared in a sites catalogue (~/.trawl/sites.toml by default).`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("sites", "", "sites catalogue file (TOML or YAML)")
	flags.String("data-dir", "", "data directory (default ~/.trawl)")
	flags.Duration("provider-timeout", 15*time.Second, "time budget for one provider call")
	flags.Int("max-fanout", 0, "maximum providers queried at once (0 = all)")
	flags.Bool("record", true, "remember returned items for the history command")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.Bool("json", false, "print JSON instead of a table")

	for _, name := range []string{"sites", "data-dir", "provider-timeout", "max-fanout", "record", "verbose"} {
		_ = config.BindPFlag(name, flags.Lookup(name))
	}
	config.SetEnvPrefix("TRAWL")
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()
}

// SetVersion sets the version reported by the version command and servers.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap installs the function that builds services on demand.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects ready-made services; bootstrap is then skipped.
func SetServices(s *Services) {
	services = s
	ownServices = false
}

// Execute runs the root command. Interrupt and SIGTERM cancel the command
// context so that long-running servers shut down gracefully.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = closeServices() }()

	return rootCmd.ExecuteContext(ctx)
}

func loadOptions() Options {
	return Options{
		SitesPath:       config.GetString("sites"),
		DataDir:         config.GetString("data-dir"),
		ProviderTimeout: config.GetDuration("provider-timeout"),
		MaxFanout:       config.GetInt("max-fanout"),
		Record:          config.GetBool("record"),
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(config.GetBool("verbose"))

	if cmd.Annotations[annotationNoServices] == "true" || services != nil {
		return nil
	}
	if bootstrap == nil {
		return errors.New("services not configured")
	}

	opts := loadOptions()
	logger.Section("Bootstrap")
	logger.Debug("sites=%q data-dir=%q timeout=%s fanout=%d record=%t",
		opts.SitesPath, opts.DataDir, opts.ProviderTimeout, opts.MaxFanout, opts.Record)

	s, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("starting trawl: %w", err)
	}
	services = s
	ownServices = true
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	return closeServices()
}

func closeServices() error {
	if !ownServices || services == nil {
		return nil
	}
	s := services
	services, ownServices = nil, false
	if s.Close == nil {
		return nil
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("closing services: %w", err)
	}
	return nil
}

func gatewayService() (driving.GatewayService, error) {
	if services == nil || services.Gateway == nil {
		return nil, errors.New("gateway service not configured")
	}
	return services.Gateway, nil
}

func noServices(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationNoServices] = "true"
	return cmd
}

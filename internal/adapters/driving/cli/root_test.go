package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Metadata(t *testing.T) {
	assert.Equal(t, "trawl", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)

	for _, name := range []string{"sites", "data-dir", "provider-timeout", "max-fanout", "record", "verbose", "json"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"search", "trending", "recent", "category", "all", "sites",
		"history", "stats", "settings", "serve", "mcp", "tui", "version",
	} {
		assert.True(t, names[want], want)
	}
}

func TestSetup_NoBootstrap(t *testing.T) {
	useServices(t, nil)

	_, err := execute(t, "sites")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}

func TestSetup_BootstrapReceivesOptions(t *testing.T) {
	useServices(t, nil)
	t.Setenv("TRAWL_PROVIDER_TIMEOUT", "3s")

	var got Options
	closed := false
	SetBootstrap(func(_ context.Context, opts Options) (*Services, error) {
		got = opts
		return &Services{
			Gateway: &mockGateway{sites: testSites()},
			Close: func() error {
				closed = true
				return nil
			},
		}, nil
	})

	_, err := execute(t, "sites", "--sites", "/tmp/sites.toml", "--max-fanout", "3", "--record=false")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/sites.toml", got.SitesPath)
	assert.Equal(t, 3, got.MaxFanout)
	assert.False(t, got.Record)
	assert.Equal(t, 3*time.Second, got.ProviderTimeout)
	assert.True(t, closed, "services built by bootstrap are closed after the command")
}

func TestSetup_BootstrapError(t *testing.T) {
	useServices(t, nil)
	SetBootstrap(func(context.Context, Options) (*Services, error) {
		return nil, errors.New("bad catalogue")
	})

	_, err := execute(t, "sites")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting trawl: bad catalogue")
}

func TestCloseServices_Error(t *testing.T) {
	services = &Services{Close: func() error { return errors.New("locked") }}
	ownServices = true
	t.Cleanup(func() { SetServices(nil) })

	err := closeServices()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "closing services")
	assert.Nil(t, services)
}

func TestCloseServices_InjectedServicesKept(t *testing.T) {
	closed := false
	useServices(t, &Services{Close: func() error {
		closed = true
		return nil
	}})

	require.NoError(t, closeServices())
	assert.False(t, closed)
	assert.NotNil(t, services)
}

func TestVersionCmd(t *testing.T) {
	useServices(t, nil)
	SetVersion("1.2.3")
	t.Cleanup(func() { version = "dev" })

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "trawl version 1.2.3")
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	SetVersion("")
	assert.Equal(t, "dev", version)
}

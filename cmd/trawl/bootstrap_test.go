package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trawl/internal/adapters/driving/cli"
	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

const testCatalog = `
[[site]]
id = "Local"
name = "Local dataset"
kind = "file"
capabilities = ["search", "trending", "recent"]
default_limit = 10
path = "items.json"
`

const testDataset = `[
  {"name": "Ubuntu 24.04 Desktop", "seeders": "120", "date": "2024-04-25"},
  {"name": "Debian 12 Netinst", "seeders": "80", "date": "2023-06-10"}
]`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func newServices(t *testing.T, opts cli.Options) *cli.Services {
	t.Helper()
	s, err := bootstrap(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBootstrap_DefaultCatalogue(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sites.toml"), testCatalog)
	writeFile(t, filepath.Join(dir, "items.json"), testDataset)

	s := newServices(t, cli.Options{DataDir: dir, ProviderTimeout: 5 * time.Second, Record: true})

	assert.Equal(t, []string{"local"}, s.Gateway.SearchableSites())

	out := s.Gateway.Dispatch(context.Background(), domain.OpSearch, driving.Request{Site: "LOCAL", Query: "ubuntu"})
	require.True(t, out.OK(), out.Kind)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Ubuntu 24.04 Desktop", out.Items[0].Name)

	assert.Eventually(t, func() bool {
		n, err := s.History.Count(context.Background())
		return err == nil && n == 1
	}, 2*time.Second, 20*time.Millisecond)

	stats := s.Stats.Snapshot()
	assert.Equal(t, 1, stats.Providers["local"].Success)

	settings, err := s.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
	assert.NotNil(t, s.Actions)
}

func TestBootstrap_AggregateAcrossCatalogue(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sites.toml"), testCatalog)
	writeFile(t, filepath.Join(dir, "items.json"), testDataset)

	s := newServices(t, cli.Options{DataDir: dir})

	res := s.Gateway.Aggregate(context.Background(), domain.OpTrending, driving.Request{})
	require.True(t, res.OK())
	assert.Len(t, res.Items, 2)
}

func TestBootstrap_RecordingDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sites.toml"), testCatalog)
	writeFile(t, filepath.Join(dir, "items.json"), testDataset)

	s := newServices(t, cli.Options{DataDir: dir, Record: false})

	out := s.Gateway.Dispatch(context.Background(), domain.OpRecent, driving.Request{Site: "local"})
	require.True(t, out.OK())

	n, err := s.History.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBootstrap_MissingDefaultCatalogue(t *testing.T) {
	s := newServices(t, cli.Options{DataDir: t.TempDir()})

	assert.Empty(t, s.Gateway.Sites())
	out := s.Gateway.Dispatch(context.Background(), domain.OpSearch, driving.Request{Site: "x", Query: "q"})
	assert.Equal(t, domain.OutcomeProviderUnknown, out.Kind)
}

func TestBootstrap_MissingExplicitCatalogue(t *testing.T) {
	dir := t.TempDir()

	_, err := bootstrap(context.Background(), cli.Options{
		DataDir:   dir,
		SitesPath: filepath.Join(dir, "nope.toml"),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading sites catalogue")
}

func TestBootstrap_InvalidEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sites.yaml")
	writeFile(t, path, "site:\n  - id: broken\n    kind: file\n    capabilities: [teleport]\n    default_limit: 5\n")

	_, err := bootstrap(context.Background(), cli.Options{DataDir: dir, SitesPath: path})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBootstrap_UnknownKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sites.toml")
	writeFile(t, path, "[[site]]\nid = \"x\"\nkind = \"gopher\"\ncapabilities = [\"search\"]\ndefault_limit = 5\n")

	_, err := bootstrap(context.Background(), cli.Options{DataDir: dir, SitesPath: path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "site x")
}

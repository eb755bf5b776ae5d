package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

type mockGateway struct {
	outcome   domain.Outcome
	aggregate domain.AggregateResult
	sites     []domain.ProviderDescriptor

	ops  []domain.Operation
	reqs []driving.Request
}

func (m *mockGateway) Dispatch(_ context.Context, op domain.Operation, req driving.Request) domain.Outcome {
	m.ops = append(m.ops, op)
	m.reqs = append(m.reqs, req)
	out := m.outcome
	out.Operation = op
	if out.ProviderID == "" {
		out.ProviderID = req.Site
	}
	return out
}

func (m *mockGateway) Aggregate(_ context.Context, op domain.Operation, req driving.Request) domain.AggregateResult {
	m.ops = append(m.ops, op)
	m.reqs = append(m.reqs, req)
	return m.aggregate
}

func (m *mockGateway) Sites() []domain.ProviderDescriptor { return m.sites }

func (m *mockGateway) SearchableSites() []string {
	var ids []string
	for i := range m.sites {
		if m.sites[i].Supports(domain.OpSearch) {
			ids = append(ids, m.sites[i].ID)
		}
	}
	return ids
}

type mockHistory struct {
	items    []domain.SeenItem
	err      error
	provider string
	limit    int
}

func (m *mockHistory) Recent(_ context.Context, providerID string, limit int) ([]domain.SeenItem, error) {
	m.provider = providerID
	m.limit = limit
	return m.items, m.err
}

func (m *mockHistory) Count(context.Context) (int, error) { return len(m.items), nil }

type mockSettings struct {
	settings domain.Settings
	setErr   error
	set      map[string]string
}

func (m *mockSettings) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(s *domain.Settings) error {
	m.settings = *s
	return nil
}

func (m *mockSettings) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = map[string]string{}
	}
	m.set[key] = value
	return nil
}

func (m *mockSettings) Keys() []string {
	return []string{"cli.default_limit", "cli.output", "serve.addr"}
}

func testSites() []domain.ProviderDescriptor {
	return []domain.ProviderDescriptor{
		{
			ID:                  "1337x",
			Name:                "1337x",
			Capabilities:        domain.CapSearch | domain.CapTrending | domain.CapRecent | domain.CapCategorySearch,
			Categories:          []string{"movies", "tv"},
			TrendingHasCategory: true,
			RecentHasCategory:   true,
			DefaultLimit:        20,
			MaxLimit:            100,
		},
		{
			ID:           "feed",
			Name:         "Feed",
			Capabilities: domain.CapRecent,
			DefaultLimit: 50,
			MaxLimit:     50,
		},
	}
}

func testItems() []domain.Item {
	return []domain.Item{{
		Name:       "Ubuntu 24.04 Desktop",
		Seeders:    "10",
		Leechers:   "2",
		Size:       "5.7 GB",
		ProviderID: "1337x",
		Magnet:     "magnet:?xt=urn:btih:abc",
	}}
}

// useServices injects services for one test.
func useServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() {
		SetServices(nil)
		SetBootstrap(nil)
	})
}

// tableSettings forces table output.
func tableSettings() *mockSettings {
	s := domain.DefaultSettings()
	s.Output = domain.OutputTable
	return &mockSettings{settings: s}
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default; cobra keeps values between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

var testElapsed = 1500 * time.Millisecond

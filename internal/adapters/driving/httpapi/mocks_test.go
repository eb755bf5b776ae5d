package httpapi

import (
	"context"
	"sync"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// mockGateway returns canned answers and records the last call.
type mockGateway struct {
	mu        sync.Mutex
	outcome   domain.Outcome
	aggregate domain.AggregateResult
	sites     []domain.ProviderDescriptor

	lastOp    domain.Operation
	lastReq   driving.Request
	lastReqID string
	calls     int
}

var _ driving.GatewayService = (*mockGateway)(nil)

func (m *mockGateway) Dispatch(ctx context.Context, op domain.Operation, req driving.Request) domain.Outcome {
	m.record(ctx, op, req)
	out := m.outcome
	out.Operation = op
	if out.ProviderID == "" {
		out.ProviderID = req.Site
	}
	return out
}

func (m *mockGateway) Aggregate(ctx context.Context, op domain.Operation, req driving.Request) domain.AggregateResult {
	m.record(ctx, op, req)
	res := m.aggregate
	res.Operation = op
	return res
}

func (m *mockGateway) Sites() []domain.ProviderDescriptor {
	return m.sites
}

func (m *mockGateway) SearchableSites() []string {
	var ids []string
	for i := range m.sites {
		if m.sites[i].Supports(domain.OpSearch) {
			ids = append(ids, m.sites[i].ID)
		}
	}
	return ids
}

func (m *mockGateway) record(ctx context.Context, op domain.Operation, req driving.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastOp = op
	m.lastReq = req
	m.lastReqID = driving.RequestID(ctx)
	m.calls++
}

type mockStats struct {
	stats domain.Stats
}

func (m *mockStats) Snapshot() domain.Stats {
	return m.stats
}

func sampleSites() []domain.ProviderDescriptor {
	return []domain.ProviderDescriptor{
		{
			ID:                  "1337x",
			Name:                "1337x",
			Capabilities:        domain.CapSearch | domain.CapTrending | domain.CapRecent | domain.CapCategorySearch,
			Categories:          []string{"anime", "movies", "tv"},
			TrendingHasCategory: true,
			RecentHasCategory:   true,
			DefaultLimit:        20,
			MaxLimit:            100,
		},
		{
			ID:           "feed",
			Name:         "Feed only",
			Capabilities: domain.CapRecent,
			DefaultLimit: 10,
			MaxLimit:     10,
		},
	}
}

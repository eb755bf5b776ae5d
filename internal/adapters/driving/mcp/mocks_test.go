package mcp

import (
	"context"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// mockGateway is a mock implementation of driving.GatewayService.
type mockGateway struct {
	outcome   domain.Outcome
	aggregate domain.AggregateResult
	sites     []domain.ProviderDescriptor

	lastOp  domain.Operation
	lastReq driving.Request
}

func (m *mockGateway) Dispatch(_ context.Context, op domain.Operation, req driving.Request) domain.Outcome {
	m.lastOp, m.lastReq = op, req
	out := m.outcome
	out.Operation = op
	out.ProviderID = req.Site
	return out
}

func (m *mockGateway) Aggregate(_ context.Context, op domain.Operation, req driving.Request) domain.AggregateResult {
	m.lastOp, m.lastReq = op, req
	return m.aggregate
}

func (m *mockGateway) Sites() []domain.ProviderDescriptor {
	return m.sites
}

func (m *mockGateway) SearchableSites() []string {
	return nil
}

// mockHistory is a mock implementation of driving.HistoryService.
type mockHistory struct {
	items []domain.SeenItem
	err   error
}

func (m *mockHistory) Recent(_ context.Context, _ string, _ int) ([]domain.SeenItem, error) {
	return m.items, m.err
}

func (m *mockHistory) Count(_ context.Context) (int, error) {
	return len(m.items), m.err
}

func testSites() []domain.ProviderDescriptor {
	return []domain.ProviderDescriptor{
		{
			ID:                "nyaa",
			Name:              "Nyaa",
			Capabilities:      domain.CapSearch | domain.CapRecent,
			Categories:        []string{"anime"},
			RecentHasCategory: true,
			DefaultLimit:      50,
			MaxLimit:          75,
		},
	}
}

package services

import (
	"context"
	"time"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// Ensure GatewayService implements the interface.
var _ driving.GatewayService = (*GatewayService)(nil)

// GatewayService answers single-provider and aggregate queries.
type GatewayService struct {
	registry   *Registry
	dispatcher *Dispatcher
	aggregator *Aggregator
}

// NewGatewayService creates a gateway over the registry.
// The observer receives one event per provider invocation and may be nil.
func NewGatewayService(registry *Registry, observer driven.Observer) *GatewayService {
	dispatcher := NewDispatcher(registry, observer)
	return &GatewayService{
		registry:   registry,
		dispatcher: dispatcher,
		aggregator: NewAggregator(dispatcher),
	}
}

// SetProviderTimeout sets the deadline applied to each provider call.
func (s *GatewayService) SetProviderTimeout(timeout time.Duration) {
	s.dispatcher.SetTimeout(timeout)
}

// SetMaxFanout bounds concurrent provider calls per aggregate request.
func (s *GatewayService) SetMaxFanout(n int) {
	s.aggregator.SetMaxFanout(n)
}

// Dispatch runs op against the provider named by req.Site.
func (s *GatewayService) Dispatch(ctx context.Context, op domain.Operation, req driving.Request) domain.Outcome {
	return s.dispatcher.Dispatch(ctx, op, req)
}

// Aggregate runs op against every eligible provider and merges the results.
func (s *GatewayService) Aggregate(ctx context.Context, op domain.Operation, req driving.Request) domain.AggregateResult {
	return s.aggregator.Aggregate(ctx, op, req)
}

// Sites returns every registered descriptor.
func (s *GatewayService) Sites() []domain.ProviderDescriptor {
	return s.registry.List()
}

// SearchableSites returns the ids of providers supporting search.
func (s *GatewayService) SearchableSites() []string {
	return s.registry.SearchableIDs()
}

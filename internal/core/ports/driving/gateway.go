package driving

import (
	"context"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// Request carries raw query parameters as received from an adapter.
// Nothing is folded or clamped yet.
type Request struct {
	// Site is the provider id (ignored by aggregate calls).
	Site string
	// Query is the free-text query for search operations.
	Query string
	// Category is the optional category label.
	Category string
	// Limit is the requested page size; 0 means "provider decides".
	Limit int
	// Page is the 1-based page number; 0 means 1.
	Page int
}

// GatewayService answers queries for one provider or across all providers.
type GatewayService interface {
	// Dispatch runs the operation against the provider named by req.Site.
	Dispatch(ctx context.Context, op domain.Operation, req Request) domain.Outcome

	// Aggregate runs the operation against every eligible provider at once
	// and merges the results.
	Aggregate(ctx context.Context, op domain.Operation, req Request) domain.AggregateResult

	// Sites returns every registered provider descriptor in registration order.
	Sites() []domain.ProviderDescriptor

	// SearchableSites returns the ids of providers supporting search.
	SearchableSites() []string
}

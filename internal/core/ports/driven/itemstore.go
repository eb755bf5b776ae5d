package driven

import (
	"context"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// ItemStore persists items the gateway has returned.
type ItemStore interface {
	// Record upserts items seen from a provider.
	// Items already known are marked functional and get a fresh UpdatedAt.
	Record(ctx context.Context, providerID string, items []domain.Item) error

	// Recent returns the most recently updated items, newest first.
	// An empty providerID returns items from every provider.
	Recent(ctx context.Context, providerID string, limit int) ([]domain.SeenItem, error)

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

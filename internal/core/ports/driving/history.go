package driving

import (
	"context"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// HistoryService exposes items the gateway has returned before.
type HistoryService interface {
	// Recent returns recently seen items, newest first.
	Recent(ctx context.Context, providerID string, limit int) ([]domain.SeenItem, error)

	// Count returns how many items are stored.
	Count(ctx context.Context) (int, error)
}

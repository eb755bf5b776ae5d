package driving

import (
	"context"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// ResultActionService provides actions on returned items for external actors.
// This is used by the TUI and CLI adapters.
type ResultActionService interface {
	// CopyMagnet copies the item's magnet link to the system clipboard.
	CopyMagnet(ctx context.Context, item *domain.Item) error

	// OpenItem opens the item's page in the default browser.
	OpenItem(ctx context.Context, item *domain.Item) error
}

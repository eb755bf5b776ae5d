package driven

import (
	"context"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// Observer receives one event per classified provider invocation.
// Implementations must be safe for concurrent use: aggregate requests emit
// events from several goroutines at once. Observe must not block for long.
type Observer interface {
	Observe(ctx context.Context, event domain.Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, event domain.Event)

// Observe calls f(ctx, event).
func (f ObserverFunc) Observe(ctx context.Context, event domain.Event) {
	f(ctx, event)
}

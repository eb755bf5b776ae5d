package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// requestID returns the id attached by the driving adapter, or a fresh one.
func requestID(ctx context.Context) string {
	if id := driving.RequestID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is used when no limit is given.
const DefaultHistoryLimit = 20

// HistoryService lists items the gateway has returned before.
type HistoryService struct {
	store driven.ItemStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.ItemStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns recently seen items, newest first.
func (s *HistoryService) Recent(ctx context.Context, providerID string, limit int) ([]domain.SeenItem, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	items, err := s.store.Recent(ctx, strings.ToLower(strings.TrimSpace(providerID)), limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return items, nil
}

// Count returns how many items are stored.
func (s *HistoryService) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return n, nil
}

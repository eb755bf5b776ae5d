package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
)

// Ensure ItemStore implements the interface.
var _ driven.ItemStore = (*ItemStore)(nil)

type itemKey struct {
	provider string
	name     string
	link     string
}

// ItemStore is an in-memory implementation of driven.ItemStore.
type ItemStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[itemKey]*domain.SeenItem
	now    func() time.Time
}

// NewItemStore creates a new in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{
		items: make(map[itemKey]*domain.SeenItem),
		now:   time.Now,
	}
}

// Record upserts items seen from a provider.
func (s *ItemStore) Record(_ context.Context, providerID string, items []domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		link := item.Magnet
		if link == "" {
			link = item.Torrent
		}
		if link == "" {
			link = item.URL
		}

		key := itemKey{provider: providerID, name: item.Name, link: link}
		if seen, ok := s.items[key]; ok {
			seen.UpdatedAt = now
			seen.Functional = true
			continue
		}

		s.nextID++
		season, episode := domain.ParseEpisode(item.Name)
		s.items[key] = &domain.SeenItem{
			ID:         s.nextID,
			Name:       item.Name,
			ProviderID: providerID,
			MagnetLink: link,
			CreatedAt:  now,
			UpdatedAt:  now,
			Functional: true,
			Season:     season,
			Episode:    episode,
		}
	}
	return nil
}

// Recent returns the most recently updated items, newest first.
func (s *ItemStore) Recent(_ context.Context, providerID string, limit int) ([]domain.SeenItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.SeenItem, 0, len(s.items))
	for _, item := range s.items {
		if providerID != "" && item.ProviderID != providerID {
			continue
		}
		result = append(result, *item)
	}

	slices.SortFunc(result, func(a, b domain.SeenItem) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Count returns the number of stored items.
func (s *ItemStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// Close is a no-op for in-memory storage.
func (s *ItemStore) Close() error {
	return nil
}

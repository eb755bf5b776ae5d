package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

func TestItemStore_Record(t *testing.T) {
	store := NewItemStore()
	ctx := context.Background()

	err := store.Record(ctx, "1337x", []domain.Item{
		{Name: "Shogun.S01E03", Magnet: "magnet:?a"},
		{Name: "Dune", URL: "https://example.org/dune"},
		{Name: ""},
	})
	require.NoError(t, err)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items, err := store.Recent(ctx, "1337x", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Dune", items[0].Name)
	assert.Equal(t, "https://example.org/dune", items[0].MagnetLink)
	require.NotNil(t, items[1].Season)
	assert.Equal(t, 1, *items[1].Season)
	assert.True(t, items[1].Functional)
}

func TestItemStore_RecordUpserts(t *testing.T) {
	store := NewItemStore()
	ctx := context.Background()

	clock := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	item := domain.Item{Name: "Dune", Magnet: "magnet:?b"}
	require.NoError(t, store.Record(ctx, "yts", []domain.Item{item}))
	require.NoError(t, store.Record(ctx, "yts", []domain.Item{{Name: "Other"}}))

	clock = clock.Add(time.Hour)
	require.NoError(t, store.Record(ctx, "yts", []domain.Item{item}))

	items, err := store.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Dune", items[0].Name)
	assert.Equal(t, clock, items[0].UpdatedAt)
	assert.Equal(t, clock.Add(-time.Hour), items[0].CreatedAt)
}

func TestItemStore_RecentFilterAndLimit(t *testing.T) {
	store := NewItemStore()
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "yts", []domain.Item{{Name: "a"}, {Name: "b"}}))
	require.NoError(t, store.Record(ctx, "eztv", []domain.Item{{Name: "c"}}))

	items, err := store.Recent(ctx, "eztv", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].Name)

	items, err = store.Recent(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	assert.NoError(t, store.Close())
}

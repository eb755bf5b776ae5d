package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "items.db"), store.Path())

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Record(context.Background(), "yts", []domain.Item{{Name: "Dune"}}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	n, err := second.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var rows int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestStore_Record(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	items := []domain.Item{
		{Name: "Shogun.S01E03.1080p", Magnet: "magnet:?xt=urn:btih:AAA"},
		{Name: "Dune", Torrent: "https://example.org/dune.torrent"},
		{Name: ""},
	}
	require.NoError(t, store.Record(ctx, "1337x", items))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recent, err := store.Recent(ctx, "1337x", 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Same timestamp: newest id first.
	assert.Equal(t, "Dune", recent[0].Name)
	assert.Equal(t, "https://example.org/dune.torrent", recent[0].MagnetLink)
	assert.Nil(t, recent[0].Season)

	shogun := recent[1]
	assert.Equal(t, "1337x", shogun.ProviderID)
	assert.Equal(t, "magnet:?xt=urn:btih:AAA", shogun.MagnetLink)
	assert.True(t, shogun.Functional)
	require.NotNil(t, shogun.Season)
	require.NotNil(t, shogun.Episode)
	assert.Equal(t, 1, *shogun.Season)
	assert.Equal(t, 3, *shogun.Episode)
	assert.False(t, shogun.CreatedAt.IsZero())
}

func TestStore_RecordUpserts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	item := domain.Item{Name: "Dune", Magnet: "magnet:?xt=urn:btih:BBB"}

	require.NoError(t, store.Record(ctx, "yts", []domain.Item{item}))
	first, err := store.Recent(ctx, "yts", 1)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, store.Record(ctx, "yts", []domain.Item{item}))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	second, err := store.Recent(ctx, "yts", 1)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, second[0].UpdatedAt.After(first[0].UpdatedAt))
	assert.Equal(t, first[0].CreatedAt, second[0].CreatedAt)
}

func TestStore_RecordEmpty(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.Record(context.Background(), "yts", nil))
}

func TestStore_RecentFiltersAndLimits(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "yts", []domain.Item{{Name: "a"}, {Name: "b"}, {Name: "c"}}))
	require.NoError(t, store.Record(ctx, "eztv", []domain.Item{{Name: "d"}}))

	all, err := store.Recent(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	yts, err := store.Recent(ctx, "yts", 2)
	require.NoError(t, err)
	assert.Len(t, yts, 2)
	for _, item := range yts {
		assert.Equal(t, "yts", item.ProviderID)
	}
}

func TestStore_Get(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "yts", []domain.Item{{Name: "a"}}))

	recent, err := store.Recent(ctx, "", 1)
	require.NoError(t, err)

	got, err := store.Get(ctx, recent[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	_, err = store.Get(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_MarkStale(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "yts", []domain.Item{{Name: "old"}}))

	n, err := store.MarkStale(ctx, "yts", time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	recent, err := store.Recent(ctx, "yts", 1)
	require.NoError(t, err)
	assert.False(t, recent[0].Functional)

	// Seeing the item again revives it.
	require.NoError(t, store.Record(ctx, "yts", []domain.Item{{Name: "old"}}))
	recent, err = store.Recent(ctx, "yts", 1)
	require.NoError(t, err)
	assert.True(t, recent[0].Functional)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/trawl/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ItemStore = (*Store)(nil)

// Store persists seen items in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the item database in dataDir.
// If dataDir is empty, defaults to ~/.trawl/data/items.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".trawl", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "items.db")

	// WAL lets the recorder write while the CLI reads history.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every NNN_name.up.sql newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_items.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// Record upserts items seen from a provider. Known items are marked
// functional and get a fresh updated_at; new ones also get created_at.
func (s *Store) Record(ctx context.Context, providerID string, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (name, provider, magnet_link, created_at, updated_at, functional, season, episode)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(provider, name, magnet_link) DO UPDATE SET
			updated_at = excluded.updated_at,
			functional = 1
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		season, episode := domain.ParseEpisode(item.Name)
		if _, err := stmt.ExecContext(ctx, item.Name, providerID, link(item), now, now,
			nullInt(season), nullInt(episode)); err != nil {
			return fmt.Errorf("saving item %q: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing items: %w", err)
	}
	return nil
}

// Recent returns the most recently updated items, newest first.
func (s *Store) Recent(ctx context.Context, providerID string, limit int) ([]domain.SeenItem, error) {
	query := `
		SELECT id, name, provider, magnet_link, created_at, updated_at, functional, tmdb_id, season, episode
		FROM items`
	args := []any{}
	if providerID != "" {
		query += " WHERE provider = ?"
		args = append(args, providerID)
	}
	query += " ORDER BY updated_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.SeenItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// Count returns the number of stored items.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// Get returns one item by id.
func (s *Store) Get(ctx context.Context, id int64) (*domain.SeenItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, provider, magnet_link, created_at, updated_at, functional, tmdb_id, season, episode
		FROM items WHERE id = ?
	`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// MarkStale flags a provider's items not seen since before as non-functional.
// It returns the number of items flagged.
func (s *Store) MarkStale(ctx context.Context, providerID string, before time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items SET functional = 0
		WHERE provider = ? AND updated_at < ? AND functional = 1
	`, providerID, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("marking stale items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("marking stale items: %w", err)
	}
	return int(n), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (domain.SeenItem, error) {
	var item domain.SeenItem
	var createdAt, updatedAt sql.NullTime
	var tmdbID sql.NullString
	var season, episode sql.NullInt64
	if err := row.Scan(&item.ID, &item.Name, &item.ProviderID, &item.MagnetLink,
		&createdAt, &updatedAt, &item.Functional, &tmdbID, &season, &episode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, err
		}
		return item, fmt.Errorf("scanning item: %w", err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time
	item.TMDBID = tmdbID.String
	if season.Valid {
		v := int(season.Int64)
		item.Season = &v
	}
	if episode.Valid {
		v := int(episode.Int64)
		item.Episode = &v
	}
	return item, nil
}

// link picks the identifying link of an item.
func link(item domain.Item) string {
	switch {
	case item.Magnet != "":
		return item.Magnet
	case item.Torrent != "":
		return item.Torrent
	default:
		return item.URL
	}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// Package file implements a provider backed by a local JSON dataset.
//
// The dataset is either a JSON array of items or an object with an "items"
// array. It is held in memory and reloaded when the file changes on disk.
// Trending orders by seeders, recent by date (newest first); search matches
// the item name case-insensitively.
package file

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
	"github.com/custodia-labs/trawl/internal/logger"
)

// Kind is the catalogue kind served by this package.
const Kind = "file"

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// Provider serves items from a JSON file.
type Provider struct {
	id   string
	path string

	mu    sync.RWMutex
	items []domain.Item

	watcher *fsnotify.Watcher
	reloads chan struct{}
}

// New loads the dataset at spec.Path.
func New(spec driven.ProviderSpec) (*Provider, error) {
	if spec.Path == "" {
		return nil, fmt.Errorf("file %s: %w: path is required", spec.ID, domain.ErrInvalidInput)
	}
	p := &Provider{id: spec.ID, path: filepath.Clean(spec.Path)}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the dataset. On failure the previous items are kept.
func (p *Provider) Reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("file %s: reading dataset: %w", p.id, err)
	}
	items, err := decode(data)
	if err != nil {
		return fmt.Errorf("file %s: parsing %s: %w", p.id, p.path, err)
	}
	for i := range items {
		if items[i].ProviderID == "" {
			items[i].ProviderID = p.id
		}
	}

	p.mu.Lock()
	p.items = items
	p.mu.Unlock()
	return nil
}

func decode(data []byte) ([]domain.Item, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []domain.Item
		err := json.Unmarshal(data, &items)
		return items, err
	}
	var dataset struct {
		Items []domain.Item `json:"items"`
	}
	err := json.Unmarshal(data, &dataset)
	return dataset.Items, err
}

// Watch reloads the dataset whenever the file is written or replaced,
// until ctx is done or Close is called. The parent directory is watched so
// that editors which save by renaming are handled.
func (p *Provider) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("file %s: creating watcher: %w", p.id, err)
	}
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("file %s: watching %s: %w", p.id, p.path, err)
	}

	p.mu.Lock()
	p.watcher = watcher
	p.reloads = make(chan struct{}, 1)
	p.mu.Unlock()

	go p.watch(ctx, watcher)
	return nil
}

func (p *Provider) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !p.handleEvent(event) {
				continue
			}
			if err := p.Reload(); err != nil {
				logger.Warn("Dataset reload failed: %v", err)
				continue
			}
			logger.Debug("Reloaded dataset %s", p.path)
			p.notify()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Dataset watcher error for %s: %v", p.id, err)
		}
	}
}

// handleEvent reports whether event should trigger a reload.
func (p *Provider) handleEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != p.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (p *Provider) notify() {
	p.mu.RLock()
	defer p.mu.RUnlock()
	select {
	case p.reloads <- struct{}{}:
	default:
	}
}

// Reloaded signals after each successful reload triggered by Watch.
// It is nil before Watch is called.
func (p *Provider) Reloaded() <-chan struct{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.reloads
}

// Close stops watching the dataset.
func (p *Provider) Close() error {
	p.mu.Lock()
	watcher := p.watcher
	p.watcher = nil
	p.mu.Unlock()

	if watcher == nil {
		return nil
	}
	return watcher.Close()
}

// Search matches query against item names.
func (p *Provider) Search(_ context.Context, query string, page, limit int) (*domain.Page, error) {
	return p.page(p.filter(query, ""), page, limit), nil
}

// Trending lists items by seeders, highest first.
func (p *Provider) Trending(_ context.Context, category string, page, limit int) (*domain.Page, error) {
	items := p.filter("", category)
	slices.SortStableFunc(items, func(a, b domain.Item) int {
		return cmp.Compare(atoi(b.Seeders), atoi(a.Seeders))
	})
	return p.page(items, page, limit), nil
}

// Recent lists items by date, newest first.
func (p *Provider) Recent(_ context.Context, category string, page, limit int) (*domain.Page, error) {
	items := p.filter("", category)
	slices.SortStableFunc(items, func(a, b domain.Item) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return p.page(items, page, limit), nil
}

// SearchByCategory matches query against item names within one category.
func (p *Provider) SearchByCategory(_ context.Context, query, category string, page, limit int) (*domain.Page, error) {
	return p.page(p.filter(query, category), page, limit), nil
}

// filter returns a copy of the items matching query and category.
func (p *Provider) filter(query, category string) []domain.Item {
	query = strings.ToLower(query)

	p.mu.RLock()
	defer p.mu.RUnlock()

	var matched []domain.Item
	for _, item := range p.items {
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

func (p *Provider) page(items []domain.Item, page, limit int) *domain.Page {
	total := len(items)
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if limit <= 0 || start >= total {
		return &domain.Page{Items: []domain.Item{}, Total: total}
	}
	end := min(start+limit, total)
	return &domain.Page{Items: items[start:end], Total: total}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return n
}

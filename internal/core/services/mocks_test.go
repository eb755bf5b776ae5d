package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// --- Mock implementations ---

// providerCall records one invocation of a fakeProvider.
type providerCall struct {
	op       domain.Operation
	query    string
	category string
	page     int
	limit    int
}

// fakeProvider implements driven.Provider for testing.
// respond decides the return values; the default returns total items.
type fakeProvider struct {
	respond func(ctx context.Context, call providerCall) (*domain.Page, error)

	mu    sync.Mutex
	calls []providerCall
}

func (f *fakeProvider) handle(ctx context.Context, call providerCall) (*domain.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	if f.respond == nil {
		return &domain.Page{Items: []domain.Item{{Name: "item"}}, Total: 1}, nil
	}
	return f.respond(ctx, call)
}

func (f *fakeProvider) Search(ctx context.Context, query string, page, limit int) (*domain.Page, error) {
	return f.handle(ctx, providerCall{op: domain.OpSearch, query: query, page: page, limit: limit})
}

func (f *fakeProvider) Trending(ctx context.Context, category string, page, limit int) (*domain.Page, error) {
	return f.handle(ctx, providerCall{op: domain.OpTrending, category: category, page: page, limit: limit})
}

func (f *fakeProvider) Recent(ctx context.Context, category string, page, limit int) (*domain.Page, error) {
	return f.handle(ctx, providerCall{op: domain.OpRecent, category: category, page: page, limit: limit})
}

func (f *fakeProvider) SearchByCategory(ctx context.Context, query, category string, page, limit int) (*domain.Page, error) {
	return f.handle(ctx, providerCall{op: domain.OpCategorySearch, query: query, category: category, page: page, limit: limit})
}

func (f *fakeProvider) Calls() []providerCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]providerCall(nil), f.calls...)
}

// returning builds a provider that answers every call with n items and the given total.
func returning(prefix string, n, total int) *fakeProvider {
	return &fakeProvider{
		respond: func(context.Context, providerCall) (*domain.Page, error) {
			items := make([]domain.Item, n)
			for i := range items {
				items[i] = domain.Item{Name: fmt.Sprintf("%s-%d", prefix, i)}
			}
			return &domain.Page{Items: items, Total: total}, nil
		},
	}
}

// failing builds a provider that answers every call with err.
func failing(err error) *fakeProvider {
	return &fakeProvider{
		respond: func(context.Context, providerCall) (*domain.Page, error) {
			return nil, err
		},
	}
}

// absent builds a provider that answers with no page and no error.
func absent() *fakeProvider {
	return &fakeProvider{
		respond: func(context.Context, providerCall) (*domain.Page, error) {
			return nil, nil
		},
	}
}

// recordingObserver implements driven.Observer for testing.
type recordingObserver struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordingObserver) Observe(_ context.Context, e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

// mockItemStore implements driven.ItemStore for testing.
type mockItemStore struct {
	mu        sync.Mutex
	recorded  map[string][]domain.Item
	recent    []domain.SeenItem
	count     int
	recordErr error
	recentErr error

	lastProvider string
	lastLimit    int
}

func newMockItemStore() *mockItemStore {
	return &mockItemStore{recorded: make(map[string][]domain.Item)}
}

func (m *mockItemStore) Record(_ context.Context, providerID string, items []domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.recorded[providerID] = append(m.recorded[providerID], items...)
	return nil
}

func (m *mockItemStore) Recent(_ context.Context, providerID string, limit int) ([]domain.SeenItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastProvider = providerID
	m.lastLimit = limit
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	return m.recent, nil
}

func (m *mockItemStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count, nil
}

func (m *mockItemStore) Close() error {
	return nil
}

func (m *mockItemStore) Recorded(providerID string) []domain.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Item(nil), m.recorded[providerID]...)
}

// --- Fixtures ---

func descriptor(id string, caps domain.Capability, maxLimit int) domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		ID:           id,
		Name:         id,
		Capabilities: caps,
		DefaultLimit: maxLimit,
		MaxLimit:     maxLimit,
	}
}

func site(d domain.ProviderDescriptor, p *fakeProvider) Site {
	return Site{Descriptor: d, Provider: p}
}

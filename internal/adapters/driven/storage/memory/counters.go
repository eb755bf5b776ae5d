package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
)

// Ensure Counters implements the interface.
var _ driven.StatsRecorder = (*Counters)(nil)

// Counters is an in-memory driven.StatsRecorder.
//
// Single-provider events count toward the operation's endpoint and the
// provider. Per-provider events of a fan-out count toward the provider only;
// the fan-out's summary event counts toward "all/<operation>".
type Counters struct {
	mu        sync.Mutex
	since     time.Time
	endpoints map[string]domain.Counter
	providers map[string]domain.Counter
}

// NewCounters creates empty counters.
func NewCounters() *Counters {
	return &Counters{
		since:     time.Now().UTC(),
		endpoints: make(map[string]domain.Counter),
		providers: make(map[string]domain.Counter),
	}
}

// Observe counts one event.
func (c *Counters) Observe(_ context.Context, e domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.Summary() {
		bump(c.endpoints, "all/"+string(e.Operation), e.Kind)
		return
	}
	if !e.Aggregate {
		bump(c.endpoints, string(e.Operation), e.Kind)
	}
	if e.Kind != domain.OutcomeProviderUnknown {
		bump(c.providers, e.ProviderID, e.Kind)
	}
}

func bump(m map[string]domain.Counter, key string, kind domain.OutcomeKind) {
	counter := m[key]
	counter.Add(kind)
	m[key] = counter
}

// Snapshot returns a copy of the counters.
func (c *Counters) Snapshot() domain.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return domain.Stats{
		Since:     c.since,
		Endpoints: maps.Clone(c.endpoints),
		Providers: maps.Clone(c.providers),
	}
}

package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
	"github.com/custodia-labs/trawl/internal/logger"
)

// MultiObserver forwards each event to every observer in order.
type MultiObserver []driven.Observer

// Observe implements driven.Observer.
func (m MultiObserver) Observe(ctx context.Context, event domain.Event) {
	for _, o := range m {
		if o != nil {
			o.Observe(ctx, event)
		}
	}
}

// LogObserver writes one debug line per event.
type LogObserver struct{}

// Observe implements driven.Observer.
func (LogObserver) Observe(_ context.Context, e domain.Event) {
	if e.Summary() {
		logger.Info("[%s] all/%s: %s, %d items, total %d (%v)", e.RequestID, e.Operation, e.Kind, e.Items, e.Total, e.Elapsed)
		return
	}
	logger.Debug("[%s] %s/%s: %s, %d items (%v)", e.RequestID, e.ProviderID, e.Operation, e.Kind, e.Items, e.Elapsed)
}

// DefaultRecorderBuffer is the number of pending events a Recorder holds.
const DefaultRecorderBuffer = 256

// Recorder persists the items of successful invocations to an ItemStore.
// Writes happen on a background goroutine so providers are never slowed
// by storage; when the buffer is full, events are dropped.
type Recorder struct {
	store  driven.ItemStore
	events chan domain.Event
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewRecorder starts a recorder writing to store.
func NewRecorder(store driven.ItemStore, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = DefaultRecorderBuffer
	}
	r := &Recorder{
		store:  store,
		events: make(chan domain.Event, buffer),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// Observe queues successful provider events for recording.
func (r *Recorder) Observe(_ context.Context, e domain.Event) {
	if e.Kind != domain.OutcomeSuccess || len(e.Results) == 0 || e.Summary() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.events <- e:
	default:
		logger.Warn("Recorder buffer full, dropping %d items from %s", len(e.Results), e.ProviderID)
	}
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for e := range r.events {
		if err := r.store.Record(context.Background(), e.ProviderID, e.Results); err != nil {
			logger.Warn("Failed to record items from %s: %v", e.ProviderID, err)
		}
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.events)
	r.mu.Unlock()

	r.wg.Wait()
}

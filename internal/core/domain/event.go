package domain

import "time"

// AggregateProviderID is the provider id on the summary event of a fan-out.
const AggregateProviderID = "*"

// Event describes one classified provider invocation for observers.
type Event struct {
	// RequestID correlates all events of one inbound request.
	RequestID string
	// Operation is the operation that was dispatched.
	Operation Operation
	// ProviderID is the provider the event concerns. It may be the raw
	// requested id when the provider is unknown.
	ProviderID string
	// Kind is the classified outcome.
	Kind OutcomeKind
	// Items is the number of items returned.
	Items int
	// Total is the provider-reported total.
	Total int
	// Elapsed is how long the invocation took.
	Elapsed time.Duration
	// Aggregate is true when the invocation was part of a fan-out.
	Aggregate bool
	// Results carries the items of a successful invocation.
	Results []Item
	// Time is when the event was emitted.
	Time time.Time
}

// Summary reports whether the event sums up a whole fan-out rather than one
// provider invocation.
func (e Event) Summary() bool {
	return e.Aggregate && e.ProviderID == AggregateProviderID
}

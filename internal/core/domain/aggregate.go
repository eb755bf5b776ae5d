package domain

import "time"

// ProviderReport records what one provider contributed to an aggregate.
type ProviderReport struct {
	ProviderID string
	Kind       OutcomeKind
	Items      int
	Total      int
	Elapsed    time.Duration
}

// AggregateResult is the merged answer of a multi-provider request.
type AggregateResult struct {
	// Operation is the operation that was fanned out.
	Operation Operation
	// Kind is OutcomeSuccess or OutcomeEmpty.
	Kind OutcomeKind
	// Items are the successful providers' items in provider selection order.
	Items []Item
	// Total is the sum of the successful providers' totals.
	Total int
	// Elapsed is the wall-clock time from fan-out start to merge completion.
	Elapsed time.Duration
	// Reports holds one entry per eligible provider, in selection order.
	Reports []ProviderReport
}

// OK returns true if at least one provider contributed.
func (r AggregateResult) OK() bool {
	return r.Kind == OutcomeSuccess
}

package driving

import "github.com/custodia-labs/trawl/internal/core/domain"

// StatsService exposes outcome counters for the running process.
type StatsService interface {
	// Snapshot returns the counters collected so far.
	Snapshot() domain.Stats
}

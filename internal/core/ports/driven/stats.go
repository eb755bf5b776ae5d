package driven

import "github.com/custodia-labs/trawl/internal/core/domain"

// StatsRecorder is an Observer whose counts can be read back.
type StatsRecorder interface {
	Observer

	// Snapshot returns a copy of the current counters.
	Snapshot() domain.Stats
}

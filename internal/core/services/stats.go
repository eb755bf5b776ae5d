package services

import (
	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService reads counters from a StatsRecorder.
type StatsService struct {
	recorder driven.StatsRecorder
}

// NewStatsService creates a new stats service.
func NewStatsService(recorder driven.StatsRecorder) *StatsService {
	return &StatsService{recorder: recorder}
}

// Snapshot returns the counters collected so far.
func (s *StatsService) Snapshot() domain.Stats {
	return s.recorder.Snapshot()
}

package httpapi

import (
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// Ports aggregates the driving ports the HTTP server needs.
type Ports struct {
	// Gateway answers single-provider and aggregate queries.
	Gateway driving.GatewayService

	// Stats exposes outcome counters. Optional.
	Stats driving.StatsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Gateway == nil {
		return ErrMissingGateway
	}
	return nil
}

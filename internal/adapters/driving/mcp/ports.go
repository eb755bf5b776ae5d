package mcp

import (
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Gateway answers provider queries.
	Gateway driving.GatewayService

	// History lists previously returned items. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Gateway == nil {
		return ErrMissingGateway
	}
	return nil
}

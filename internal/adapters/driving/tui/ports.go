// Package tui provides an interactive terminal user interface for trawl.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Gateway runs searches against providers.
	Gateway driving.GatewayService

	// Actions copies and opens selected items. Optional.
	Actions driving.ResultActionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Gateway == nil {
		return ErrMissingGateway
	}
	return nil
}

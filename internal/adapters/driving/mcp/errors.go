// Package mcp provides an MCP (Model Context Protocol) server adapter for trawl.
// It lets AI assistants query the gateway's providers through tools.
package mcp

import (
	"errors"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// ErrMissingGateway is returned when the gateway service is not provided.
var ErrMissingGateway = errors.New("mcp: gateway service is required")

// OutcomeError is a failed outcome reported as a tool error.
type OutcomeError struct {
	Kind      domain.OutcomeKind
	Message   string
	Available []string
}

func (e *OutcomeError) Error() string {
	return e.Message
}

func outcomeError(out domain.Outcome) error {
	if out.OK() {
		return nil
	}
	return &OutcomeError{
		Kind:      out.Kind,
		Message:   out.Message(),
		Available: out.Available,
	}
}

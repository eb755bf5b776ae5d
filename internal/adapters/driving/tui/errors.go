package tui

import "errors"

// ErrMissingGateway is returned when the gateway service is not provided.
var ErrMissingGateway = errors.New("tui: gateway service is required")

package search

import "errors"

// ErrNoGateway indicates that no gateway service was provided.
var ErrNoGateway = errors.New("gateway service is required")

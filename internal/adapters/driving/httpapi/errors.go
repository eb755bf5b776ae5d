package httpapi

import "errors"

// ErrMissingGateway is returned when the gateway service is not provided.
var ErrMissingGateway = errors.New("httpapi: gateway service is required")

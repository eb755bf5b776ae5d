// Package httpapi exposes the gateway over HTTP.
//
// Routes live under /api/v1 and mirror the gateway operations. Every
// classified outcome maps to a fixed status code and message, so callers
// never see provider internals.
package httpapi

package driving

import "context"

type requestIDKey struct{}

// WithRequestID returns a context carrying id as the request id.
// Events emitted while serving ctx carry the same id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id carried by ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

package common

import "context"

// ContextKey represents a context key type
type ContextKey string

// ContextKeyRequestID carries the request ID assigned at the edge so that
// layers below the router can tag logs and error responses with it.
const ContextKeyRequestID ContextKey = "request_id"

// WithRequestID adds the request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// GetRequestID extracts the request ID from the context
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(ContextKeyRequestID).(string)
	return requestID, ok
}

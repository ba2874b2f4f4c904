package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	modeKey      contextKey = "mode"
)

// WithRequestID annotates context with the per-invocation correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithMode annotates context with the invocation mode (direct/interactive).
func WithMode(ctx context.Context, mode string) context.Context {
	if mode == "" {
		return ctx
	}
	return context.WithValue(ctx, modeKey, mode)
}

// ModeFromContext returns the invocation mode if present.
func ModeFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(modeKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// Package trace carries the correlation ID that ties the statements of one dataset
// application together in the logs.
package trace

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

// LogField is the log field name for trace IDs.
const LogField = "trace_id"

// WithTraceID adds a trace ID to the context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// IDFromContext returns a trace ID from context if present
func IDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if traceID, ok := ctx.Value(traceIDKey).(string); ok && traceID != "" {
		return traceID, true
	}
	return "", false
}

// EnsureTraceID returns ctx and its trace ID, adding a new random ID when ctx has none.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID, ok := IDFromContext(ctx); ok {
		return ctx, traceID
	}
	traceID := uuid.New().String()
	return WithTraceID(ctx, traceID), traceID
}

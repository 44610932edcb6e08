package ports

import (
	"context"

	"github.com/google/uuid"
)

// Logger defines the structured logging contract shared by every layer. All
// log calls take key/value pairs, must be safe for concurrent use, and should
// enrich entries with the correlation ID found in context. Common fields:
//   - correlation_id (one per session or CLI invocation)
//   - layer (domain|application|infrastructure|cli)
//   - component (session, aggregator, scenario, console, ...)
//   - category / channel / operation / token
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

type correlationIDKey struct{}

// WithCorrelationID attaches the provided correlation ID to the context so
// downstream layers can emit correlated logs and events.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID extracts a correlation ID from context. It returns an empty
// string when none has been set; callers treat that as "uncorrelated".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID produces a new random UUID string.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

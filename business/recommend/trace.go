package recommend

import "context"

type traceKey struct{}

// TraceIDKey carries the request id minted by the HTTP layer.
var TraceIDKey traceKey

// TraceIDFromContext returns the request trace id, or "" for untraced
// contexts such as the batch rebuild.
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}

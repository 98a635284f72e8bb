package logging

import "context"

type contextKey int

const runIDKey contextKey = iota

// WithRunID stamps ctx with the identifier shared by every log entry
// of one pipeline invocation.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunID returns the run identifier stored in ctx, or "".
func RunID(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey).(string); ok {
		return v
	}
	return ""
}

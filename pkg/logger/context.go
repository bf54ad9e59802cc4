package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{ name string }

var (
	runIDKey = ctxKey{"run_id"}
	rowKey   = ctxKey{"row"}
)

// WithRunID returns a context carrying the batch run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// WithRow returns a context carrying the 1-based index of the row being processed.
func WithRow(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, rowKey, index)
}

// RunIDExtractor adds "run_id" when the context carries one.
func RunIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(runIDKey).(string); ok && id != "" {
		return slog.String("run_id", id), true
	}
	return slog.Attr{}, false
}

// RowExtractor adds "row" when the context carries a row index.
func RowExtractor(ctx context.Context) (slog.Attr, bool) {
	if i, ok := ctx.Value(rowKey).(int); ok {
		return slog.Int("row", i), true
	}
	return slog.Attr{}, false
}

// DefaultExtractors returns the extractors used by the CLI.
func DefaultExtractors() []ContextExtractor {
	return []ContextExtractor{RunIDExtractor, RowExtractor}
}

package logger

import (
	"context"
	"errors"
	"log/slog"
)

// sink is a handler that only receives records at or above min.
type sink struct {
	handler slog.Handler
	min     slog.Level
}

// fanout delivers each record to every sink that accepts it. A failing sink does
// not keep the record from the others; their errors are joined.
type fanout struct {
	sinks []sink
}

func newFanout(sinks ...sink) *fanout {
	return &fanout{sinks: sinks}
}

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range f.sinks {
		if s.accepts(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, s := range f.sinks {
		if !s.accepts(ctx, rec.Level) {
			continue
		}
		if err := s.handler.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f *fanout) WithGroup(name string) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f *fanout) derive(fn func(slog.Handler) slog.Handler) *fanout {
	sinks := make([]sink, len(f.sinks))
	for i, s := range f.sinks {
		sinks[i] = sink{handler: fn(s.handler), min: s.min}
	}
	return newFanout(sinks...)
}

func (s sink) accepts(ctx context.Context, level slog.Level) bool {
	return level >= s.min && s.handler.Enabled(ctx, level)
}

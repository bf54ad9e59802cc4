package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/pkg/logger"
)

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{name: "default is info", level: "", wantDebug: false, wantInfo: true},
		{name: "debug", level: "debug", wantDebug: true, wantInfo: true},
		{name: "warn", level: "warn", wantDebug: false, wantInfo: false},
		{name: "unknown falls back to info", level: "loud", wantDebug: false, wantInfo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := logger.New(&buf, logger.Config{Level: tt.level})

			log.Debug("debug line")
			log.Info("info line")
			log.Warn("warn line")

			out := buf.String()
			require.Equal(t, tt.wantDebug, bytes.Contains([]byte(out), []byte("debug line")))
			require.Equal(t, tt.wantInfo, bytes.Contains([]byte(out), []byte("info line")))
			require.Contains(t, out, "warn line")
		})
	}
}

func TestNew_ContextExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(&buf, logger.Config{}, logger.DefaultExtractors()...)

	ctx := logger.WithRow(logger.WithRunID(context.Background(), "run-42"), 3)
	log.WarnContext(ctx, "attachment not found", slog.String("path", "ann.pdf"))

	out := buf.String()
	require.Contains(t, out, "attachment not found")
	require.Contains(t, out, "path=ann.pdf")
	require.Contains(t, out, "run_id=run-42")
	require.Contains(t, out, "row=3")
}

func TestNew_ExtractorsSkipMissingValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(&buf, logger.Config{}, logger.DefaultExtractors()...)

	log.InfoContext(context.Background(), "starting")

	require.NotContains(t, buf.String(), "run_id")
	require.NotContains(t, buf.String(), "row=")
}

func TestExtractors(t *testing.T) {
	t.Parallel()

	ctx := logger.WithRow(logger.WithRunID(context.Background(), "abc"), 7)

	attr, ok := logger.RunIDExtractor(ctx)
	require.True(t, ok)
	require.Equal(t, "abc", attr.Value.String())

	attr, ok = logger.RowExtractor(ctx)
	require.True(t, ok)
	require.Equal(t, int64(7), attr.Value.Int64())

	_, ok = logger.RunIDExtractor(logger.WithRunID(context.Background(), ""))
	require.False(t, ok)
}

func TestContextHandler_KeepsExtractorsAcrossWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(logger.NewContextHandler(base, nil, logger.RowExtractor)).
		With(slog.String("provider", "gmail"))

	log.InfoContext(logger.WithRow(context.Background(), 2), "sent")

	out := buf.String()
	require.Contains(t, out, "provider=gmail")
	require.Contains(t, out, "row=2")
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithSentry(&buf, logger.Config{}, logger.SentryConfig{})

	log.Error("boom")
	require.Contains(t, buf.String(), "boom")
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	require.NotPanics(t, func() { log.Error("discarded") })
}

// Package logger provides structured logging for the mailmerge CLI.
//
// Logs are written through log/slog on top of a charmbracelet/log handler, which
// renders short human-readable lines on stderr. Per-row progress lines are user
// output and are not logged.
//
// # Context Extractors
//
// A ContextExtractor pulls an attribute out of the context on every log call.
// The batch runner stores the run identifier and the current row index on the
// context, and DefaultExtractors turns them into "run_id" and "row" attributes:
//
//	log := logger.New(os.Stderr, logger.Config{Level: "debug"}, logger.DefaultExtractors()...)
//
//	ctx = logger.WithRunID(ctx, runID)
//	ctx = logger.WithRow(ctx, 3)
//	log.WarnContext(ctx, "attachment not found", slog.String("path", "files/ann.pdf"))
//	// WARN attachment not found path=files/ann.pdf run_id=... row=3
//
// # Sentry Integration
//
// NewWithSentry forwards warnings and errors to Sentry when a DSN is configured and
// falls back to console-only logging otherwise. Call Flush before the process exits.
package logger

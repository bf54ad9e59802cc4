package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

// Status is the terminal state of a row.
type Status int

const (
	StatusSent Status = iota + 1
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSent:
		return "sent"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// ReasonDryRun is the reason recorded for rows skipped in dry-run mode.
const ReasonDryRun = "dry-run"

// Outcome is the result of processing one row.
type Outcome struct {
	Index     int // 1-based position in the batch
	Recipient string
	Subject   string
	Status    Status
	Reason    string
	MessageID string
	Warnings  []Warning
	Err       error
}

// Report collects the outcomes of a run in row order.
type Report struct {
	RunID    string
	Total    int
	Sent     int
	Skipped  int
	Failed   int
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusSent:
		r.Sent++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Summary returns a one-line count of outcomes.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d sent, %d skipped, %d failed (%d/%d rows)",
		r.Sent, r.Skipped, r.Failed, len(r.Outcomes), r.Total)
}

// Runner processes a batch of rows one at a time: render, assemble, send.
type Runner struct {
	template  *Template
	assembler *Assembler
	opts      options
}

// NewRunner creates a Runner.
func NewRunner(tmpl *Template, asm *Assembler, opts ...Option) *Runner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Runner{template: tmpl, assembler: asm, opts: o}
}

// Run processes rows in order and returns one Outcome per processed row.
// Outside dry-run the connector is called once before the first row; its failure
// is returned as ErrConnect with no row processed. Row failures never stop the run.
// Cancellation stops before the next row and returns ctx.Err() with the partial report.
func (r *Runner) Run(ctx context.Context, rows []Row) (*Report, error) {
	if r.opts.limit > 0 && r.opts.limit < len(rows) {
		rows = rows[:r.opts.limit]
	}

	report := &Report{RunID: uuid.NewString(), Total: len(rows)}
	ctx = logger.WithRunID(ctx, report.RunID)
	log := r.opts.logger

	var sender mailer.Sender
	if !r.opts.dryRun {
		if r.opts.connector == nil {
			return nil, ErrNoConnector
		}
		s, err := r.opts.connector.Connect(ctx)
		if err != nil {
			return nil, errors.Join(ErrConnect, err)
		}
		if c, ok := s.(io.Closer); ok {
			defer func() {
				if err := c.Close(); err != nil {
					log.WarnContext(ctx, "failed to close sender", slog.String("error", err.Error()))
				}
			}()
		}
		sender = s
	}

	log.DebugContext(ctx, "batch started",
		slog.Int("rows", len(rows)),
		slog.Bool("dry_run", r.opts.dryRun),
	)

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if i > 0 && r.opts.delay > 0 && !r.opts.dryRun {
			if err := sleep(ctx, r.opts.delay); err != nil {
				return report, err
			}
		}

		out := r.process(logger.WithRow(ctx, i+1), i+1, row, sender)
		report.add(out)
		r.print(out, report.Total)
	}

	log.DebugContext(ctx, "batch finished",
		slog.Int("sent", report.Sent),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)

	return report, nil
}

func (r *Runner) process(ctx context.Context, index int, row Row, sender mailer.Sender) Outcome {
	out := Outcome{Index: index, Recipient: r.assembler.Recipient(row)}

	subject, body, err := r.template.Render(row)
	if err != nil {
		return r.fail(ctx, out, err)
	}
	out.Subject = subject

	asm, err := r.assembler.Assemble(ctx, row, subject, body)
	if asm != nil {
		out.Warnings = asm.Warnings
	}
	if err != nil {
		return r.fail(ctx, out, err)
	}

	if r.opts.dryRun {
		out.Status = StatusSkipped
		out.Reason = ReasonDryRun
		return out
	}

	receipt, err := sender.Send(ctx, asm.Email)
	if err != nil {
		r.opts.logger.ErrorContext(ctx, "send failed",
			slog.String("recipient", out.Recipient),
			slog.String("error", err.Error()),
		)
		return r.fail(ctx, out, err)
	}

	out.Status = StatusSent
	if receipt != nil {
		out.MessageID = receipt.ID
	}
	return out
}

// fail records a row-local error. In dry-run the row stays skipped.
func (r *Runner) fail(ctx context.Context, out Outcome, err error) Outcome {
	out.Err = err
	if r.opts.dryRun {
		out.Status = StatusSkipped
		out.Reason = ReasonDryRun
		return out
	}

	out.Status = StatusFailed
	out.Reason = reasonOf(err)
	r.opts.logger.DebugContext(ctx, "row failed", slog.String("reason", out.Reason))
	return out
}

func (r *Runner) print(o Outcome, total int) {
	to := o.Recipient
	if to == "" {
		to = "<no recipient>"
	}
	pos := fmt.Sprintf("[%d/%d]", o.Index, total)

	var line string
	switch {
	case o.Status == StatusSkipped && o.Err != nil:
		line = fmt.Sprintf("[DRY-RUN] %s would fail for %s: %s", pos, to, reasonOf(o.Err))
	case o.Status == StatusSkipped:
		line = fmt.Sprintf("[DRY-RUN] %s would send to %s", pos, to)
		if r.opts.verbose {
			line += fmt.Sprintf(" (subject: %q)", o.Subject)
		}
	case o.Status == StatusSent:
		line = fmt.Sprintf("✓ %s sent to %s", pos, to)
		if r.opts.verbose && o.MessageID != "" {
			line += fmt.Sprintf(" (id: %s)", o.MessageID)
		}
	default:
		line = fmt.Sprintf("✗ %s failed for %s: %s", pos, to, o.Reason)
	}

	fmt.Fprintln(r.opts.output, line)
}

// reasonOf turns a row error into the short text shown to the user.
// Provider failures report the provider's own message.
func reasonOf(err error) string {
	var pe *mailer.ProviderError
	if errors.As(err, &pe) {
		return pe.Message
	}
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return mf.Error()
	}
	return strings.TrimPrefix(err.Error(), "merge: ")
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

// Warning describes an attachment that was skipped.
type Warning struct {
	Pattern  string
	Location string
	Err      error
}

func (w Warning) String() string {
	return fmt.Sprintf("attachment %s not found, skipped", w.Location)
}

// Resolver turns attachment patterns into attachments for a row.
type Resolver struct {
	source storage.Source
	logger *slog.Logger
}

// NewResolver creates a Resolver reading from source. A nil logger discards warnings.
func NewResolver(source storage.Source, log *slog.Logger) *Resolver {
	if log == nil {
		log = logger.NewNope()
	}
	return &Resolver{source: source, logger: log}
}

// Resolve formats each pattern against row and fetches the result, keeping pattern order.
// Missing objects are skipped with a Warning. Missing fields and other read
// failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, row Row, patterns []*Pattern) ([]mailer.Attachment, []Warning, error) {
	var (
		attachments []mailer.Attachment
		warnings    []Warning
	)

	for _, p := range patterns {
		location, err := p.Execute(row)
		if err != nil {
			return nil, warnings, err
		}

		obj, err := r.source.Get(ctx, location)
		if errors.Is(err, storage.ErrNotFound) {
			w := Warning{Pattern: p.String(), Location: location, Err: err}
			warnings = append(warnings, w)
			r.logger.WarnContext(ctx, "attachment not found, skipping", slog.String("path", location))
			continue
		}
		if err != nil {
			return nil, warnings, fmt.Errorf("%w: %s: %w", ErrAttachment, location, err)
		}

		attachments = append(attachments, mailer.Attachment{
			Filename:    obj.Name,
			ContentType: obj.ContentType,
			Content:     obj.Data,
		})
	}

	return attachments, warnings, nil
}

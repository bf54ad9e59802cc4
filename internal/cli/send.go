package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailmerge/pkg/cache"
	"github.com/dmitrymomot/mailmerge/pkg/config"
	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/merge"
	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

const sentryFlushTimeout = 2 * time.Second

func (a *App) runSend(cmd *cobra.Command, g *globalFlags, s *sendFlags) error {
	ctx := cmd.Context()

	cfg, err := config.Load(g.sources(a, s.overlay(cmd)))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewWithSentry(a.stderr, g.logConfig(cfg.Log), cfg.Sentry, logger.DefaultExtractors()...)
	defer logger.Flush(sentryFlushTimeout)

	tmpl, err := merge.LoadTemplate(cfg.Send.Template, cfg.Send.Subject, cfg.Send.FallbackSubject)
	if err != nil {
		return fmt.Errorf("template %s: %w", cfg.Send.Template, err)
	}

	rows, err := merge.ReadRowsFile(cfg.Send.CSV)
	if err != nil {
		return fmt.Errorf("csv %s: %w", cfg.Send.CSV, err)
	}

	source, err := attachmentSource(ctx, cfg)
	if err != nil {
		return err
	}

	asm, err := merge.NewAssembler(merge.AssemblerOptions{
		HTMLAlternative:    !cfg.Send.PlainText,
		AttachmentPatterns: cfg.Send.Attachments,
		Sender:             cfg.Send.From,
		RecipientField:     cfg.Send.RecipientField,
		Layout:             cfg.Send.Layout,
	}, source, log)
	if err != nil {
		return err
	}

	opts := []merge.Option{
		merge.WithDryRun(cfg.Send.DryRun),
		merge.WithOutput(a.stdout),
		merge.WithLogger(log),
		merge.WithDelay(cfg.Send.Delay),
		merge.WithLimit(cfg.Send.Limit),
		merge.WithVerbose(g.verbose),
	}
	if !cfg.Send.DryRun {
		connector, err := a.connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("%w: %w", merge.ErrConnect, err)
		}
		opts = append(opts, merge.WithConnector(connector))
	}

	log.DebugContext(ctx, "starting batch",
		slog.String("provider", cfg.Provider),
		slog.Int("rows", len(rows)),
		slog.Any("fields", tmpl.Fields()),
	)

	report, err := merge.NewRunner(tmpl, asm, opts...).Run(ctx, rows)
	if report != nil {
		fmt.Fprintf(a.stdout, "Done: %s\n", report.Summary())
	}
	return err
}

// attachmentSource reads local files and, when a pattern asks for it, S3 objects.
// Objects are cached for the run so files shared by many rows are read once.
func attachmentSource(ctx context.Context, cfg *config.Config) (storage.Source, error) {
	router := storage.NewRouter(storage.NewLocal(cfg.Send.AttachmentRoot, cfg.S3.MaxObjectSize))

	for _, p := range cfg.Send.Attachments {
		if strings.HasPrefix(p, storage.S3Scheme+"://") {
			s3, err := storage.NewS3(ctx, cfg.S3)
			if err != nil {
				return nil, err
			}
			router.Handle(storage.S3Scheme, s3)
			break
		}
	}

	return storage.NewCached(router,
		cache.WithMaxCost(cfg.Send.CacheSize),
		cache.WithMaxEntries(cfg.Send.CacheEntries),
	), nil
}

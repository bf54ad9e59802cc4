// Package merge implements the mail-merge pipeline: rows are read from CSV,
// rendered through a subject/body template, assembled into messages with
// optional HTML alternative and attachments, and delivered one at a time.
//
// # Templates
//
// Placeholders name row fields in braces. Doubled braces are literals:
//
//	tmpl, err := merge.NewTemplate("Hi {name}", "Hello {name},\nYour code is {{{code}}}.")
//	subject, body, err := tmpl.Render(row)
//
// Syntax errors are reported by NewTemplate and Compile as ErrTemplateSyntax.
// A field missing from a row is a *MissingFieldError and fails only that row.
//
// # Running a batch
//
//	rows, err := merge.ReadRowsFile("contacts.csv")
//	asm, err := merge.NewAssembler(merge.AssemblerOptions{
//		Sender:             "Team <team@example.com>",
//		HTMLAlternative:    true,
//		AttachmentPatterns: []string{"files/{name}.pdf"},
//	}, storage.NewLocal("", 0), log)
//
//	runner := merge.NewRunner(tmpl, asm,
//		merge.WithConnector(connector),
//		merge.WithLogger(log),
//	)
//	report, err := runner.Run(ctx, rows)
//
// Run prints one progress line per row and returns a Report holding exactly one
// Outcome per processed row, in input order. Only a failed connection returns an
// error before any row is processed; row failures are recorded as StatusFailed.
// With WithDryRun every row is StatusSkipped and the connector is never called.
package merge

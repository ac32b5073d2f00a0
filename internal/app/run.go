package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mei-archive/meilint/internal/clean"
	"github.com/mei-archive/meilint/internal/ctxlog"
	"github.com/mei-archive/meilint/internal/fsutil"
	"github.com/mei-archive/meilint/internal/lint"
	"github.com/mei-archive/meilint/internal/scanner"
)

// Run executes one lint (or fix) pass over the archive. A non-nil error
// means the run failed: either an IO problem, or a report containing
// Error-severity findings.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.")

	model, err := a.resolveModel(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	files, err := fsutil.FindFilesByExtensions(model.Path, model.Extensions)
	if err != nil {
		return fmt.Errorf("failed to find archive files in %s: %w", model.Path, err)
	}
	if len(files) == 0 {
		a.logger.Warn("No archive files found.", "path", model.Path, "extensions", model.Extensions)
		return nil
	}
	a.logger.Info("Archive files discovered.", "count", len(files), "path", model.Path)

	opts := lint.Options{
		ReferenceAttributes: model.ReferenceAttributes,
		Root:                model.Path,
		CheckNaming:         model.CheckNaming,
		CheckDuplicates:     model.CheckDuplicates,
	}

	// A fix run cleans first and then lints the rewritten files, so
	// conditions the cleaner cannot repair still fail the run.
	var cleanerFindings []lint.Finding
	if a.config.Fix {
		cleanerFindings = a.fix(ctx, files, model.ReferenceAttributes)
	}

	a.logger.Debug("Scanner starting.", "workers", model.Workers)
	report := scanner.New(model.Workers, opts).Run(ctx, files)
	if !opts.CheckDuplicates {
		// With the duplicate check off the scan stays silent about the
		// non-identical duplicates the cleaner refused to collapse.
		report.Add(cleanerFindings...)
		report.Sort()
	}

	if err := a.render(report); err != nil {
		return err
	}

	if report.HasErrors() {
		return fmt.Errorf("%d of %d files failed validation", report.FailedFiles(), len(files))
	}
	a.logger.Info("All files valid.", "files", len(files), "warnings", report.Warnings())
	return nil
}

// fix rewrites files ahead of the lint pass. Cleaning is sequential: it
// mutates the archive and the log of removals should follow file order.
// It returns the findings for duplicates the cleaner refused to collapse.
func (a *App) fix(ctx context.Context, files []string, refAttrs []string) []lint.Finding {
	cleaner := clean.New(refAttrs)
	var findings []lint.Finding

	for _, path := range files {
		change, fs, err := cleaner.CleanFile(ctx, path)
		if err != nil {
			// The lint pass over the untouched file reports the failure.
			a.logger.Warn("File left unchanged.", "path", path, "error", err)
			continue
		}
		findings = append(findings, fs...)
		if change.Changed() {
			a.logger.Info("File rewritten.", "path", path, "removed_zones", len(change.RemovedZones))
		}
	}
	return findings
}

// render writes the report to stdout and, when configured, to a file.
func (a *App) render(report *lint.Report) error {
	if err := a.writeReport(report, a.outW); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if a.config.ReportFile == "" {
		return nil
	}

	f, err := os.Create(a.config.ReportFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()
	if err := a.writeReport(report, f); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

func (a *App) writeReport(report *lint.Report, w io.Writer) error {
	if a.config.ReportFormat == "json" {
		return report.WriteJSON(w)
	}
	return report.WriteText(w)
}

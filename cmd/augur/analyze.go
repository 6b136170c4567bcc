package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augurlabs/augur/internal/output"
	"github.com/augurlabs/augur/internal/progress"
	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/analyzer/deadcode"
	"github.com/augurlabs/augur/pkg/analyzer/duplicates"
	"github.com/augurlabs/augur/pkg/analyzer/magic"
	"github.com/augurlabs/augur/pkg/analyzer/metrics"
	"github.com/augurlabs/augur/pkg/issue"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Run every enabled detector and merge the findings",
		ArgsUsage: "[path...]",
		Action:    runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := scanFiles(cfg, getPaths(c))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	ctx, cancel := signalContext()
	defer cancel()

	report := &output.Report{Title: "Analysis"}
	var issues []issue.Issue

	if cfg.Analysis.Metrics {
		analysis, err := runPhase(ctx, "Metrics", files, func(ctx context.Context) (*metrics.Analysis, error) {
			az := metrics.New(metrics.WithConfig(cfg))
			defer az.Close()
			return az.Analyze(ctx, files)
		})
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		issues = append(issues, analysis.Issues...)
	}

	if cfg.Analysis.MagicNumbers {
		found, err := runPhase(ctx, "Magic numbers", files, func(ctx context.Context) ([]issue.Issue, error) {
			az := magic.NewFromConfig(cfg)
			defer az.Close()
			return az.Analyze(ctx, files)
		})
		if err != nil {
			return fmt.Errorf("magic numbers: %w", err)
		}
		issues = append(issues, found...)
	}

	if cfg.Analysis.DeadCode {
		found, err := runPhase(ctx, "Dead code", files, func(ctx context.Context) ([]issue.Issue, error) {
			az := deadcode.New(
				deadcode.WithMaxFileSize(cfg.Analysis.MaxFileSize),
				deadcode.WithWorkers(cfg.Analysis.Workers),
			)
			defer az.Close()
			return az.Analyze(ctx, files)
		})
		if err != nil {
			return fmt.Errorf("dead code: %w", err)
		}
		issues = append(issues, found...)
	}

	if cfg.Analysis.Duplicates {
		analysis, err := runPhase(ctx, "Duplicates", files, func(ctx context.Context) (*duplicates.Analysis, error) {
			az := duplicates.New(duplicates.WithConfig(cfg))
			defer az.Close()
			return az.Analyze(ctx, files)
		})
		if err != nil {
			return fmt.Errorf("duplicates: %w", err)
		}
		issues = append(issues, analysis.Issues...)
	}

	issue.Sort(issues)
	report.Sections = append(report.Sections, output.IssueTable("Findings", issues))
	report.Data = map[string]any{
		"files":  len(files),
		"issues": issues,
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(report)
}

// runPhase runs one detector behind its own progress bar.
func runPhase[T any](ctx context.Context, label string, files []string, fn func(context.Context) (T, error)) (T, error) {
	bar := progress.NewBar(label+"...", len(files))
	result, err := fn(analyzer.WithTracker(ctx, bar.Tracker()))
	bar.Finish()
	return result, err
}

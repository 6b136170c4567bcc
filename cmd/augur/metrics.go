package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augurlabs/augur/internal/output"
	"github.com/augurlabs/augur/internal/progress"
	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/analyzer/metrics"
)

func metricsCmd() *cli.Command {
	return &cli.Command{
		Name:      "metrics",
		Aliases:   []string{"cx"},
		Usage:     "Analyze complexity, method length, nesting and class size",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cyclomatic-threshold",
				Usage: "Override the cyclomatic complexity threshold",
			},
			&cli.IntFlag{
				Name:  "cognitive-threshold",
				Usage: "Override the cognitive complexity threshold",
			},
		},
		Action: runMetrics,
	}
}

func runMetrics(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if v := c.Int("cyclomatic-threshold"); v > 0 {
		cfg.Thresholds.CyclomaticComplexity = v
	}
	if v := c.Int("cognitive-threshold"); v > 0 {
		cfg.Thresholds.CognitiveComplexity = v
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

	bar := progress.NewBar("Analyzing metrics...", len(files))
	ctx = analyzer.WithTracker(ctx, bar.Tracker())

	az := metrics.New(metrics.WithConfig(cfg))
	defer az.Close()

	analysis, err := az.Analyze(ctx, files)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.MetricsReport(analysis))
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augurlabs/augur/internal/output"
	"github.com/augurlabs/augur/internal/progress"
	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/analyzer/duplicates"
)

func duplicatesCmd() *cli.Command {
	return &cli.Command{
		Name:      "duplicates",
		Aliases:   []string{"dup"},
		Usage:     "Detect duplicated code with exact, structural and semantic matching",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "min-lines",
				Usage: "Override the exact-match window size",
			},
			&cli.Float64Flag{
				Name:  "similarity",
				Usage: "Override the semantic similarity threshold (0.0-1.0)",
			},
		},
		Action: runDuplicates,
	}
}

func runDuplicates(c *cli.Context) error {
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

	bar := progress.NewBar("Detecting duplicates...", len(files))
	ctx = analyzer.WithTracker(ctx, bar.Tracker())

	opts := []duplicates.Option{duplicates.WithConfig(cfg)}
	if v := c.Int("min-lines"); v > 0 {
		opts = append(opts, duplicates.WithMinLines(v))
	}
	if v := c.Float64("similarity"); v > 0 {
		opts = append(opts, duplicates.WithSimilarityThreshold(v))
	}

	az := duplicates.New(opts...)
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

	return formatter.Output(output.DuplicatesReport(analysis))
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augurlabs/augur/internal/output"
	"github.com/augurlabs/augur/internal/progress"
	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/analyzer/deadcode"
	"github.com/augurlabs/augur/pkg/issue"
)

func deadcodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "deadcode",
		Aliases:   []string{"dc"},
		Usage:     "Detect unreachable statements and unused variables",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "confidence",
				Value: 0,
				Usage: "Drop findings below this confidence (0-100)",
			},
		},
		Action: runDeadcode,
	}
}

func runDeadcode(c *cli.Context) error {
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

	bar := progress.NewBar("Detecting dead code...", len(files))
	ctx = analyzer.WithTracker(ctx, bar.Tracker())

	az := deadcode.New(
		deadcode.WithMaxFileSize(cfg.Analysis.MaxFileSize),
		deadcode.WithWorkers(cfg.Analysis.Workers),
	)
	defer az.Close()

	issues, err := az.Analyze(ctx, files)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if minConfidence := c.Int("confidence"); minConfidence > 0 {
		filtered := issues[:0]
		for _, is := range issues {
			if is.Confidence >= minConfidence {
				filtered = append(filtered, is)
			}
		}
		issues = filtered
	}
	issue.Sort(issues)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.IssueTable("Dead Code", issues))
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augurlabs/augur/internal/output"
	"github.com/augurlabs/augur/internal/progress"
	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/analyzer/magic"
)

func magicCmd() *cli.Command {
	return &cli.Command{
		Name:      "magic",
		Usage:     "Detect magic numbers that deserve named constants",
		ArgsUsage: "[path...]",
		Action:    runMagic,
	}
}

func runMagic(c *cli.Context) error {
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

	bar := progress.NewBar("Scanning for magic numbers...", len(files))
	ctx = analyzer.WithTracker(ctx, bar.Tracker())

	az := magic.NewFromConfig(cfg)
	defer az.Close()

	issues, err := az.Analyze(ctx, files)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.IssueTable("Magic Numbers", issues))
}

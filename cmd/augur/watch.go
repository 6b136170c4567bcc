package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/augurlabs/augur/internal/output"
	"github.com/augurlabs/augur/pkg/analyzer/metrics"
	"github.com/augurlabs/augur/pkg/config"
	"github.com/augurlabs/augur/pkg/watch"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Re-analyze files as they change",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: watch.DefaultDebounce,
				Usage: "Quiet period before a changed file is re-analyzed",
			},
		},
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	root := "."
	if c.Args().Len() > 0 {
		root = c.Args().First()
	}

	w, err := watch.New(root, cfg, c.Duration("debounce"))
	if err != nil {
		return err
	}
	defer w.Stop()

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	ctx, cancel := signalContext()
	defer cancel()

	w.SetCallback(func(path string) {
		analyzeChanged(ctx, cfg, formatter, path)
	})

	color.Cyan("Watching %s for changes, press Ctrl+C to stop", root)
	err = w.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// analyzeChanged runs the metric detector on one changed file.
func analyzeChanged(ctx context.Context, cfg *config.Config, formatter *output.Formatter, path string) {
	start := time.Now()

	az := metrics.New(metrics.WithConfig(cfg))
	defer az.Close()

	analysis, err := az.Analyze(ctx, []string{path})
	if err != nil {
		formatter.Error("%s: %v", path, err)
		return
	}

	color.Yellow("\n%s (%s)", path, time.Since(start).Round(time.Millisecond))
	if len(analysis.Issues) == 0 {
		formatter.Success("no findings")
		return
	}
	if err := formatter.Output(output.IssueTable("", analysis.Issues)); err != nil {
		fmt.Println(err)
	}
}

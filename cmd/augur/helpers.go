package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/augurlabs/augur/internal/output"
	"github.com/augurlabs/augur/internal/scanner"
	"github.com/augurlabs/augur/pkg/config"
)

// getPaths returns positional path arguments, defaulting to ["."].
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig resolves the configuration from --config or the default
// lookup locations.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// scanFiles expands the given paths into the analyzable file set.
func scanFiles(cfg *config.Config, paths []string) ([]string, error) {
	scan := scanner.New(cfg)

	var files []string
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			ok, err := scan.ScanFile(absPath)
			if err != nil {
				return nil, err
			}
			if ok {
				files = append(files, absPath)
			}
			continue
		}

		found, err := scan.ScanDir(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

// newFormatter builds the formatter from CLI flags with config defaults.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := cfg.Output.Format
	if f := c.String("format"); f != "" {
		format = f
	}
	colored := cfg.Output.Color && !c.Bool("no-color")
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), colored)
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

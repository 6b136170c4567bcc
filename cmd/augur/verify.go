package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/augurlabs/augur/internal/output"
	"github.com/augurlabs/augur/pkg/analyzer/mirror"
	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/parser"
)

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Validate a proposed refactoring against the original code",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "original",
				Usage:    "File holding the original code block",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "candidate",
				Usage:    "File holding the proposed replacement",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Language tag (go, python, typescript, ...); inferred from --original when empty",
			},
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Issue kind being fixed (DuplicateCode, MagicNumber, DeepNesting, LongMethod, ...)",
			},
		},
		Action: runVerify,
	}
}

func runVerify(c *cli.Context) error {
	original, err := os.ReadFile(c.String("original"))
	if err != nil {
		return fmt.Errorf("read original: %w", err)
	}
	candidate, err := os.ReadFile(c.String("candidate"))
	if err != nil {
		return fmt.Errorf("read candidate: %w", err)
	}

	lang := parser.Language(c.String("language"))
	if lang == "" {
		lang = parser.DetectLanguage(c.String("original"))
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	v := mirror.New()
	defer v.Close()

	res := v.Validate(mirror.Request{
		Original:  string(original),
		Candidate: string(candidate),
		Language:  lang,
		IssueKind: issue.Kind(c.String("kind")),
	})

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := formatter.Output(output.ValidationReport(res)); err != nil {
		return err
	}
	if res.Badge == mirror.BadgeFailed {
		return cli.Exit("", 1)
	}
	return nil
}

// Package magic detects magic numbers: numeric literals that repeat
// without a named constant behind them.
package magic

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/augurlabs/augur/internal/fileproc"
	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/config"
	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/parser"
)

// Ensure Analyzer implements analyzer.FileAnalyzer.
var _ analyzer.FileAnalyzer[[]issue.Issue] = (*Analyzer)(nil)

// ignoredValues are conventional numbers that are not worth naming.
var ignoredValues = map[float64]bool{
	0: true, 1: true, -1: true, 2: true, 10: true, 100: true, 1000: true,
}

// Analyzer finds magic numbers in source files.
type Analyzer struct {
	parser      *parser.Parser
	maxFileSize int64
	workers     int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithMaxFileSize sets the maximum file size to analyze (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(a *Analyzer) {
		a.maxFileSize = maxSize
	}
}

// WithWorkers sets the worker pool size (0 = default).
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// New creates a magic-number analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{parser: parser.New()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewFromConfig creates a magic-number analyzer from a config.
func NewFromConfig(cfg *config.Config) *Analyzer {
	return New(
		WithMaxFileSize(cfg.Analysis.MaxFileSize),
		WithWorkers(cfg.Analysis.Workers),
	)
}

// Analyze scans all files in parallel and returns one issue per distinct
// surviving numeric value per file, carrying its occurrence count.
func (a *Analyzer) Analyze(ctx context.Context, files []string) ([]issue.Issue, error) {
	perFile, _ := fileproc.MapFiles(ctx, files, a.maxFileSize, a.workers, func(psr *parser.Parser, path string) ([]issue.Issue, error) {
		result, err := psr.ParseFile(path)
		if err != nil {
			return nil, err
		}
		return AnalyzeParsed(result), nil
	})

	var issues []issue.Issue
	for _, fi := range perFile {
		issues = append(issues, fi...)
	}
	issue.Sort(issues)
	return issues, nil
}

// AnalyzeFile scans a single file.
func (a *Analyzer) AnalyzeFile(path string) ([]issue.Issue, error) {
	result, err := a.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return AnalyzeParsed(result), nil
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// occurrence records where one literal of a value appeared.
type occurrence struct {
	line uint32
	text string
}

// AnalyzeParsed walks every numeric literal in a parsed file, filters the
// ignore set and magnitudes of at most one, and emits one issue per
// distinct surviving value.
func AnalyzeParsed(result *parser.ParseResult) []issue.Issue {
	table := result.Table()

	byValue := make(map[float64][]occurrence)
	for node := range parser.NodesOfTypes(result.Tree.RootNode(), table.NumberLiteral) {
		text := parser.GetNodeText(node, result.Source)
		value, ok := parseNumber(text)
		if !ok {
			continue
		}
		if ignoredValues[value] || math.Abs(value) <= 1 {
			continue
		}
		byValue[value] = append(byValue[value], occurrence{
			line: node.StartPoint().Row + 1,
			text: text,
		})
	}

	values := make([]float64, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Float64s(values)

	issues := make([]issue.Issue, 0, len(values))
	for _, v := range values {
		occs := byValue[v]
		first := occs[0]
		issues = append(issues, issue.Issue{
			Kind:       issue.MagicNumber,
			Severity:   severityFor(len(occs)),
			Confidence: 70,
			Description: fmt.Sprintf("numeric literal %s appears %d time(s) without a named constant",
				first.text, len(occs)),
			Recommendation: "extract the value into a named constant",
			FilePath:       result.Path,
			LineStart:      first.line,
			LineEnd:        first.line,
			CodeBlock:      first.text,
			Metrics: map[string]any{
				"value":       v,
				"occurrences": len(occs),
			},
		})
	}
	return issues
}

// severityFor scales with how often the value repeats.
func severityFor(occurrences int) issue.Severity {
	switch {
	case occurrences >= 10:
		return issue.SeverityHigh
	case occurrences >= 5:
		return issue.SeverityMedium
	default:
		return issue.SeverityLow
	}
}

// parseNumber parses a numeric literal's text, handling the separator and
// suffix conventions of the supported languages.
func parseNumber(text string) (float64, bool) {
	cleaned := strings.ReplaceAll(text, "_", "")
	cleaned = strings.TrimRight(cleaned, "fFlLuUdDmM")
	if cleaned == "" {
		return 0, false
	}

	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return v, true
	}
	// Hex, octal and binary forms.
	if v, err := strconv.ParseInt(cleaned, 0, 64); err == nil {
		return float64(v), true
	}
	return 0, false
}

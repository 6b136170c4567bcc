// Package metrics computes per-function and per-class code metrics and
// classifies them against severity tiers.
package metrics

import (
	"context"
	"fmt"
	"sort"

	"github.com/augurlabs/augur/internal/fileproc"
	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/config"
	"github.com/augurlabs/augur/pkg/extract"
	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/parser"
	"github.com/augurlabs/augur/pkg/stats"
)

// Ensure Analyzer implements analyzer.FileAnalyzer.
var _ analyzer.FileAnalyzer[*Analysis] = (*Analyzer)(nil)

// Analyzer runs the metric engine over files.
type Analyzer struct {
	parser      *parser.Parser
	cfg         *config.Config
	thresholds  thresholdSet
	maxFileSize int64
	workers     int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithConfig overrides the default configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.cfg = cfg
	}
}

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

// New creates a metric analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		parser: parser.New(),
		cfg:    config.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.thresholds = thresholdsFrom(a.cfg)
	if a.maxFileSize == 0 {
		a.maxFileSize = a.cfg.Analysis.MaxFileSize
	}
	if a.workers == 0 {
		a.workers = a.cfg.Analysis.Workers
	}
	return a
}

// Analyze runs the metric engine over all files in parallel. Progress is
// tracked via context using analyzer.WithTracker. Per-file failures are
// skipped; the remaining files still produce results.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*Analysis, error) {
	results, _ := fileproc.MapFiles(ctx, files, a.maxFileSize, a.workers, func(psr *parser.Parser, path string) (FileResult, error) {
		result, err := psr.ParseFile(path)
		if err != nil {
			return FileResult{}, err
		}
		return a.analyzeParseResult(result), nil
	})

	return a.buildAnalysis(results), nil
}

// AnalyzeFile runs the metric engine over a single file.
func (a *Analyzer) AnalyzeFile(path string) (*FileResult, error) {
	result, err := a.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	fr := a.analyzeParseResult(result)
	return &fr, nil
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// analyzeParseResult runs every metric category over one parsed file.
// Categories are isolated: a panic in one is recovered, recorded in
// Skipped, and leaves the other categories' output intact.
func (a *Analyzer) analyzeParseResult(result *parser.ParseResult) FileResult {
	fr := FileResult{
		Path:      result.Path,
		Language:  string(result.Language),
		Functions: make([]FunctionResult, 0),
	}

	a.runCategory(&fr, "functions", func() {
		a.analyzeFunctions(result, &fr)
	})
	a.runCategory(&fr, "classes", func() {
		a.analyzeClasses(result, &fr)
	})

	issue.Sort(fr.Issues)
	return fr
}

// runCategory runs one metric category, recovering panics so a grammar
// oddity in one category cannot abort the file.
func (a *Analyzer) runCategory(fr *FileResult, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			fr.Skipped = append(fr.Skipped, fmt.Sprintf("%s: %v", name, r))
		}
	}()
	fn()
}

func (a *Analyzer) analyzeFunctions(result *parser.ParseResult, fr *FileResult) {
	table := result.Table()

	for _, fn := range extract.Functions(result) {
		m := FunctionMetrics{
			Cyclomatic: Cyclomatic(fn.Body, result.Source, table),
			Cognitive:  Cognitive(fn.Body, result.Source, table),
			MaxNesting: MaxNesting(fn.Body, table),
			Parameters: len(fn.Parameters),
			Lines:      EffectiveLines(parser.GetNodeText(fn.Node, result.Source)),
		}
		fr.Functions = append(fr.Functions, FunctionResult{
			Name:      fn.Name,
			StartLine: fn.StartLine,
			EndLine:   fn.EndLine,
			Metrics:   m,
		})
		fr.Issues = append(fr.Issues, a.classifyFunction(result, fn, m)...)
	}
}

// classifyFunction compares one function's metrics against the tier
// tables and emits issues for every crossed tier.
func (a *Analyzer) classifyFunction(result *parser.ParseResult, fn extract.FunctionRecord, m FunctionMetrics) []issue.Issue {
	var issues []issue.Issue
	penalty := relaxation(fn.Name)

	emit := func(kind issue.Kind, severity issue.Severity, baseConfidence int, description, recommendation string, metrics map[string]any) {
		if severity == "" {
			return
		}
		issues = append(issues, issue.Issue{
			Kind:           kind,
			Severity:       severity,
			Confidence:     issue.ClampConfidence(baseConfidence - penalty),
			Description:    description,
			Recommendation: recommendation,
			FilePath:       result.Path,
			FunctionName:   fn.Name,
			LineStart:      fn.StartLine,
			LineEnd:        fn.EndLine,
			CodeBlock:      parser.GetNodeText(fn.Node, result.Source),
			Metrics:        metrics,
		})
	}

	t := a.thresholds

	emit(issue.HighComplexity,
		t.cyclomatic.Classify(float64(m.Cyclomatic)), 90,
		fmt.Sprintf("function %q has cyclomatic complexity %d", fn.Name, m.Cyclomatic),
		"split the function into smaller units with fewer branches",
		map[string]any{"cyclomatic": m.Cyclomatic})

	emit(issue.CognitiveComplexity,
		t.cognitive.Classify(float64(m.Cognitive)), 85,
		fmt.Sprintf("function %q has cognitive complexity %d", fn.Name, m.Cognitive),
		"flatten nested control flow and extract helper functions",
		map[string]any{"cognitive": m.Cognitive})

	emit(issue.DeepNesting,
		t.nesting.Classify(float64(m.MaxNesting)), 85,
		fmt.Sprintf("function %q nests %d levels deep", fn.Name, m.MaxNesting),
		"use early returns or extract the inner blocks",
		map[string]any{"max_nesting": m.MaxNesting})

	emit(issue.LongParameterList,
		t.parameters.Classify(float64(m.Parameters)), 90,
		fmt.Sprintf("function %q takes %d parameters", fn.Name, m.Parameters),
		"group related parameters into a struct or options type",
		map[string]any{"parameters": m.Parameters})

	lengthSeverity := t.methodLines.Classify(float64(m.Lines))
	if penalty > 0 {
		// Orchestration and test functions legitimately coordinate many
		// steps, so length findings on them drop one tier.
		lengthSeverity = lowerTier(lengthSeverity)
	}
	emit(issue.LongMethod,
		lengthSeverity, 80,
		fmt.Sprintf("function %q spans %d effective lines", fn.Name, m.Lines),
		"extract cohesive sections into named helpers",
		map[string]any{"lines": m.Lines})

	return issues
}

// Reference sizes for the god-class score sub-metrics. Each sub-score is
// value/reference*100 capped at 100.
const (
	classLineReference   = 500.0
	classMethodReference = 30.0
	classFieldReference  = 20.0
)

func subScore(value, reference float64) float64 {
	score := value / reference * 100
	if score > 100 {
		return 100
	}
	return score
}

func (a *Analyzer) analyzeClasses(result *parser.ParseResult, fr *FileResult) {
	for _, cls := range extract.Classes(result) {
		lines := cls.Lines()
		m := ClassMetrics{
			Lines:   lines,
			Methods: len(cls.Methods),
			Fields:  len(cls.Fields),
		}
		m.Score = 0.4*subScore(float64(lines), classLineReference) +
			0.4*subScore(float64(m.Methods), classMethodReference) +
			0.2*subScore(float64(m.Fields), classFieldReference)

		fr.Classes = append(fr.Classes, ClassResult{
			Name:      cls.Name,
			StartLine: cls.StartLine,
			EndLine:   cls.EndLine,
			Metrics:   m,
		})

		// Either size threshold alone is enough to classify.
		severity := a.thresholds.classLines.Classify(float64(lines))
		if methodSeverity := a.thresholds.classMethods.Classify(float64(m.Methods)); methodSeverity.Rank() > severity.Rank() {
			severity = methodSeverity
		}
		if severity == "" {
			continue
		}

		fr.Issues = append(fr.Issues, issue.Issue{
			Kind:       issue.GodClass,
			Severity:   severity,
			Confidence: 85,
			Description: fmt.Sprintf("class %q has %d lines and %d methods (score %.0f)",
				cls.Name, lines, m.Methods, m.Score),
			Recommendation: "split responsibilities into focused types",
			FilePath:       result.Path,
			ClassName:      cls.Name,
			LineStart:      cls.StartLine,
			LineEnd:        cls.EndLine,
			Metrics: map[string]any{
				"lines":   lines,
				"methods": m.Methods,
				"fields":  m.Fields,
				"score":   m.Score,
			},
		})
	}
}

// buildAnalysis merges per-file results into a deterministic Analysis.
func (a *Analyzer) buildAnalysis(results []FileResult) *Analysis {
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	analysis := &Analysis{Files: results}
	var cyclomatic, cognitive []float64

	for _, fr := range results {
		analysis.Summary.TotalFunctions += len(fr.Functions)
		analysis.Summary.TotalClasses += len(fr.Classes)
		for _, fn := range fr.Functions {
			cyclomatic = append(cyclomatic, float64(fn.Metrics.Cyclomatic))
			cognitive = append(cognitive, float64(fn.Metrics.Cognitive))
		}
		analysis.Issues = append(analysis.Issues, fr.Issues...)
	}

	issue.Sort(analysis.Issues)
	analysis.Summary.TotalFiles = len(results)
	analysis.Summary.Cyclomatic = stats.Summarize(cyclomatic)
	analysis.Summary.Cognitive = stats.Summarize(cognitive)
	analysis.Summary.IssueCount = len(analysis.Issues)
	analysis.Summary.BySeverity = issue.CountBySeverity(analysis.Issues)

	return analysis
}

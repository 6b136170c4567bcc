// Package deadcode detects unreachable statements and textually unused
// variables. The unused-variable pass is a textual approximation with no
// scope analysis; an identical name reused in an unrelated scope hides a
// genuinely unused variable.
package deadcode

import (
	"context"
	"fmt"
	"regexp"

	"github.com/augurlabs/augur/internal/fileproc"
	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/lang"
	"github.com/augurlabs/augur/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Ensure Analyzer implements analyzer.FileAnalyzer.
var _ analyzer.FileAnalyzer[[]issue.Issue] = (*Analyzer)(nil)

const (
	unreachableConfidence = 95
	unusedConfidence      = 80
)

// Analyzer finds dead code in source files.
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

// New creates a dead-code analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{parser: parser.New()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze scans all files in parallel.
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

// AnalyzeParsed runs both dead-code passes over one parsed file.
func AnalyzeParsed(result *parser.ParseResult) []issue.Issue {
	table := result.Table()
	issues := unreachableAfterReturn(result, table)
	issues = append(issues, unusedVariables(result, table)...)
	issue.Sort(issues)
	return issues
}

// unreachableAfterReturn flags statements that follow a return which is
// not the last statement of its enclosing block.
func unreachableAfterReturn(result *parser.ParseResult, table *lang.Table) []issue.Issue {
	var issues []issue.Issue

	for ret := range parser.NodesOfTypes(result.Tree.RootNode(), table.Return) {
		block := ret.Parent()
		if block == nil {
			continue
		}

		trailing := statementsAfter(block, ret)
		if len(trailing) == 0 {
			continue
		}

		first := trailing[0]
		last := trailing[len(trailing)-1]
		issues = append(issues, issue.Issue{
			Kind:       issue.DeadCode,
			Severity:   unreachableSeverity(len(trailing)),
			Confidence: unreachableConfidence,
			Description: fmt.Sprintf("%d statement(s) after return are unreachable",
				len(trailing)),
			Recommendation: "remove the unreachable statements",
			FilePath:       result.Path,
			LineStart:      first.StartPoint().Row + 1,
			LineEnd:        last.EndPoint().Row + 1,
			CodeBlock:      string(result.Source[first.StartByte():last.EndByte()]),
			Metrics: map[string]any{
				"unreachable_statements": len(trailing),
			},
		})
	}

	return issues
}

// statementsAfter returns the named siblings that follow node inside
// block, excluding closing-brace trivia.
func statementsAfter(block *sitter.Node, node *sitter.Node) []*sitter.Node {
	var after []*sitter.Node
	seen := false
	for i := range int(block.NamedChildCount()) {
		child := block.NamedChild(i)
		if seen {
			after = append(after, child)
			continue
		}
		if child.StartByte() == node.StartByte() && child.EndByte() == node.EndByte() {
			seen = true
		}
	}
	return after
}

func unreachableSeverity(count int) issue.Severity {
	switch {
	case count >= 5:
		return issue.SeverityHigh
	case count >= 2:
		return issue.SeverityMedium
	default:
		return issue.SeverityLow
	}
}

// unusedVariables flags declarations whose identifier never appears in
// the source after the declaration's end offset.
func unusedVariables(result *parser.ParseResult, table *lang.Table) []issue.Issue {
	var issues []issue.Issue

	for decl := range parser.NodesOfTypes(result.Tree.RootNode(), table.Variable) {
		name := declaredName(decl, result.Source, table)
		if name == "" || name == "_" {
			continue
		}

		rest := result.Source[decl.EndByte():]
		if identifierPattern(name).Match(rest) {
			continue
		}

		issues = append(issues, issue.Issue{
			Kind:           issue.DeadCode,
			Severity:       issue.SeverityLow,
			Confidence:     unusedConfidence,
			Description:    fmt.Sprintf("variable %q is never used after its declaration", name),
			Recommendation: "remove the declaration or use the variable",
			FilePath:       result.Path,
			FunctionName:   name,
			LineStart:      decl.StartPoint().Row + 1,
			LineEnd:        decl.EndPoint().Row + 1,
			CodeBlock:      parser.GetNodeText(decl, result.Source),
			Metrics: map[string]any{
				"variable": name,
			},
		})
	}

	return issues
}

// declaredName extracts the identifier bound by a declaration node.
func declaredName(decl *sitter.Node, source []byte, table *lang.Table) string {
	if nameNode := decl.ChildByFieldName("name"); nameNode != nil {
		return parser.GetNodeText(nameNode, source)
	}
	if left := decl.ChildByFieldName("left"); left != nil {
		if table.Identifier.Has(left.Type()) {
			return parser.GetNodeText(left, source)
		}
		if ident := parser.FirstChildOfTypes(left, table.Identifier); ident != nil {
			return parser.GetNodeText(ident, source)
		}
	}
	if ident := parser.FirstChildOfTypes(decl, table.Identifier); ident != nil {
		return parser.GetNodeText(ident, source)
	}
	return ""
}

// identifierPattern matches a whole-word occurrence of name.
func identifierPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

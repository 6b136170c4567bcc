// Package duplicates finds duplicated code across a file set with three
// independent algorithms: exact normalized-line windows, structural
// canonical-token hashing, and semantic token-set similarity. Their
// results are merged and overlap-filtered into one group list.
package duplicates

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/sourcegraph/conc"

	"github.com/augurlabs/augur/internal/fileproc"
	"github.com/augurlabs/augur/pkg/analyzer"
	"github.com/augurlabs/augur/pkg/config"
	"github.com/augurlabs/augur/pkg/extract"
	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/parser"
	"github.com/augurlabs/augur/pkg/source"
)

// Ensure Analyzer implements analyzer.FileAnalyzer.
var _ analyzer.FileAnalyzer[*Analysis] = (*Analyzer)(nil)

// Analyzer runs duplicate detection over a file set.
type Analyzer struct {
	minLines          int
	minComplexity     float64
	minTokens         int
	semanticThreshold float64
	maxFileSize       int64
	workers           int
	src               source.ContentSource
	nextGroupID       atomic.Uint64
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithMinLines sets the window size for exact matching.
func WithMinLines(n int) Option {
	return func(a *Analyzer) {
		a.minLines = n
	}
}

// WithMinTokens sets the minimum block size for structural and semantic
// matching.
func WithMinTokens(n int) Option {
	return func(a *Analyzer) {
		a.minTokens = n
	}
}

// WithSimilarityThreshold sets the semantic Jaccard cutoff.
func WithSimilarityThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		a.semanticThreshold = threshold
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

// WithSource sets the content source files are read from.
func WithSource(src source.ContentSource) Option {
	return func(a *Analyzer) {
		a.src = src
	}
}

// WithConfig applies the duplicate settings from a config.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.minLines = cfg.Duplicates.MinLines
		a.minComplexity = cfg.Duplicates.MinComplexity
		a.minTokens = cfg.Duplicates.MinTokens
		a.semanticThreshold = cfg.Duplicates.SemanticSimilarity
		a.maxFileSize = cfg.Analysis.MaxFileSize
		a.workers = cfg.Analysis.Workers
	}
}

// New creates a duplicate analyzer with the default cutoffs.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		minLines:          8,
		minComplexity:     5.0,
		minTokens:         100,
		semanticThreshold: 0.75,
		src:               source.NewFilesystem(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// fileBlocks holds the code blocks extracted from one file.
type fileBlocks struct {
	path   string
	blocks []Block
	lines  int
}

// Analyze extracts function and class bodies from every file, runs the
// three algorithms over the whole block set, and merges their groups.
// Progress is tracked via context using analyzer.WithTracker.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*Analysis, error) {
	perFile, _ := fileproc.MapSourceFiles(ctx, files, a.src, a.maxFileSize, a.workers,
		func(psr *parser.Parser, path string, content []byte) (fileBlocks, error) {
			lang := parser.DetectLanguage(path)
			if lang == parser.LangUnknown {
				return fileBlocks{}, fmt.Errorf("unsupported language: %s", path)
			}
			result, err := psr.Parse(content, lang, path)
			if err != nil {
				return fileBlocks{}, err
			}
			return fileBlocks{
				path:   path,
				blocks: collectBlocks(result),
				lines:  strings.Count(string(content), "\n") + 1,
			}, nil
		})

	sort.Slice(perFile, func(i, j int) bool { return perFile[i].path < perFile[j].path })

	var blocks []Block
	totalLines := 0
	for _, fb := range perFile {
		blocks = append(blocks, fb.blocks...)
		totalLines += fb.lines
	}

	// The three algorithms are independent; only the final dedup needs
	// the combined view.
	var exact, structural, semantic []Group
	var wg conc.WaitGroup
	wg.Go(func() { exact = a.findExact(blocks) })
	wg.Go(func() { structural = a.findStructural(blocks) })
	wg.Go(func() { semantic = a.findSemantic(blocks) })
	wg.Wait()

	groups := append(exact, structural...)
	groups = append(groups, semantic...)
	groups = deduplicate(groups)

	// Renumber so IDs are stable regardless of algorithm scheduling.
	for i := range groups {
		groups[i].ID = uint64(i + 1)
	}

	return a.buildAnalysis(groups, len(perFile), len(blocks), totalLines), nil
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {}

// collectBlocks extracts the comparable code blocks of one parsed file:
// every function body plus every class body.
func collectBlocks(result *parser.ParseResult) []Block {
	var blocks []Block

	for _, fn := range extract.Functions(result) {
		blocks = append(blocks, Block{
			OriginalCode: parser.GetNodeText(fn.Node, result.Source),
			FilePath:     result.Path,
			StartLine:    fn.StartLine,
			EndLine:      fn.EndLine,
			StartByte:    fn.StartByte,
			EndByte:      fn.EndByte,
		})
	}
	for _, cls := range extract.Classes(result) {
		blocks = append(blocks, Block{
			OriginalCode: parser.GetNodeText(cls.Node, result.Source),
			FilePath:     result.Path,
			StartLine:    cls.StartLine,
			EndLine:      cls.EndLine,
			StartByte:    cls.StartByte,
			EndByte:      cls.EndByte,
		})
	}
	return blocks
}

// confidence per algorithm: exact matches are certain, semantic ones are
// a heuristic.
func kindConfidence(kind Kind) int {
	switch kind {
	case KindExact:
		return 90
	case KindStructural:
		return 80
	default:
		return 70
	}
}

func (a *Analyzer) buildAnalysis(groups []Group, fileCount, blockCount, totalLines int) *Analysis {
	an := &Analysis{Groups: groups}
	an.Summary.TotalFiles = fileCount
	an.Summary.TotalBlocks = blockCount
	an.Summary.TotalGroups = len(groups)
	an.Summary.TotalLines = totalLines

	for gi := range groups {
		g := &groups[gi]
		an.Summary.DuplicatedLines += g.TotalLines

		first := &g.Blocks[0]
		an.Issues = append(an.Issues, issue.Issue{
			Kind:       issue.DuplicateCode,
			Severity:   g.Severity,
			Confidence: kindConfidence(g.Kind),
			Description: fmt.Sprintf("%s duplicate across %d location(s) in %d file(s), %d total lines",
				g.Kind, len(g.Blocks), len(g.AffectedFiles), g.TotalLines),
			Recommendation: "extract the shared logic into one function",
			FilePath:       first.FilePath,
			LineStart:      first.StartLine,
			LineEnd:        first.EndLine,
			CodeBlock:      first.OriginalCode,
			Metrics: map[string]any{
				"kind":       g.Kind.String(),
				"blocks":     len(g.Blocks),
				"files":      len(g.AffectedFiles),
				"similarity": g.Similarity,
			},
		})
	}

	if totalLines > 0 {
		an.Summary.DuplicationRatio = float64(an.Summary.DuplicatedLines) / float64(totalLines)
	}
	issue.Sort(an.Issues)
	return an
}

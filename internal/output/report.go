package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/augurlabs/augur/pkg/analyzer/duplicates"
	"github.com/augurlabs/augur/pkg/analyzer/metrics"
	"github.com/augurlabs/augur/pkg/analyzer/mirror"
	"github.com/augurlabs/augur/pkg/issue"
)

// Section is a Renderable block of prose under a title.
type Section struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (s *Section) RenderData() any {
	if s.Data != nil {
		return s.Data
	}
	return s
}

func (s *Section) RenderText(w io.Writer, colored bool) error {
	if s.Title != "" {
		fmt.Fprintln(w, s.Title)
		fmt.Fprintln(w, strings.Repeat("-", len(s.Title)))
	}
	if s.Content != "" {
		fmt.Fprintln(w, s.Content)
	}
	return nil
}

func (s *Section) RenderMarkdown(w io.Writer) error {
	if s.Title != "" {
		fmt.Fprintf(w, "## %s\n\n", s.Title)
	}
	if s.Content != "" {
		fmt.Fprintln(w, s.Content)
		fmt.Fprintln(w)
	}
	return nil
}

// IssueTable renders a flat issue list, one row per finding.
func IssueTable(title string, issues []issue.Issue) *Table {
	rows := make([][]string, 0, len(issues))
	for i := range issues {
		is := &issues[i]
		location := fmt.Sprintf("%s:%d", is.FilePath, is.LineStart)
		subject := is.FunctionName
		if subject == "" {
			subject = is.ClassName
		}
		rows = append(rows, []string{
			string(is.Severity),
			string(is.Kind),
			location,
			subject,
			is.Description,
		})
	}

	counts := issue.CountBySeverity(issues)
	footer := []string{
		fmt.Sprintf("%d total", len(issues)),
		"", "", "",
		fmt.Sprintf("critical %d, high %d, medium %d, low %d",
			counts[issue.SeverityCritical], counts[issue.SeverityHigh],
			counts[issue.SeverityMedium], counts[issue.SeverityLow]),
	}

	return &Table{
		Title:   title,
		Headers: []string{"Severity", "Kind", "Location", "Subject", "Description"},
		Rows:    rows,
		Footer:  footer,
		Data:    issues,
	}
}

// MetricsReport renders a full metric analysis: the aggregate summary
// followed by every finding.
func MetricsReport(a *metrics.Analysis) *Report {
	summary := &Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Files", fmt.Sprintf("%d", a.Summary.TotalFiles)},
			{"Functions", fmt.Sprintf("%d", a.Summary.TotalFunctions)},
			{"Classes", fmt.Sprintf("%d", a.Summary.TotalClasses)},
			{"Mean cyclomatic", fmt.Sprintf("%.1f", a.Summary.Cyclomatic.Mean)},
			{"P90 cyclomatic", fmt.Sprintf("%.1f", a.Summary.Cyclomatic.P90)},
			{"Mean cognitive", fmt.Sprintf("%.1f", a.Summary.Cognitive.Mean)},
			{"P90 cognitive", fmt.Sprintf("%.1f", a.Summary.Cognitive.P90)},
		},
		Data: a.Summary,
	}

	return &Report{
		Title:    "Code Metrics",
		Sections: []Renderable{summary, IssueTable("Findings", a.Issues)},
		Data:     a,
	}
}

// DuplicatesReport renders duplicate groups and their aggregate ratio.
func DuplicatesReport(a *duplicates.Analysis) *Report {
	rows := make([][]string, 0, len(a.Groups))
	for i := range a.Groups {
		g := &a.Groups[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", g.ID),
			g.Kind.String(),
			string(g.Severity),
			fmt.Sprintf("%d", len(g.Blocks)),
			fmt.Sprintf("%d", len(g.AffectedFiles)),
			fmt.Sprintf("%d", g.TotalLines),
			fmt.Sprintf("%.2f", g.Similarity),
		})
	}

	groups := &Table{
		Title:   "Duplicate Groups",
		Headers: []string{"ID", "Kind", "Severity", "Blocks", "Files", "Lines", "Similarity"},
		Rows:    rows,
		Footer: []string{
			fmt.Sprintf("%d groups", a.Summary.TotalGroups),
			"", "", "", "", "",
			fmt.Sprintf("%.1f%% duplicated", a.Summary.DuplicationRatio*100),
		},
		Data: a.Groups,
	}

	return &Report{
		Title:    "Duplicate Code",
		Sections: []Renderable{groups},
		Data:     a,
	}
}

// ValidationReport renders a refactoring validation verdict with its
// per-layer outcomes.
func ValidationReport(res mirror.Result) *Report {
	layerRow := func(name string, l mirror.Layer) []string {
		state := "skipped"
		if l != (mirror.Layer{}) {
			state = "failed"
			if l.Passed {
				state = "passed"
			}
		}
		return []string{name, state, l.Message}
	}

	layers := &Table{
		Title:   "Layers",
		Headers: []string{"Layer", "Result", "Detail"},
		Rows: [][]string{
			layerRow("syntactic", res.Layers.Syntactic),
			layerRow("signature", res.Layers.Signature),
			layerRow("structural", res.Layers.Structural),
			layerRow("behavioral", res.Layers.Behavioral),
		},
		Data: res.Layers,
	}

	verdict := &Section{
		Title:   "Verdict",
		Content: fmt.Sprintf("%s (confidence %d)", res.Badge, res.Confidence),
		Data:    res,
	}

	return &Report{
		Title:    "Refactoring Validation",
		Sections: []Renderable{layers, verdict},
		Data:     res,
	}
}

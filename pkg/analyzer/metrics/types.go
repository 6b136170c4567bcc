package metrics

import (
	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/stats"
)

// FunctionMetrics holds the measured values for one function.
type FunctionMetrics struct {
	Cyclomatic uint32 `json:"cyclomatic"`
	Cognitive  uint32 `json:"cognitive"`
	MaxNesting int    `json:"max_nesting"`
	Parameters int    `json:"parameters"`
	Lines      int    `json:"lines"`
}

// FunctionResult holds metrics for a single function.
type FunctionResult struct {
	Name      string          `json:"name"`
	StartLine uint32          `json:"start_line"`
	EndLine   uint32          `json:"end_line"`
	Metrics   FunctionMetrics `json:"metrics"`
}

// ClassMetrics holds the measured values for one class.
type ClassMetrics struct {
	Lines   int     `json:"lines"`
	Methods int     `json:"methods"`
	Fields  int     `json:"fields"`
	Score   float64 `json:"score"`
}

// ClassResult holds metrics for a single class.
type ClassResult struct {
	Name      string       `json:"name"`
	StartLine uint32       `json:"start_line"`
	EndLine   uint32       `json:"end_line"`
	Metrics   ClassMetrics `json:"metrics"`
}

// FileResult aggregates per-file results. Skipped lists detector
// categories that panicked on this file and were recovered.
type FileResult struct {
	Path      string           `json:"path"`
	Language  string           `json:"language"`
	Functions []FunctionResult `json:"functions"`
	Classes   []ClassResult    `json:"classes,omitempty"`
	Issues    []issue.Issue    `json:"issues,omitempty"`
	Skipped   []string         `json:"skipped,omitempty"`
}

// Analysis is the full metric-engine result.
type Analysis struct {
	Files   []FileResult  `json:"files"`
	Issues  []issue.Issue `json:"issues"`
	Summary Summary       `json:"summary"`
}

// Summary provides aggregate statistics across the run.
type Summary struct {
	TotalFiles     int                    `json:"total_files"`
	TotalFunctions int                    `json:"total_functions"`
	TotalClasses   int                    `json:"total_classes"`
	Cyclomatic     stats.Summary          `json:"cyclomatic"`
	Cognitive      stats.Summary          `json:"cognitive"`
	IssueCount     int                    `json:"issue_count"`
	BySeverity     map[issue.Severity]int `json:"by_severity,omitempty"`
}

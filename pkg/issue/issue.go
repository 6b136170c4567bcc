// Package issue defines the finding model shared by all detectors.
package issue

import "sort"

// Kind identifies the category of a finding.
type Kind string

const (
	LongMethod          Kind = "LongMethod"
	GodClass            Kind = "GodClass"
	DeepNesting         Kind = "DeepNesting"
	LongParameterList   Kind = "LongParameterList"
	HighComplexity      Kind = "HighComplexity"
	CognitiveComplexity Kind = "CognitiveComplexity"
	DuplicateCode       Kind = "DuplicateCode"
	MagicNumber         Kind = "MagicNumber"
	DeadCode            Kind = "DeadCode"
	FeatureEnvy         Kind = "FeatureEnvy"
)

// Severity is the tier of a finding, always derived from a metric threshold.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities for sorting, highest first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Issue is a single finding emitted by a detector. Issues are immutable
// after emission; detectors hand them to the caller and never touch them
// again.
type Issue struct {
	Kind           Kind           `json:"kind"`
	Severity       Severity       `json:"severity"`
	Confidence     int            `json:"confidence"`
	Description    string         `json:"description"`
	Recommendation string         `json:"recommendation,omitempty"`
	FilePath       string         `json:"file_path"`
	FunctionName   string         `json:"function_name,omitempty"`
	ClassName      string         `json:"class_name,omitempty"`
	LineStart      uint32         `json:"line_start"`
	LineEnd        uint32         `json:"line_end"`
	CodeBlock      string         `json:"code_block,omitempty"`
	Metrics        map[string]any `json:"metrics,omitempty"`
}

// ClampConfidence bounds a confidence value to [0, 100].
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// Sort orders issues deterministically: file path, start line, kind, then
// function name. Running a detector twice on identical input yields an
// identical ordering.
func Sort(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.LineStart != b.LineStart {
			return a.LineStart < b.LineStart
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.FunctionName < b.FunctionName
	})
}

// CountBySeverity tallies issues per severity tier.
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := make(map[Severity]int)
	for _, is := range issues {
		counts[is.Severity]++
	}
	return counts
}

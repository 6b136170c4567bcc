package metrics

import (
	"strings"

	"github.com/augurlabs/augur/pkg/config"
	"github.com/augurlabs/augur/pkg/issue"
)

// Tiers holds the four severity cutoffs for one metric. A value below Low
// emits nothing; crossing a cutoff emits an issue at that severity.
type Tiers struct {
	Low      float64
	Medium   float64
	High     float64
	Critical float64
}

// Classify returns the severity tier for a value, or "" when the value is
// under every cutoff.
func (t Tiers) Classify(value float64) issue.Severity {
	switch {
	case value >= t.Critical:
		return issue.SeverityCritical
	case value >= t.High:
		return issue.SeverityHigh
	case value >= t.Medium:
		return issue.SeverityMedium
	case value >= t.Low:
		return issue.SeverityLow
	default:
		return ""
	}
}

// tiersFrom scales a tier table from a configured base value. The base is
// the low cutoff; upper tiers grow by fixed multipliers.
func tiersFrom(base int) Tiers {
	b := float64(base)
	return Tiers{
		Low:      b,
		Medium:   b * 1.5,
		High:     b * 2,
		Critical: b * 3,
	}
}

// thresholdSet holds the per-metric tier tables for one run.
type thresholdSet struct {
	cyclomatic   Tiers
	cognitive    Tiers
	nesting      Tiers
	parameters   Tiers
	methodLines  Tiers
	classLines   Tiers
	classMethods Tiers
}

func thresholdsFrom(cfg *config.Config) thresholdSet {
	t := cfg.Thresholds
	return thresholdSet{
		cyclomatic:   tiersFrom(t.CyclomaticComplexity),
		cognitive:    tiersFrom(t.CognitiveComplexity),
		nesting:      tiersFrom(t.MaxNesting),
		parameters:   tiersFrom(t.ParameterCount),
		methodLines:  tiersFrom(t.MethodLines),
		classLines:   tiersFrom(t.ClassLines),
		classMethods: tiersFrom(t.ClassMethods),
	}
}

// orchestrationKeywords mark functions that legitimately coordinate many
// steps; method-length findings on them are relaxed to cut false
// positives.
var orchestrationKeywords = []string{
	"main", "setup", "configure", "initialize", "analyze", "process",
}

// testKeywords mark test scaffolding, relaxed the same way.
var testKeywords = []string{"test", "spec", "describe"}

func containsAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// relaxation returns the confidence penalty for a function name, or 0
// when no exception class applies.
func relaxation(name string) int {
	if containsAny(name, orchestrationKeywords) {
		return 15
	}
	if containsAny(name, testKeywords) {
		return 10
	}
	return 0
}

// lowerTier steps a severity down one tier.
func lowerTier(s issue.Severity) issue.Severity {
	switch s {
	case issue.SeverityCritical:
		return issue.SeverityHigh
	case issue.SeverityHigh:
		return issue.SeverityMedium
	case issue.SeverityMedium:
		return issue.SeverityLow
	default:
		return ""
	}
}

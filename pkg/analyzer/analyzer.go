// Package analyzer defines the contract shared by all detectors and the
// progress plumbing they report through.
package analyzer

import (
	"context"

	"github.com/augurlabs/augur/pkg/issue"
)

// FileAnalyzer is implemented by every detector that runs over a set of
// files. The context carries cancellation and, optionally, a progress
// tracker installed with WithTracker.
type FileAnalyzer[T any] interface {
	// Analyze processes the files and returns the detector's result.
	// Calling Analyze twice on the same input yields an identical result.
	Analyze(ctx context.Context, files []string) (T, error)

	// Close releases any resources held by the analyzer.
	Close()
}

// IssueAnalyzer is a FileAnalyzer whose result is a flat list of issues.
// The metric, magic-number and dead-code detectors all satisfy it.
type IssueAnalyzer = FileAnalyzer[[]issue.Issue]

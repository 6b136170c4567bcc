package deadcode

import (
	"testing"

	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/parser"
)

func analyzeSource(t *testing.T, language parser.Language, source string) []issue.Issue {
	t.Helper()
	psr := parser.New()
	defer psr.Close()
	result, err := psr.Parse([]byte(source), language, "test")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return AnalyzeParsed(result)
}

func filterKind(issues []issue.Issue, description string) []issue.Issue {
	var out []issue.Issue
	for _, is := range issues {
		if is.Confidence == unreachableConfidence && description == "unreachable" {
			out = append(out, is)
		}
		if is.Confidence == unusedConfidence && description == "unused" {
			out = append(out, is)
		}
	}
	return out
}

func TestUnreachableAfterReturn(t *testing.T) {
	source := `package main

import "fmt"

func f() int {
	return 1
	fmt.Println("never runs")
}
`
	issues := filterKind(analyzeSource(t, parser.LangGo, source), "unreachable")
	if len(issues) != 1 {
		t.Fatalf("expected 1 unreachable issue, got %d", len(issues))
	}
	is := issues[0]
	if is.Kind != issue.DeadCode {
		t.Errorf("kind = %s, want DeadCode", is.Kind)
	}
	if is.Confidence != 95 {
		t.Errorf("confidence = %d, want 95", is.Confidence)
	}
	if is.LineStart != 7 {
		t.Errorf("line = %d, want 7", is.LineStart)
	}
}

func TestReturnAsLastStatementClean(t *testing.T) {
	source := `package main

func f() int {
	x := compute()
	return x
}

func compute() int {
	if true {
		return 1
	}
	return 2
}
`
	issues := filterKind(analyzeSource(t, parser.LangGo, source), "unreachable")
	if len(issues) != 0 {
		t.Errorf("expected no unreachable issues, got %v", issues)
	}
}

func TestUnreachableCountsStatements(t *testing.T) {
	source := `def f():
    return 1
    a = 1
    b = 2
    c = 3
`
	issues := filterKind(analyzeSource(t, parser.LangPython, source), "unreachable")
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Metrics["unreachable_statements"] != 3 {
		t.Errorf("count = %v, want 3", issues[0].Metrics["unreachable_statements"])
	}
	if issues[0].Severity != issue.SeverityMedium {
		t.Errorf("severity = %s, want medium", issues[0].Severity)
	}
}

func TestUnusedVariable(t *testing.T) {
	source := `const orphan = 42
const used = 7
console.log(used)
`
	issues := filterKind(analyzeSource(t, parser.LangJavaScript, source), "unused")
	if len(issues) != 1 {
		t.Fatalf("expected 1 unused issue, got %d: %v", len(issues), issues)
	}
	if issues[0].FunctionName != "orphan" {
		t.Errorf("variable = %q, want orphan", issues[0].FunctionName)
	}
	if issues[0].Confidence != 80 {
		t.Errorf("confidence = %d, want 80", issues[0].Confidence)
	}
}

func TestUnusedIgnoresWordPrefixes(t *testing.T) {
	// "count" must not be considered used because "counter" appears later.
	source := `let count = 1
let counter = 2
console.log(counter)
`
	issues := filterKind(analyzeSource(t, parser.LangJavaScript, source), "unused")
	if len(issues) != 1 {
		t.Fatalf("expected exactly the prefix variable flagged, got %v", issues)
	}
	if issues[0].FunctionName != "count" {
		t.Errorf("variable = %q, want count", issues[0].FunctionName)
	}
}

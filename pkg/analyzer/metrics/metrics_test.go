package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/augurlabs/augur/pkg/config"
	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/lang"
	"github.com/augurlabs/augur/pkg/parser"
)

func tableFor(t *testing.T, language parser.Language) *lang.Table {
	t.Helper()
	return lang.TableFor(string(language))
}

func analyzeSource(t *testing.T, a *Analyzer, language parser.Language, source string) FileResult {
	t.Helper()
	psr := parser.New()
	defer psr.Close()
	result, err := psr.Parse([]byte(source), language, "test."+string(language))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return a.analyzeParseResult(result)
}

const nestedIfSource = `package main

func check(a, b int) int {
	if a > 0 {
		if b > 0 && a > b {
			return a
		}
	}
	return b
}
`

func TestCyclomaticNestedIfs(t *testing.T) {
	a := New()
	defer a.Close()

	fr := analyzeSource(t, a, parser.LangGo, nestedIfSource)
	if len(fr.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(fr.Functions))
	}

	m := fr.Functions[0].Metrics
	// 1 base + 2 ifs + 1 short-circuit operator.
	if m.Cyclomatic != 4 {
		t.Errorf("cyclomatic = %d, want 4", m.Cyclomatic)
	}
	if m.Cognitive == 0 {
		t.Error("expected non-zero cognitive complexity")
	}
	if m.MaxNesting < 2 {
		t.Errorf("max nesting = %d, want >= 2", m.MaxNesting)
	}
	if m.Parameters != 2 {
		t.Errorf("parameters = %d, want 2", m.Parameters)
	}
}

func TestCyclomaticMonotonicity(t *testing.T) {
	a := New()
	defer a.Close()

	base := analyzeSource(t, a, parser.LangGo, nestedIfSource)

	oneMore := strings.Replace(nestedIfSource, "\treturn b\n",
		"\tif b < 0 {\n\t\treturn 0\n\t}\n\treturn b\n", 1)
	grown := analyzeSource(t, a, parser.LangGo, oneMore)

	got := grown.Functions[0].Metrics.Cyclomatic
	want := base.Functions[0].Metrics.Cyclomatic + 1
	if got != want {
		t.Errorf("cyclomatic after adding one if = %d, want %d", got, want)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte(nestedIfSource), 0o644); err != nil {
		t.Fatal(err)
	}

	a := New()
	defer a.Close()

	first, err := a.Analyze(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Analyze(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first.Issues, second.Issues) {
		t.Error("issue lists differ between identical runs")
	}
	if !reflect.DeepEqual(first.Summary, second.Summary) {
		t.Error("summaries differ between identical runs")
	}
}

func TestAnalyzeMaxFileSize(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.go")
	if err := os.WriteFile(small, []byte(nestedIfSource), 0o644); err != nil {
		t.Fatal(err)
	}
	big := filepath.Join(dir, "big.go")
	if err := os.WriteFile(big, []byte(longFunction("huge", 500)), 0o644); err != nil {
		t.Fatal(err)
	}

	a := New(WithMaxFileSize(512))
	defer a.Close()

	analysis, err := a.Analyze(context.Background(), []string{small, big})
	if err != nil {
		t.Fatal(err)
	}

	if analysis.Summary.TotalFiles != 1 {
		t.Fatalf("expected 1 analyzed file, got %d", analysis.Summary.TotalFiles)
	}
	if analysis.Files[0].Path != small {
		t.Errorf("expected %s to survive the size limit, got %s", small, analysis.Files[0].Path)
	}
}

func longFunction(name string, lines int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "package main\n\nfunc %s() int {\n\tx := 0\n", name)
	for range lines {
		b.WriteString("\tx = x + 1\n")
	}
	b.WriteString("\treturn x\n}\n")
	return b.String()
}

func findIssue(issues []issue.Issue, kind issue.Kind) *issue.Issue {
	for i := range issues {
		if issues[i].Kind == kind {
			return &issues[i]
		}
	}
	return nil
}

func TestLongMethodThreshold(t *testing.T) {
	a := New()
	defer a.Close()

	fr := analyzeSource(t, a, parser.LangGo, longFunction("accumulate", 60))
	found := findIssue(fr.Issues, issue.LongMethod)
	if found == nil {
		t.Fatal("expected a LongMethod issue")
	}
	if found.Severity != issue.SeverityLow {
		t.Errorf("severity = %s, want low", found.Severity)
	}
	if found.Confidence != 80 {
		t.Errorf("confidence = %d, want 80", found.Confidence)
	}
}

func TestLongMethodOrchestrationRelaxed(t *testing.T) {
	a := New()
	defer a.Close()

	// Same length as above, but the name marks it as orchestration: the
	// finding drops a tier, below the reporting floor.
	fr := analyzeSource(t, a, parser.LangGo, longFunction("processItems", 60))
	if found := findIssue(fr.Issues, issue.LongMethod); found != nil {
		t.Errorf("expected no LongMethod issue for orchestration name, got %+v", found)
	}
}

func TestLongParameterList(t *testing.T) {
	a := New()
	defer a.Close()

	source := `package main

func widen(a, b, c, d, e, f int) int {
	return a + b + c + d + e + f
}
`
	fr := analyzeSource(t, a, parser.LangGo, source)
	found := findIssue(fr.Issues, issue.LongParameterList)
	if found == nil {
		t.Fatal("expected a LongParameterList issue")
	}
	if found.Metrics["parameters"] != 6 {
		t.Errorf("parameters metric = %v, want 6", found.Metrics["parameters"])
	}
}

func TestGodClassByMethodCount(t *testing.T) {
	var b strings.Builder
	b.WriteString("class Everything:\n")
	for i := range 25 {
		fmt.Fprintf(&b, "    def method_%d(self):\n        return %d\n", i, i)
	}

	a := New()
	defer a.Close()

	fr := analyzeSource(t, a, parser.LangPython, b.String())
	found := findIssue(fr.Issues, issue.GodClass)
	if found == nil {
		t.Fatal("expected a GodClass issue")
	}
	if found.ClassName != "Everything" {
		t.Errorf("class name = %q, want Everything", found.ClassName)
	}
	if found.Metrics["methods"] != 25 {
		t.Errorf("methods metric = %v, want 25", found.Metrics["methods"])
	}
}

func TestThresholdTiers(t *testing.T) {
	tiers := tiersFrom(10)

	cases := []struct {
		value float64
		want  issue.Severity
	}{
		{5, ""},
		{10, issue.SeverityLow},
		{15, issue.SeverityMedium},
		{20, issue.SeverityHigh},
		{30, issue.SeverityCritical},
		{100, issue.SeverityCritical},
	}
	for _, c := range cases {
		if got := tiers.Classify(c.value); got != c.want {
			t.Errorf("Classify(%v) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestEffectiveLines(t *testing.T) {
	text := "func f() {\n\n\t// comment only\n\tx := 1\n\t# another comment\n\treturn x\n}"
	if got := EffectiveLines(text); got != 4 {
		t.Errorf("EffectiveLines = %d, want 4", got)
	}
}

func TestCountBoolOperators(t *testing.T) {
	goTable := tableFor(t, parser.LangGo)
	if got := CountBoolOperators("a && b || c", goTable); got != 2 {
		t.Errorf("go operators = %d, want 2", got)
	}
	// Word operators only count where they are keywords.
	if got := CountBoolOperators("a and b", goTable); got != 0 {
		t.Errorf("go word operators = %d, want 0", got)
	}

	pyTable := tableFor(t, parser.LangPython)
	if got := CountBoolOperators("a and b or c", pyTable); got != 2 {
		t.Errorf("python word operators = %d, want 2", got)
	}
}

func TestConfigurableThresholds(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Thresholds.ParameterCount = 20

	a := New(WithConfig(cfg))
	defer a.Close()

	source := `package main

func widen(a, b, c, d, e, f int) int {
	return a + b + c + d + e + f
}
`
	fr := analyzeSource(t, a, parser.LangGo, source)
	if found := findIssue(fr.Issues, issue.LongParameterList); found != nil {
		t.Errorf("expected no issue with raised threshold, got %+v", found)
	}
}

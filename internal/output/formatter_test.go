package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/augurlabs/augur/pkg/analyzer/mirror"
	"github.com/augurlabs/augur/pkg/issue"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"text", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleIssues() []issue.Issue {
	return []issue.Issue{
		{
			Kind:         issue.LongMethod,
			Severity:     issue.SeverityHigh,
			Confidence:   80,
			Description:  "62 lines",
			FilePath:     "pkg/a.go",
			FunctionName: "process",
			LineStart:    10,
		},
		{
			Kind:        issue.MagicNumber,
			Severity:    issue.SeverityLow,
			Confidence:  70,
			Description: "value 42 appears 3 times",
			FilePath:    "pkg/b.go",
			LineStart:   4,
		},
	}
}

func TestIssueTableText(t *testing.T) {
	table := IssueTable("Findings", sampleIssues())

	var buf bytes.Buffer
	if err := table.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Findings", "pkg/a.go:10", "process", "LongMethod", "2 total"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestIssueTableMarkdown(t *testing.T) {
	table := IssueTable("Findings", sampleIssues())

	var buf bytes.Buffer
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Findings") {
		t.Errorf("markdown output missing title:\n%s", out)
	}
	if !strings.Contains(out, "| Severity | Kind | Location | Subject | Description |") {
		t.Errorf("markdown output missing header row:\n%s", out)
	}
}

func TestFormatterJSON(t *testing.T) {
	f := &Formatter{format: FormatJSON, writer: &bytes.Buffer{}}
	buf := f.writer.(*bytes.Buffer)

	if err := f.Output(IssueTable("Findings", sampleIssues())); err != nil {
		t.Fatalf("Output: %v", err)
	}

	var decoded []issue.Issue
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("expected 2 issues in JSON output, got %d", len(decoded))
	}
}

func TestValidationReportSkippedLayers(t *testing.T) {
	res := mirror.Result{
		Badge:      mirror.BadgeFailed,
		Confidence: 0,
		Layers: mirror.Layers{
			Syntactic: mirror.Layer{Passed: false, Message: "candidate has syntax errors"},
		},
	}

	var buf bytes.Buffer
	if err := ValidationReport(res).RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "skipped") {
		t.Errorf("expected unevaluated layers marked skipped:\n%s", out)
	}
	if !strings.Contains(out, "failed (confidence 0)") {
		t.Errorf("expected verdict line:\n%s", out)
	}
}

package mirror

import (
	"testing"

	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/parser"
)

const duplicatedOriginal = `func process(a []int) int {
	total := 0
	for _, v := range a {
		total += compute(v)
	}
	return total
}
`

const extractedCandidate = `func process(a []int) int {
	return sumAll(a)
}

func sumAll(a []int) int {
	total := 0
	for _, v := range a {
		total += compute(v)
	}
	return total
}
`

func TestValidateSyntaxFailure(t *testing.T) {
	v := New()
	defer v.Close()

	res := v.Validate(Request{
		Original:  duplicatedOriginal,
		Candidate: "func broken( {{{",
		Language:  parser.LangGo,
		IssueKind: issue.DuplicateCode,
	})

	if res.Badge != BadgeFailed {
		t.Errorf("expected failed badge, got %s", res.Badge)
	}
	if res.Confidence != 0 {
		t.Errorf("expected confidence 0, got %d", res.Confidence)
	}
	if res.Verified {
		t.Error("expected not verified")
	}
	if res.Layers.Syntactic.Passed {
		t.Error("expected syntactic layer to fail")
	}
	if res.Layers.Signature != (Layer{}) {
		t.Error("expected signature layer to stay unevaluated")
	}
	if res.Layers.Structural != (Layer{}) || res.Layers.Behavioral != (Layer{}) {
		t.Error("expected later layers to stay unevaluated")
	}
}

func TestValidateIdenticalCandidate(t *testing.T) {
	v := New()
	defer v.Close()

	res := v.Validate(Request{
		Original:  duplicatedOriginal,
		Candidate: duplicatedOriginal,
		Language:  parser.LangGo,
		IssueKind: issue.DuplicateCode,
	})

	if res.Badge != BadgeWarning {
		t.Errorf("expected warning badge, got %s", res.Badge)
	}
	if res.Confidence != 60 {
		t.Errorf("expected confidence 60, got %d", res.Confidence)
	}
	if res.Verified {
		t.Error("expected not verified")
	}
	if !res.Layers.Syntactic.Passed || !res.Layers.Signature.Passed {
		t.Error("expected first two layers to pass")
	}
	if res.Layers.Structural.Passed {
		t.Error("expected structural layer to fail")
	}
	if res.Layers.Behavioral != (Layer{}) {
		t.Error("expected behavioral layer to stay unevaluated")
	}
}

func TestValidateHelperRename(t *testing.T) {
	v := New()
	defer v.Close()

	res := v.Validate(Request{
		Original:  "func foo(a, b int) int {\n\treturn a + b\n}\n",
		Candidate: "func fooHelper(a, b int) int {\n\treturn a + b\n}\n",
		Language:  parser.LangGo,
		IssueKind: issue.LongMethod,
	})

	if !res.Layers.Signature.Passed {
		t.Errorf("expected signature layer to accept helper rename: %s", res.Layers.Signature.Message)
	}
}

func TestValidateExtractedDuplicate(t *testing.T) {
	v := New()
	defer v.Close()

	res := v.Validate(Request{
		Original:  duplicatedOriginal,
		Candidate: extractedCandidate,
		Language:  parser.LangGo,
		IssueKind: issue.DuplicateCode,
	})

	if res.Badge != BadgeVerified {
		t.Fatalf("expected verified badge, got %s (structural: %s, behavioral: %s)",
			res.Badge, res.Layers.Structural.Message, res.Layers.Behavioral.Message)
	}
	if !res.Verified {
		t.Error("expected verified")
	}
	if res.Confidence != 95 {
		t.Errorf("expected confidence 95, got %d", res.Confidence)
	}
}

func TestValidateLongMethodDroppedCall(t *testing.T) {
	original := `func report(items []int) int {
	total := 0
	for _, item := range items {
		logItem(item)
		total += compute(item)
	}
	if total > 100 {
		total = clamp(total)
	}
	return total
}
`
	candidate := `func report(items []int) int {
	total := 0
	for _, item := range items {
		total += compute(item)
	}
	return total
}
`

	v := New()
	defer v.Close()

	res := v.Validate(Request{
		Original:  original,
		Candidate: candidate,
		Language:  parser.LangGo,
		IssueKind: issue.LongMethod,
	})

	if !res.Layers.Structural.Passed {
		t.Fatalf("expected structural layer to pass: %s", res.Layers.Structural.Message)
	}
	if res.Layers.Behavioral.Passed {
		t.Error("expected behavioral layer to flag the dropped calls")
	}
	if res.Badge != BadgeVerified || res.Confidence != 80 {
		t.Errorf("expected verified with confidence 80, got %s/%d", res.Badge, res.Confidence)
	}
}

func TestValidateMagicNumberConst(t *testing.T) {
	original := `func area(r float64) float64 {
	if r > 3.14159 {
		return 3.14159 * r * r
	}
	return 3.14159 * r
}
`
	candidate := `const pi = 3.14159

func area(r float64) float64 {
	if r > pi {
		return pi * r * r
	}
	return pi * r
}
`

	v := New()
	defer v.Close()

	res := v.Validate(Request{
		Original:  original,
		Candidate: candidate,
		Language:  parser.LangGo,
		IssueKind: issue.MagicNumber,
	})

	if !res.Layers.Structural.Passed {
		t.Fatalf("expected structural layer to pass: %s", res.Layers.Structural.Message)
	}
	if res.Badge != BadgeVerified || res.Confidence != 95 {
		t.Errorf("expected verified with confidence 95, got %s/%d", res.Badge, res.Confidence)
	}
}

func TestValidateDeepNestingFlattened(t *testing.T) {
	original := `func locate(a []int, x int) int {
	if len(a) > 0 {
		if x > 0 {
			if x < len(a) {
				return a[x]
			}
		}
	}
	return -1
}
`
	candidate := `func locate(a []int, x int) int {
	if len(a) == 0 || x <= 0 || x >= len(a) {
		return -1
	}
	return a[x]
}
`

	v := New()
	defer v.Close()

	res := v.Validate(Request{
		Original:  original,
		Candidate: candidate,
		Language:  parser.LangGo,
		IssueKind: issue.DeepNesting,
	})

	if !res.Layers.Structural.Passed {
		t.Fatalf("expected structural layer to pass: %s", res.Layers.Structural.Message)
	}
	if res.Badge != BadgeVerified {
		t.Errorf("expected verified badge, got %s", res.Badge)
	}
}

func TestValidateUnknownKindRequiresChange(t *testing.T) {
	original := "func tick() {\n\tcount++\n}\n"
	changed := "func tick() {\n\tcount += 1\n}\n"

	v := New()
	defer v.Close()

	same := v.Validate(Request{Original: original, Candidate: original, Language: parser.LangGo, IssueKind: issue.DeadCode})
	if same.Layers.Structural.Passed {
		t.Error("expected identical candidate to fail for default kinds")
	}

	edited := v.Validate(Request{Original: original, Candidate: changed, Language: parser.LangGo, IssueKind: issue.DeadCode})
	if !edited.Layers.Structural.Passed {
		t.Errorf("expected edited candidate to pass: %s", edited.Layers.Structural.Message)
	}
}

func TestMaxBraceDepth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"func f() { if x { y() } }", 2},
		{"{ { { } } }", 3},
		{"} } {", 1},
	}
	for _, tt := range tests {
		if got := maxBraceDepth(tt.in); got != tt.want {
			t.Errorf("maxBraceDepth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHasNewCall(t *testing.T) {
	if hasNewCall("compute(x)", "compute(x)") {
		t.Error("expected no new call for identical text")
	}
	if !hasNewCall("compute(x)", "compute(x)\nhelper(x)") {
		t.Error("expected helper to count as a new call")
	}
	if hasNewCall("compute(x)", "if (x) { compute(x) }") {
		t.Error("expected control-flow keywords not to count as calls")
	}
}

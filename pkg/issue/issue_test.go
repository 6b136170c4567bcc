package issue

import "testing"

func TestClampConfidence(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{130, 100},
	}
	for _, c := range cases {
		if got := ClampConfidence(c.in); got != c.want {
			t.Errorf("ClampConfidence(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestSeverityRank(t *testing.T) {
	if SeverityCritical.Rank() <= SeverityHigh.Rank() {
		t.Error("critical should outrank high")
	}
	if SeverityHigh.Rank() <= SeverityMedium.Rank() {
		t.Error("high should outrank medium")
	}
	if SeverityMedium.Rank() <= SeverityLow.Rank() {
		t.Error("medium should outrank low")
	}
	if Severity("bogus").Rank() != 0 {
		t.Error("unknown severity should rank 0")
	}
}

func TestSortDeterministic(t *testing.T) {
	issues := []Issue{
		{FilePath: "b.go", LineStart: 10, Kind: LongMethod},
		{FilePath: "a.go", LineStart: 20, Kind: MagicNumber},
		{FilePath: "a.go", LineStart: 5, Kind: DeadCode},
		{FilePath: "a.go", LineStart: 5, Kind: DeepNesting},
	}
	Sort(issues)

	if issues[0].FilePath != "a.go" || issues[0].Kind != DeadCode {
		t.Errorf("unexpected first issue: %+v", issues[0])
	}
	if issues[1].Kind != DeepNesting {
		t.Errorf("expected DeepNesting second, got %s", issues[1].Kind)
	}
	if issues[3].FilePath != "b.go" {
		t.Errorf("expected b.go last, got %s", issues[3].FilePath)
	}
}

func TestCountBySeverity(t *testing.T) {
	issues := []Issue{
		{Severity: SeverityHigh},
		{Severity: SeverityHigh},
		{Severity: SeverityLow},
	}
	counts := CountBySeverity(issues)
	if counts[SeverityHigh] != 2 || counts[SeverityLow] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

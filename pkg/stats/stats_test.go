package stats

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	if got := Percentile(sorted, 50); got != 6 {
		t.Errorf("p50 = %v, want 6", got)
	}
	if got := Percentile(sorted, 90); got != 10 {
		t.Errorf("p90 = %v, want 10", got)
	}
	if got := Percentile(sorted, 100); got != 10 {
		t.Errorf("p100 = %v, want 10", got)
	}
	if got := Percentile(nil, 50); got != 0 {
		t.Errorf("empty p50 = %v, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{4, 2, 8, 6})

	if s.Count != 4 {
		t.Errorf("count = %d, want 4", s.Count)
	}
	if s.Mean != 5 {
		t.Errorf("mean = %v, want 5", s.Mean)
	}
	if s.Min != 2 || s.Max != 8 {
		t.Errorf("min/max = %v/%v, want 2/8", s.Min, s.Max)
	}
	if s.P50 < 2 || s.P50 > 8 {
		t.Errorf("p50 = %v out of range", s.P50)
	}
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]float64{7})
	if s.StdDev != 0 || math.IsNaN(s.StdDev) {
		t.Errorf("stddev = %v, want 0", s.StdDev)
	}
	if s.Mean != 7 || s.Min != 7 || s.Max != 7 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || s.Mean != 0 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

package infer

import (
	"math"
	"testing"
)

func TestTraceSummaryStats(t *testing.T) {
	tr := newTrace(2)
	for _, z := range [][]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}, {5, 50}} {
		tr.add(z)
	}
	s := tr.summary()
	if s.Draws != 5 {
		t.Fatalf("draws: %d", s.Draws)
	}
	if s.Mean[0] != 3 || s.Mean[1] != 30 {
		t.Fatalf("means: %v", s.Mean)
	}
	// Sample stddev of 1..5 is sqrt(2.5).
	if math.Abs(s.Std[0]-math.Sqrt(2.5)) > 1e-12 {
		t.Fatalf("std: %v", s.Std[0])
	}
	if s.Q50[0] != 3 || s.Q50[1] != 30 {
		t.Fatalf("medians: %v", s.Q50)
	}
	if !(s.Q05[0] < s.Q50[0] && s.Q50[0] < s.Q95[0]) {
		t.Fatalf("quantiles not ordered: %v %v %v", s.Q05[0], s.Q50[0], s.Q95[0])
	}
}

func TestTraceEmptySummary(t *testing.T) {
	s := newTrace(3).summary()
	if s.Draws != 0 || len(s.Mean) != 3 {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
}

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{0, 10}
	if got := quantile(sorted, 0.5); got != 5 {
		t.Fatalf("q50: got %v want 5", got)
	}
	if got := quantile(sorted, 0); got != 0 {
		t.Fatalf("q0: got %v want 0", got)
	}
	if got := quantile(sorted, 1); got != 10 {
		t.Fatalf("q1: got %v want 10", got)
	}
	if got := quantile([]float64{7}, 0.95); got != 7 {
		t.Fatalf("single element: got %v", got)
	}
}

package infer

import (
	"math"
	"sort"
)

// trace stores recorded draws column-wise for summary statistics. It is the
// empirical approximation a sampling run leaves behind.
type trace struct {
	dim   int
	cols  [][]float64
	count int
}

func newTrace(dim int) *trace {
	cols := make([][]float64, dim)
	return &trace{dim: dim, cols: cols}
}

func (t *trace) add(z []float64) {
	for i, v := range z {
		t.cols[i] = append(t.cols[i], v)
	}
	t.count++
}

// summary computes per-coordinate mean, sample stddev, and 5/50/95%
// quantiles over the recorded draws.
func (t *trace) summary() Summary {
	s := Summary{
		Draws: t.count,
		Mean:  make([]float64, t.dim),
		Std:   make([]float64, t.dim),
		Q05:   make([]float64, t.dim),
		Q50:   make([]float64, t.dim),
		Q95:   make([]float64, t.dim),
	}
	if t.count == 0 {
		return s
	}
	for i, col := range t.cols {
		mean := 0.0
		for _, v := range col {
			mean += v
		}
		mean /= float64(len(col))
		s.Mean[i] = mean

		if len(col) > 1 {
			ss := 0.0
			for _, v := range col {
				d := v - mean
				ss += d * d
			}
			s.Std[i] = math.Sqrt(ss / float64(len(col)-1))
		}

		sorted := append([]float64(nil), col...)
		sort.Float64s(sorted)
		s.Q05[i] = quantile(sorted, 0.05)
		s.Q50[i] = quantile(sorted, 0.50)
		s.Q95[i] = quantile(sorted, 0.95)
	}
	return s
}

// quantile interpolates linearly between order statistics. sorted must be
// ascending and non-empty.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

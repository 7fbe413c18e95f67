package model

import "math"

// funnel is Neal's funnel density: v = z[0] ~ N(0, 3) and
// z[i] ~ N(0, exp(v/2)) for i >= 1. It has no dataset and exists as a
// sampler stress target with strongly varying curvature.
type funnel struct {
	dim int
}

func newFunnel(spec Spec) (*funnel, error) {
	dim := spec.Dim
	if dim <= 0 {
		dim = 2
	}
	return &funnel{dim: dim}, nil
}

func (m *funnel) Dim() int { return m.dim }

func (m *funnel) LogProb(z []float64) float64 {
	v := z[0]
	lp := normLogPdf(v, 0, 3)
	std := math.Exp(v / 2)
	for _, x := range z[1:] {
		lp += normLogPdf(x, 0, std)
	}
	return lp
}

func (m *funnel) GradLogProb(z, grad []float64) float64 {
	v := z[0]
	lp := normLogPdf(v, 0, 3)
	ev := math.Exp(v)
	std := math.Exp(v / 2)
	gv := -v / 9
	for i, x := range z[1:] {
		lp += normLogPdf(x, 0, std)
		gv += x*x/(2*ev) - 0.5
		grad[i+1] = -x / ev
	}
	grad[0] = gv
	return lp
}

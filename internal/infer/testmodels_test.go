package infer

import "math"

// gaussTarget is an independent normal target with gradients.
type gaussTarget struct {
	mean []float64
	std  []float64
}

func newGaussTarget(mean, std []float64) *gaussTarget {
	return &gaussTarget{mean: mean, std: std}
}

func (g *gaussTarget) Dim() int { return len(g.mean) }

func (g *gaussTarget) LogProb(z []float64) float64 {
	lp := 0.0
	for i, v := range z {
		d := (v - g.mean[i]) / g.std[i]
		lp += -0.5*d*d - math.Log(g.std[i])
	}
	return lp
}

func (g *gaussTarget) GradLogProb(z, grad []float64) float64 {
	for i, v := range z {
		grad[i] = -(v - g.mean[i]) / (g.std[i] * g.std[i])
	}
	return g.LogProb(z)
}

// opaqueTarget exposes only LogProb, for capability rejection tests.
type opaqueTarget struct{ inner *gaussTarget }

func (o opaqueTarget) Dim() int                  { return o.inner.Dim() }
func (o opaqueTarget) LogProb(z []float64) float64 { return o.inner.LogProb(z) }

// boxTarget is flat inside [-1,1]^dim and -Inf outside.
type boxTarget struct{ dim int }

func (b boxTarget) Dim() int { return b.dim }

func (b boxTarget) LogProb(z []float64) float64 {
	for _, v := range z {
		if v < -1 || v > 1 {
			return math.Inf(-1)
		}
	}
	return 0
}

// nowhereTarget is -Inf everywhere, for bad-init tests.
type nowhereTarget struct{}

func (nowhereTarget) Dim() int                  { return 1 }
func (nowhereTarget) LogProb([]float64) float64 { return math.Inf(-1) }

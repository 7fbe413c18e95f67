package infer

import (
	"math"
	"math/rand"

	"latentd/internal/model"
)

const defaultMAPStepSize = 0.1

// NewMAP builds a maximum a posteriori point estimator: plain gradient
// ascent on the log joint. Requires model gradients.
func NewMAP(cfg Config, stepSize float64) (Algorithm, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	g, ok := cfg.Model.(model.Gradient)
	if !ok {
		return nil, &CapabilityError{Algorithm: "map", Capability: "gradients"}
	}
	if stepSize < 0 {
		return nil, ErrInvalidConfig("step size must be >= 0")
	}
	if stepSize == 0 {
		stepSize = defaultMAPStepSize
	}
	obj := &mapObjective{
		model:    g,
		stepSize: stepSize,
		z:        cfg.initialPoint(),
		grad:     make([]float64, cfg.Model.Dim()),
	}
	return &optimizer{cfg: cfg, name: "map", obj: obj}, nil
}

type mapObjective struct {
	model    model.Gradient
	stepSize float64
	z        []float64
	grad     []float64
	logp     float64
	steps    int
}

func (o *mapObjective) step(rng *rand.Rand, t int) ([]float64, float64, float64) {
	o.logp = o.model.GradLogProb(o.z, o.grad)
	lr := o.stepSize / math.Sqrt(float64(t))
	for i := range o.z {
		if math.IsNaN(o.grad[i]) || math.IsInf(o.grad[i], 0) {
			continue
		}
		o.z[i] += lr * o.grad[i]
	}
	o.steps++
	return o.z, o.logp, 0
}

func (o *mapObjective) summary() Summary {
	return Summary{
		Draws:   o.steps,
		LogProb: o.model.LogProb(o.z),
		Mean:    append([]float64(nil), o.z...),
		Std:     make([]float64, len(o.z)),
	}
}

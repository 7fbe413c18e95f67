package infer

import (
	"math"
	"math/rand"
)

const defaultRWStepSize = 0.5

// NewRandomWalk builds a random-walk Metropolis sampler with a spherical
// normal proposal. It needs only LogProb, so every model qualifies.
func NewRandomWalk(cfg Config, stepSize float64) (Algorithm, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	if stepSize < 0 {
		return nil, ErrInvalidConfig("step size must be >= 0")
	}
	if stepSize == 0 {
		stepSize = defaultRWStepSize
	}
	return &chain{
		cfg:  cfg,
		name: "randomwalk",
		tr:   &rwTransition{model: cfg.Model.LogProb, stepSize: stepSize},
	}, nil
}

type rwTransition struct {
	model    func([]float64) float64
	stepSize float64
}

func (t *rwTransition) step(rng *rand.Rand, z []float64, logp float64) ([]float64, float64, bool) {
	zNew := make([]float64, len(z))
	for i, v := range z {
		zNew[i] = v + t.stepSize*rng.NormFloat64()
	}
	logpNew := t.model(zNew)
	// Non-finite proposals are always rejected.
	if math.IsNaN(logpNew) || math.IsInf(logpNew, 1) {
		return z, logp, false
	}
	if math.Log(rng.Float64()) < logpNew-logp {
		return zNew, logpNew, true
	}
	return z, logp, false
}

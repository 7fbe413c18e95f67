package infer

import (
	"math"
	"math/rand"

	"latentd/internal/model"
)

// Defaults for the numerical integrator.
const (
	defaultHMCStepSize      = 0.25
	defaultHMCLeapfrogSteps = 2
)

// NewHMC builds a Hamiltonian Monte Carlo sampler. The model must support
// gradients; models outside that class are rejected with a CapabilityError.
// stepSize and leapfrogSteps fall back to package defaults when zero.
func NewHMC(cfg Config, stepSize float64, leapfrogSteps int) (Algorithm, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	g, ok := cfg.Model.(model.Gradient)
	if !ok {
		return nil, &CapabilityError{Algorithm: "hmc", Capability: "gradients"}
	}
	if stepSize < 0 {
		return nil, ErrInvalidConfig("step size must be >= 0")
	}
	if stepSize == 0 {
		stepSize = defaultHMCStepSize
	}
	if leapfrogSteps < 0 {
		return nil, ErrInvalidConfig("leapfrog steps must be >= 0")
	}
	if leapfrogSteps == 0 {
		leapfrogSteps = defaultHMCLeapfrogSteps
	}
	return &chain{
		cfg:  cfg,
		name: "hmc",
		tr:   &hmcTransition{model: g, stepSize: stepSize, steps: leapfrogSteps},
	}, nil
}

type hmcTransition struct {
	model    model.Gradient
	stepSize float64
	steps    int
}

// step simulates Hamiltonian dynamics with a leapfrog integrator and
// corrects the discretization error with an acceptance ratio.
func (h *hmcTransition) step(rng *rand.Rand, z []float64, logp float64) ([]float64, float64, bool) {
	dim := len(z)
	// Sample momentum.
	rOld := make([]float64, dim)
	for i := range rOld {
		rOld[i] = rng.NormFloat64()
	}

	zNew := append([]float64(nil), z...)
	rNew := append([]float64(nil), rOld...)
	grad := make([]float64, dim)
	h.model.GradLogProb(zNew, grad)
	for s := 0; s < h.steps; s++ {
		for i := range rNew {
			rNew[i] += 0.5 * h.stepSize * grad[i]
		}
		for i := range zNew {
			zNew[i] += h.stepSize * rNew[i]
		}
		h.model.GradLogProb(zNew, grad)
		for i := range rNew {
			rNew[i] += 0.5 * h.stepSize * grad[i]
		}
	}

	logpNew := h.model.LogProb(zNew)
	if math.IsNaN(logpNew) || math.IsInf(logpNew, 1) {
		return z, logp, false
	}

	ratio := logpNew - logp
	for i := range rOld {
		ratio += 0.5*rOld[i]*rOld[i] - 0.5*rNew[i]*rNew[i]
	}
	if math.IsNaN(ratio) {
		return z, logp, false
	}
	if math.Log(rng.Float64()) < ratio {
		return zNew, logpNew, true
	}
	return z, logp, false
}

package infer

import (
	"context"
	"math"
	"math/rand"
)

// transition advances a Markov chain by one step. Implementations return
// the next state, its log density, and whether the proposal was accepted
// (a rejected proposal returns the inputs unchanged).
type transition interface {
	step(rng *rand.Rand, z []float64, logp float64) ([]float64, float64, bool)
}

// chain is the shared Monte Carlo loop: it owns the iteration schedule,
// burn-in, thinning, acceptance accounting, and the empirical trace, and
// delegates the actual transition to the concrete sampler.
type chain struct {
	cfg  Config
	name string
	tr   transition
}

func (c *chain) Run(ctx context.Context, onDraw func(Draw) error) (Summary, error) {
	rng := rand.New(rand.NewSource(c.cfg.Seed))
	z := c.cfg.initialPoint()
	logp := c.cfg.Model.LogProb(z)
	if math.IsNaN(logp) || math.IsInf(logp, 0) {
		return Summary{}, badInitError{}
	}

	tr := newTrace(c.cfg.Model.Dim())
	accepted := 0
	for it := 1; it <= c.cfg.Iterations; it++ {
		select {
		case <-ctx.Done():
			return Summary{}, ctx.Err()
		default:
		}

		var acc bool
		z, logp, acc = c.tr.step(rng, z, logp)
		if acc {
			accepted++
		}

		if it <= c.cfg.BurnIn || (it-c.cfg.BurnIn-1)%c.cfg.Thin != 0 {
			continue
		}
		tr.add(z)
		if onDraw != nil {
			d := Draw{Iter: it, Z: append([]float64(nil), z...), LogProb: logp, Accepted: acc}
			if err := onDraw(d); err != nil {
				return Summary{}, err
			}
		}
	}

	s := tr.summary()
	s.Algorithm = c.name
	s.Iterations = c.cfg.Iterations
	s.AcceptRate = float64(accepted) / float64(c.cfg.Iterations)
	return s, nil
}

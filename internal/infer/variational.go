package infer

import (
	"context"
	"math/rand"
)

// objective is one ascent step of a variational (or point-estimate) fit.
// step mutates internal parameters and reports the current point estimate,
// its log density, and the ELBO estimate (zero for point estimators).
type objective interface {
	step(rng *rand.Rand, t int) (z []float64, logp, elbo float64)
	summary() Summary
}

// optimizer is the shared loop of the optimization branch: it owns the
// schedule and draw emission while the concrete objective owns the update.
type optimizer struct {
	cfg  Config
	name string
	obj  objective
}

func (o *optimizer) Run(ctx context.Context, onDraw func(Draw) error) (Summary, error) {
	rng := rand.New(rand.NewSource(o.cfg.Seed))
	for it := 1; it <= o.cfg.Iterations; it++ {
		select {
		case <-ctx.Done():
			return Summary{}, ctx.Err()
		default:
		}

		z, logp, elbo := o.obj.step(rng, it)
		if (it-1)%o.cfg.Thin != 0 {
			continue
		}
		if onDraw != nil {
			d := Draw{Iter: it, Z: append([]float64(nil), z...), LogProb: logp, ELBO: elbo}
			if err := onDraw(d); err != nil {
				return Summary{}, err
			}
		}
	}
	s := o.obj.summary()
	s.Algorithm = o.name
	s.Iterations = o.cfg.Iterations
	return s, nil
}

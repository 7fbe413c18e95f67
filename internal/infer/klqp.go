package infer

import (
	"math"
	"math/rand"

	"latentd/internal/model"
)

const defaultKLqpStepSize = 0.05

// halfLog2PiE is 0.5*(1 + log 2*pi), the per-coordinate entropy constant of
// a normal distribution before the log-stddev term.
const halfLog2PiE = 1.4189385332046727

// NewKLqp builds a mean-field variational fit: q is a diagonal normal whose
// parameters ascend a single-sample reparameterization estimate of the ELBO
// gradient. Requires model gradients.
func NewKLqp(cfg Config, stepSize float64) (Algorithm, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	g, ok := cfg.Model.(model.Gradient)
	if !ok {
		return nil, &CapabilityError{Algorithm: "klqp", Capability: "gradients"}
	}
	if stepSize < 0 {
		return nil, ErrInvalidConfig("step size must be >= 0")
	}
	if stepSize == 0 {
		stepSize = defaultKLqpStepSize
	}
	dim := cfg.Model.Dim()
	obj := &klqpObjective{
		model:    g,
		stepSize: stepSize,
		mu:       cfg.initialPoint(),
		logStd:   make([]float64, dim),
		grad:     make([]float64, dim),
	}
	for i := range obj.logStd {
		obj.logStd[i] = -1 // start with a narrow q
	}
	return &optimizer{cfg: cfg, name: "klqp", obj: obj}, nil
}

type klqpObjective struct {
	model    model.Gradient
	stepSize float64
	mu       []float64
	logStd   []float64
	grad     []float64
	elboAvg  float64
	steps    int
}

func (o *klqpObjective) step(rng *rand.Rand, t int) ([]float64, float64, float64) {
	dim := len(o.mu)
	eps := make([]float64, dim)
	z := make([]float64, dim)
	for i := range z {
		eps[i] = rng.NormFloat64()
		z[i] = o.mu[i] + math.Exp(o.logStd[i])*eps[i]
	}
	logp := o.model.GradLogProb(z, o.grad)

	elbo := logp
	for _, ls := range o.logStd {
		elbo += halfLog2PiE + ls
	}

	lr := o.stepSize / math.Sqrt(float64(t))
	for i := range o.mu {
		if math.IsNaN(o.grad[i]) || math.IsInf(o.grad[i], 0) {
			continue
		}
		sigma := math.Exp(o.logStd[i])
		o.mu[i] += lr * o.grad[i]
		o.logStd[i] += lr * (o.grad[i]*eps[i]*sigma + 1)
		if o.logStd[i] > 10 {
			o.logStd[i] = 10
		} else if o.logStd[i] < -10 {
			o.logStd[i] = -10
		}
	}

	o.steps++
	if o.steps == 1 {
		o.elboAvg = elbo
	} else {
		o.elboAvg = 0.9*o.elboAvg + 0.1*elbo
	}
	return o.mu, logp, elbo
}

func (o *klqpObjective) summary() Summary {
	dim := len(o.mu)
	s := Summary{
		Draws: o.steps,
		ELBO:  o.elboAvg,
		Mean:  append([]float64(nil), o.mu...),
		Std:   make([]float64, dim),
	}
	for i, ls := range o.logStd {
		s.Std[i] = math.Exp(ls)
	}
	return s
}

package infer

import (
	"context"
	"fmt"
	"time"

	"latentd/internal/model"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultIterations = 1000
	defaultThin       = 1
)

// Config carries the shared inference inputs: the model holding latent
// variables and observed data, the iteration schedule, and the seed.
type Config struct {
	Model model.Model
	// Iterations is the total number of transitions or optimizer steps.
	// 0 means the package default; negative values are rejected.
	Iterations int
	// BurnIn transitions are discarded before recording. Must be below
	// Iterations. Ignored by variational algorithms.
	BurnIn int
	// Thin keeps every thin-th post-burn-in draw. 0 means keep all.
	Thin int
	// Seed makes the run deterministic; 0 picks a time-based seed.
	Seed int64
	// Init is the starting latent point; nil starts at the origin.
	Init []float64
}

// Algorithm is a runnable inference procedure. Run drives the whole
// schedule, invoking onDraw (when non-nil) for every recorded draw, and
// returns the posterior summary. Run stops between iterations when ctx is
// canceled and aborts when onDraw returns an error.
type Algorithm interface {
	Run(ctx context.Context, onDraw func(Draw) error) (Summary, error)
}

// normalize applies defaults and validates the schedule.
func (c Config) normalize() (Config, error) {
	if c.Model == nil {
		return c, ErrInvalidConfig("model is required")
	}
	if c.Iterations < 0 {
		return c, ErrInvalidConfig("iterations must be >= 0")
	}
	if c.Iterations == 0 {
		c.Iterations = defaultIterations
	}
	if c.BurnIn < 0 {
		return c, ErrInvalidConfig("burn-in must be >= 0")
	}
	if c.BurnIn >= c.Iterations {
		return c, ErrInvalidConfig(fmt.Sprintf("burn-in %d must be below iterations %d", c.BurnIn, c.Iterations))
	}
	if c.Thin < 0 {
		return c, ErrInvalidConfig("thin must be >= 0")
	}
	if c.Thin == 0 {
		c.Thin = defaultThin
	}
	if c.Init != nil && len(c.Init) != c.Model.Dim() {
		return c, ErrInvalidConfig(fmt.Sprintf("init has length %d, model dimension is %d", len(c.Init), c.Model.Dim()))
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c, nil
}

// initialPoint returns a copy of the configured starting point, or the
// origin when none is set.
func (c Config) initialPoint() []float64 {
	z := make([]float64, c.Model.Dim())
	copy(z, c.Init)
	return z
}

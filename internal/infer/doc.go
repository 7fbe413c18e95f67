// Package infer implements posterior inference over latentd models. It is
// structured into small files by concern:
//
//   - config.go: shared run configuration and normalization.
//   - errors.go: error types and helpers (IsCapability, IsInvalidConfig).
//   - draw.go: the Draw payload streamed to callers during a run.
//   - trace.go: post-burn-in draw storage and summary statistics.
//   - montecarlo.go: the shared sampling chain loop over a transition.
//   - hmc.go: Hamiltonian Monte Carlo transition (leapfrog + MH correction).
//   - randomwalk.go: random-walk Metropolis transition.
//   - variational.go: the shared optimizer loop over an objective.
//   - klqp.go: mean-field normal approximation fit by ELBO ascent.
//   - mapest.go: MAP point estimation by gradient ascent.
//
// Algorithms that need more than LogProb declare it at construction time:
// NewHMC, NewKLqp, and NewMAP return a CapabilityError when the model does
// not satisfy model.Gradient, so unsupported models are rejected before any
// work is queued.
package infer

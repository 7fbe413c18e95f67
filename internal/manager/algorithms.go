package manager

import (
	"latentd/internal/infer"
	"latentd/internal/model"
	"latentd/pkg/types"
)

// buildAlgorithm translates a run request into a constructed algorithm.
// Construction performs capability and config validation, so errors here
// already carry their HTTP mapping (422 for capability, 400 for config).
func (m *Manager) buildAlgorithm(req types.RunRequest, mdl model.Model) (infer.Algorithm, string, error) {
	name := req.Algorithm
	if name == "" {
		name = m.defaultAlgorithm
	}
	cfg := infer.Config{
		Model:      mdl,
		Iterations: req.Iterations,
		BurnIn:     req.BurnIn,
		Thin:       req.Thin,
		Seed:       req.Seed,
		Init:       req.Init,
	}
	var (
		alg infer.Algorithm
		err error
	)
	switch name {
	case "hmc":
		alg, err = infer.NewHMC(cfg, req.StepSize, req.LeapfrogSteps)
	case "randomwalk":
		alg, err = infer.NewRandomWalk(cfg, req.StepSize)
	case "klqp":
		alg, err = infer.NewKLqp(cfg, req.StepSize)
	case "map":
		alg, err = infer.NewMAP(cfg, req.StepSize)
	default:
		return nil, name, unknownAlgorithmError{name: name}
	}
	if err != nil {
		return nil, name, err
	}
	return alg, name, nil
}

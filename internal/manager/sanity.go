package manager

import (
	"os/exec"

	"latentd/internal/model"
)

// SanityReport describes runtime checks for external model evaluators.
type SanityReport struct {
	ExternalModels int      `json:"external_models"`
	Missing        []string `json:"missing,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// SanityCheck validates that external evaluator binaries referenced by the
// registry are resolvable. It does not mutate state and is safe to call at
// any time.
func (m *Manager) SanityCheck() SanityReport {
	var r SanityReport
	for _, desc := range m.ListModels() {
		if desc.Family != "external" {
			continue
		}
		r.ExternalModels++
		spec, err := model.LoadSpec(desc.Path)
		if err != nil {
			r.Missing = append(r.Missing, desc.ID)
			r.Error = err.Error()
			continue
		}
		if len(spec.Command) == 0 {
			r.Missing = append(r.Missing, desc.ID)
			r.Error = "external model has no command"
			continue
		}
		if _, err := exec.LookPath(spec.Command[0]); err != nil {
			r.Missing = append(r.Missing, desc.ID)
			r.Error = err.Error()
		}
	}
	return r
}

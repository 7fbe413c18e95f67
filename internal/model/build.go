package model

import "fmt"

// Build compiles a spec (plus its dataset, when the family uses one) into a
// live model. Families that support gradients return a value satisfying
// Gradient; callers type-assert for capability checks.
func Build(spec Spec) (Model, error) {
	switch spec.Family {
	case "normal":
		return newNormalMean(spec)
	case "linreg":
		return newLinReg(spec)
	case "logreg":
		return newLogReg(spec)
	case "funnel":
		return newFunnel(spec)
	case "external":
		if spec.Dim <= 0 {
			return nil, fmt.Errorf("external model %s: dim is required", spec.ID)
		}
		return StartSubprocess(spec.Command, spec.Dim)
	default:
		return nil, ErrUnknownFamily(spec.Family)
	}
}

// BuildFromFile loads a spec file and builds its model.
func BuildFromFile(path string) (Model, error) {
	spec, err := LoadSpec(path)
	if err != nil {
		return nil, err
	}
	return Build(spec)
}

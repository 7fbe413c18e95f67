package model

// Model is a probabilistic model over a flat latent vector z. The observed
// dataset is bound into the model at build time, so LogProb(z) is the log
// joint density log p(x, z) up to family-specific constants.
type Model interface {
	// Dim returns the length of the latent vector.
	Dim() int
	// LogProb evaluates the log joint density at z. Implementations return
	// -Inf (or NaN) outside the support; callers must treat non-finite
	// values as a rejection, never as a panic.
	LogProb(z []float64) float64
}

// Gradient is the capability interface for models that can differentiate
// their log joint. Gradient-based algorithms require it at construction and
// reject models that do not satisfy it.
type Gradient interface {
	Model
	// GradLogProb evaluates the log joint at z and writes its gradient into
	// grad. len(grad) must equal Dim().
	GradLogProb(z, grad []float64) float64
}

// unknownFamilyError signals a spec naming a family this build does not know.
type unknownFamilyError struct{ family string }

func (e unknownFamilyError) Error() string { return "unknown model family: " + e.family }

// ErrUnknownFamily constructs an unknownFamilyError.
func ErrUnknownFamily(family string) error { return unknownFamilyError{family: family} }

// IsUnknownFamily reports whether err indicates an unrecognized model family.
func IsUnknownFamily(err error) bool {
	_, ok := err.(unknownFamilyError)
	return ok
}

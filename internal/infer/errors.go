package infer

import "errors"

// CapabilityError reports a model that falls outside the class an algorithm
// supports. It is raised at construction, before any run is admitted.
type CapabilityError struct {
	Algorithm  string
	Capability string
}

func (e *CapabilityError) Error() string {
	return "algorithm " + e.Algorithm + " requires a model with " + e.Capability
}

// StatusCode maps capability rejections to 422 for the HTTP layer.
func (e *CapabilityError) StatusCode() int { return 422 }

// IsCapability reports whether err is a capability rejection.
func IsCapability(err error) bool {
	var ce *CapabilityError
	return errors.As(err, &ce)
}

// invalidConfigError signals an unusable run configuration.
type invalidConfigError struct{ msg string }

func (e invalidConfigError) Error() string { return "invalid inference config: " + e.msg }

// ErrInvalidConfig constructs an invalidConfigError.
func ErrInvalidConfig(msg string) error { return invalidConfigError{msg: msg} }

// IsInvalidConfig reports whether err indicates a bad run configuration.
func IsInvalidConfig(err error) bool {
	_, ok := err.(invalidConfigError)
	return ok
}

// badInitError signals a non-finite log density at the initial point.
type badInitError struct{}

func (badInitError) Error() string { return "model log density is not finite at the initial point" }

// IsBadInit reports whether err indicates a non-finite starting density.
func IsBadInit(err error) bool {
	_, ok := err.(badInitError)
	return ok
}

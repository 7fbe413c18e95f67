package model

import "io"

// Adapter connects the engine to a model evaluated in an external
// representation. Implementations own the external resource lifecycle;
// Close must be safe to call once the adapter is no longer needed.
type Adapter interface {
	Model
	io.Closer
}

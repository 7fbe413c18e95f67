package manager

import (
	"time"

	"latentd/internal/model"
)

// State represents lifecycle state of the manager/instances.
type State string

const (
	StateReady    State = "ready"
	StateLoading  State = "loading"
	StateDraining State = "draining"
	StateError    State = "error"
)

// Instance is a built model kept warm for runs (one per model id).
type Instance struct {
	ID       string
	State    State
	LastUsed time.Time
	EstMemMB int
	// Compiled model backing this instance.
	mdl model.Model
	// Queueing primitives
	runCh   chan struct{} // size 1: single in-flight run
	queueCh chan struct{} // buffered: queue slots
}

// Snapshot is a read-only projection of the manager state.
type Snapshot struct {
	State     State
	Instances int
	Err       string
}

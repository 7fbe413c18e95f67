package manager

import (
	"context"
	"time"

	"latentd/internal/model"
)

// EnsureInstance builds (or reuses) the model instance for modelID. Building
// loads the spec and dataset and, for external models, starts the evaluator
// process; a failure there surfaces as a dependency error.
func (m *Manager) EnsureInstance(ctx context.Context, modelID string) error {
	if modelID == "" {
		modelID = m.defaultModel
		if modelID == "" {
			return nil
		}
	}

	m.mu.RLock()
	instReady, ok := m.instances[modelID]
	m.mu.RUnlock()
	if ok && instReady.State == StateReady {
		// Upgrade to write lock to safely mutate LastUsed
		m.mu.Lock()
		if inst2, ok2 := m.instances[modelID]; ok2 && inst2.State == StateReady {
			inst2.LastUsed = time.Now()
			m.mu.Unlock()
			return nil
		}
		m.mu.Unlock()
		// If state changed in between, continue with ensure path
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	// Resolve model from registry
	desc, ok := m.getModelByID(modelID)
	if !ok {
		return ErrModelNotFound(modelID)
	}
	reqMB := m.estimateMemMB(desc)

	// Evict until it fits budget + margin, if budget configured
	if m.budgetMB > 0 {
		if err := m.evictUntilFits(reqMB); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.state = StateLoading
	m.err = ""
	inst, existed := m.instances[modelID]
	addedNow := false
	if !existed || inst == nil {
		inst = &Instance{
			ID:       modelID,
			State:    StateLoading,
			LastUsed: time.Now(),
			EstMemMB: reqMB,
			runCh:    make(chan struct{}, 1),
			queueCh:  make(chan struct{}, m.maxQueueDepth),
		}
		m.instances[modelID] = inst
		addedNow = true
	} else {
		inst.State = StateLoading
		inst.EstMemMB = reqMB
		inst.LastUsed = time.Now()
	}
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "build_start", ModelID: modelID, Fields: map[string]any{"est_mem_mb": reqMB}})

	mdl, err := model.BuildFromFile(desc.Path)
	if err != nil {
		m.mu.Lock()
		delete(m.instances, modelID)
		m.state = StateError
		m.err = err.Error()
		m.mu.Unlock()
		m.publisher.Publish(Event{Name: "build_error", ModelID: modelID, Fields: map[string]any{"error": err.Error()}})
		if desc.Family == "external" {
			return ErrDependencyUnavailable("model evaluator: " + err.Error())
		}
		return err
	}

	// Commit instance as ready
	m.mu.Lock()
	if addedNow {
		// Only add to used estimate when we actually added a new instance
		m.usedEstMB += reqMB
	}
	inst.mdl = mdl
	inst.State = StateReady
	inst.LastUsed = time.Now()
	m.state = StateReady
	m.err = ""
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "build_ready", ModelID: modelID, Fields: map[string]any{"dim": mdl.Dim()}})
	return nil
}

package manager

import (
	"io"
	"time"
)

// Unload initiates a graceful drain of a model instance and removes it.
// - Sets instance state to draining to reject new enqueues.
// - Waits up to drainTimeout for in-flight and queued runs to finish.
// - Closes the backing model (stops external evaluators) and removes the entry.
func (m *Manager) Unload(modelID string) error {
	if modelID == "" {
		return ErrModelNotFound("(unspecified)")
	}
	m.mu.Lock()
	inst := m.instances[modelID]
	if inst == nil {
		m.mu.Unlock()
		return ErrModelNotFound(modelID)
	}
	inst.State = StateDraining
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "unload_start", ModelID: modelID, Fields: map[string]any{}})

	deadline := time.Now().Add(m.drainTimeout)
	for {
		m.mu.RLock()
		qlen := len(inst.queueCh)
		inflight := len(inst.runCh)
		m.mu.RUnlock()
		if inflight == 0 && qlen == 0 {
			break
		}
		if time.Now().After(deadline) {
			m.publisher.Publish(Event{Name: "unload_timeout", ModelID: modelID, Fields: map[string]any{"inflight": inflight, "queue": qlen}})
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	m.mu.Lock()
	var mdlCloser io.Closer
	if inst2 := m.instances[modelID]; inst2 != nil {
		m.usedEstMB -= inst2.EstMemMB
		if m.usedEstMB < 0 {
			m.usedEstMB = 0
		}
		if c, ok := inst2.mdl.(io.Closer); ok {
			mdlCloser = c
		}
	}
	delete(m.instances, modelID)
	m.mu.Unlock()

	if mdlCloser != nil {
		_ = mdlCloser.Close()
	}

	m.publisher.Publish(Event{Name: "unload_done", ModelID: modelID, Fields: map[string]any{}})
	return nil
}

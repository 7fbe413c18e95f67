package manager

import (
	"io"
	"time"
)

// Evict LRU idle instances until required MB fits budget + margin.
func (m *Manager) evictUntilFits(requiredMB int) error {
	deadline := time.Now().Add(1 * time.Second)
	for {
		m.mu.Lock()
		fits := (m.usedEstMB + requiredMB + m.marginMB) <= m.budgetMB
		if fits {
			m.mu.Unlock()
			return nil
		}
		// Pick LRU idle instance (no in-flight and no queued runs)
		var lru *Instance
		for _, inst := range m.instances {
			if len(inst.runCh) > 0 || len(inst.queueCh) > 0 {
				// active or has queued work; skip
				continue
			}
			if lru == nil || inst.LastUsed.Before(lru.LastUsed) {
				lru = inst
			}
		}
		if lru == nil {
			// nothing to evict
			m.mu.Unlock()
			return nil
		}
		delete(m.instances, lru.ID)
		m.usedEstMB -= lru.EstMemMB
		m.evictionsTotal++
		mdl := lru.mdl
		m.mu.Unlock()

		// External evaluators hold a process; release it outside the lock.
		if c, ok := mdl.(io.Closer); ok {
			_ = c.Close()
		}
		m.publisher.Publish(Event{Name: "evict", ModelID: lru.ID, Fields: map[string]any{"est_mem_mb": lru.EstMemMB}})

		if time.Now().After(deadline) {
			return nil
		}
		// loop to re-check
	}
}

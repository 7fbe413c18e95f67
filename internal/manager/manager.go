package manager

import (
	"sync"
	"time"

	"latentd/pkg/types"
)

type Manager struct {
	mu               sync.RWMutex
	state            State
	err              string
	registry         []types.Model
	budgetMB         int
	marginMB         int
	defaultModel     string
	defaultAlgorithm string
	instances        map[string]*Instance
	usedEstMB        int

	// Queue config
	maxQueueDepth int
	maxWait       time.Duration
	drainTimeout  time.Duration

	publisher EventPublisher
	startTime time.Time

	// Totals, guarded by mu.
	evictionsTotal uint64
	runsTotal      uint64
	drawsTotal     uint64
}

func New(reg []types.Model, budgetMB, marginMB int, defaultModel string) *Manager {
	// Delegate to NewWithConfig to centralize defaults and option parsing
	return NewWithConfig(ManagerConfig{
		Registry:     reg,
		BudgetMB:     budgetMB,
		MarginMB:     marginMB,
		DefaultModel: defaultModel,
	})
}

func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == StateError {
		return false
	}
	for _, inst := range m.instances {
		if inst.State == StateReady {
			return true
		}
	}
	// No instance built yet: ready as soon as a registry exists to serve.
	return len(m.registry) > 0
}

func (m *Manager) ListModels() []types.Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// return a shallow copy to avoid external mutation
	out := make([]types.Model, len(m.registry))
	copy(out, m.registry)
	return out
}

package manager

import (
	"time"

	"latentd/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxQueueDepth    = 32
	defaultMaxWait          = 30 * time.Second
	defaultDrainTimeout     = 10 * time.Second
	defaultDefaultAlgorithm = "hmc"
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Registry         []types.Model
	BudgetMB         int
	MarginMB         int
	DefaultModel     string
	DefaultAlgorithm string
	MaxQueueDepth    int
	MaxWait          time.Duration
	DrainTimeout     time.Duration
	Publisher        EventPublisher
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		state:            StateLoading,
		registry:         cfg.Registry,
		budgetMB:         cfg.BudgetMB,
		marginMB:         cfg.MarginMB,
		defaultModel:     cfg.DefaultModel,
		defaultAlgorithm: cfg.DefaultAlgorithm,
		instances:        make(map[string]*Instance),
		publisher:        cfg.Publisher,
	}
	if m.defaultAlgorithm == "" {
		m.defaultAlgorithm = defaultDefaultAlgorithm
	}
	if cfg.MaxQueueDepth <= 0 {
		m.maxQueueDepth = defaultMaxQueueDepth
	} else {
		m.maxQueueDepth = cfg.MaxQueueDepth
	}
	if cfg.MaxWait <= 0 {
		m.maxWait = defaultMaxWait
	} else {
		m.maxWait = cfg.MaxWait
	}
	if cfg.DrainTimeout <= 0 {
		m.drainTimeout = defaultDrainTimeout
	} else {
		m.drainTimeout = cfg.DrainTimeout
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	m.startTime = time.Now()
	return m
}

package types

// RunRequest represents an inference run submission.
type RunRequest struct {
	// Optional model identifier. If empty, the server default is used.
	// example: eight-schools
	Model string `json:"model,omitempty" example:"eight-schools"`
	// Inference algorithm: hmc, randomwalk, klqp, map.
	// example: hmc
	Algorithm string `json:"algorithm" example:"hmc"`
	// Total iterations (sampler transitions or optimizer steps).
	// example: 1000
	Iterations int `json:"iterations,omitempty" example:"1000"`
	// Iterations discarded from the front of the chain before recording.
	// example: 200
	BurnIn int `json:"burn_in,omitempty" example:"200"`
	// Keep every thin-th post-burn-in draw.
	// example: 1
	Thin int `json:"thin,omitempty" example:"1"`
	// Integrator/proposal step size. 0 uses the algorithm default.
	// example: 0.25
	StepSize float64 `json:"step_size,omitempty" example:"0.25"`
	// Leapfrog steps per HMC transition. 0 uses the default.
	// example: 2
	LeapfrogSteps int `json:"leapfrog_steps,omitempty" example:"2"`
	// Random seed for reproducibility; 0 or omitted lets the server choose.
	// example: 42
	Seed int64 `json:"seed,omitempty" example:"42"`
	// If true, stream every recorded draw as an NDJSON line. When false,
	// only the final summary line is written.
	// example: true
	Stream bool `json:"stream,omitempty" example:"true"`
	// Initial latent point; length must match the model dimension when set.
	Init []float64 `json:"init,omitempty"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of available models.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// InstanceStatus summarizes a built model instance for /status.
type InstanceStatus struct {
	// ID of the model this instance serves.
	// example: eight-schools
	ModelID string `json:"model_id" example:"eight-schools"`
	// Current lifecycle state of the instance (e.g., loading, ready).
	// example: ready
	State string `json:"state" example:"ready"`
	// Last time this instance served a run (unix seconds).
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix" example:"1700000000"`
	// Estimated resident memory in MB (dataset plus trace headroom).
	// example: 12
	EstMemMB int `json:"est_mem_mb" example:"12"`
	// Current queue length for incoming runs.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// Number of in-flight runs currently executing.
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Maximum queued runs allowed before backpressure triggers.
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Built model instances.
	Instances []InstanceStatus `json:"instances"`
	// Memory budget in MB across all instances.
	// example: 4096
	BudgetMB int `json:"budget_mb" example:"4096"`
	// Estimated used memory in MB.
	// example: 128
	UsedMB int `json:"used_est_mb" example:"128"`
	// Reserved memory margin in MB.
	// example: 64
	MarginMB int `json:"margin_mb" example:"64"`
	// Optional top-level error message.
	Error string `json:"error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Total number of evictions performed to stay under budget.
	// example: 5
	EvictionsTotal uint64 `json:"evictions_total" example:"5"`
	// Total number of inference runs completed.
	// example: 12
	RunsTotal uint64 `json:"runs_total" example:"12"`
	// Total number of recorded draws across all runs.
	// example: 12000
	DrawsTotal uint64 `json:"draws_total" example:"12000"`
	// Overall manager state (e.g., loading, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Number of instances currently building (loading).
	// example: 1
	WarmupsInProgress int `json:"warmups_in_progress" example:"1"`
}

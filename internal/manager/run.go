package manager

import (
	"context"
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"latentd/internal/infer"
	"latentd/pkg/types"
)

// doneLine is the final NDJSON record of every successful run.
type doneLine struct {
	Done    bool          `json:"done"`
	RunID   string        `json:"run_id"`
	Model   string        `json:"model"`
	Summary infer.Summary `json:"summary"`
}

// Run executes an inference run and writes NDJSON to w. When req.Stream is
// set every recorded draw becomes one line; otherwise only the final summary
// line is written. flush (when non-nil) is called after each line so chunked
// responses reach the client promptly.
func (m *Manager) Run(ctx context.Context, req types.RunRequest, w io.Writer, flush func()) error {
	modelID := req.Model
	if modelID == "" {
		modelID = m.defaultModel
		if modelID == "" {
			return modelNotFoundError{id: "(unspecified)"}
		}
	}
	if err := m.EnsureInstance(ctx, modelID); err != nil {
		return err
	}
	// Admission: per-instance FIFO queue, single in-flight
	release, err := m.beginRun(ctx, modelID)
	if err != nil {
		return err
	}
	defer release()

	m.mu.RLock()
	inst := m.instances[modelID]
	m.mu.RUnlock()
	if inst == nil || inst.mdl == nil {
		return modelNotFoundError{id: modelID}
	}

	alg, algName, err := m.buildAlgorithm(req, inst.mdl)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	m.publisher.Publish(Event{Name: "run_start", ModelID: modelID, Fields: map[string]any{"run_id": runID, "algorithm": algName}})
	activeRuns.Inc()
	defer activeRuns.Dec()

	enc := json.NewEncoder(w)
	draws := uint64(0)
	onDraw := func(d infer.Draw) error {
		draws++
		if d.Accepted {
			acceptedTotalMetric.Inc()
		}
		if !req.Stream {
			return nil
		}
		if err := enc.Encode(d); err != nil {
			return err
		}
		if flush != nil {
			flush()
		}
		return nil
	}

	summary, err := alg.Run(ctx, onDraw)
	if err != nil {
		runsTotalMetric.WithLabelValues(algName, "error").Inc()
		m.publisher.Publish(Event{Name: "run_error", ModelID: modelID, Fields: map[string]any{"run_id": runID, "error": err.Error()}})
		return err
	}

	m.mu.Lock()
	m.runsTotal++
	m.drawsTotal += draws
	m.mu.Unlock()
	runsTotalMetric.WithLabelValues(algName, "ok").Inc()
	drawsTotalMetric.Add(float64(draws))

	if err := enc.Encode(doneLine{Done: true, RunID: runID, Model: modelID, Summary: summary}); err != nil {
		return err
	}
	if flush != nil {
		flush()
	}
	m.publisher.Publish(Event{Name: "run_end", ModelID: modelID, Fields: map[string]any{"run_id": runID, "draws": draws}})
	return nil
}

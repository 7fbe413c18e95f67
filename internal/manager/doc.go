// Package manager provides lifecycle, admission, and run coordination for
// model instances. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: internal state types (State, Instance, Snapshot).
//   - errors.go: error types and helpers (IsTooBusy, IsModelNotFound, ...).
//   - helpers.go: small utilities (model lookup, memory estimation).
//   - admission.go: per-instance queueing and run admission.
//   - ensure.go: EnsureInstance lifecycle and model building.
//   - evict.go: eviction logic to fit within the memory budget.
//   - run.go: run API entry point and NDJSON streaming behavior.
//   - algorithms.go: request-to-algorithm construction.
//   - unload.go: graceful drain and removal of an instance.
//   - sanity.go: startup checks for external model evaluators.
//   - status_report.go: Status/Snapshot reporting helpers.
//   - metrics.go: prometheus counters for runs and draws.
//   - events.go, eventpub_memory.go: lifecycle event publishing.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (e.g., New/NewWithConfig, Ready, ListModels,
// Status, Run). Internal types are subject to change.
package manager

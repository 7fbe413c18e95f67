package e2e

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"latentd/internal/httpapi"
	"latentd/internal/manager"
	"latentd/internal/registry"
)

// writeSpec drops a model spec file into dir and returns its path.
func writeSpec(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write spec %s: %v", p, err)
	}
	return p
}

// funnelModelsDir creates a temp models dir holding one funnel spec.
func funnelModelsDir(t *testing.T, id string) string {
	t.Helper()
	dir := t.TempDir()
	writeSpec(t, dir, id+".toml", "family = \"funnel\"\ndim = 2\n")
	return dir
}

func newServerForDir(t *testing.T, modelsDir string, budgetMB, marginMB int, defaultModel string) (*httptest.Server, *manager.Manager) {
	t.Helper()
	reg, err := registry.LoadDir(modelsDir)
	if err != nil {
		t.Fatalf("load models: %v", err)
	}
	mgr := manager.New(reg, budgetMB, marginMB, defaultModel)
	mux := httpapi.NewMux(mgr)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, mgr
}

// newServerForDirWithConfig allows configuring queue/backpressure behavior for tests.
func newServerForDirWithConfig(t *testing.T, modelsDir string, cfg manager.ManagerConfig) (*httptest.Server, *manager.Manager) {
	t.Helper()
	reg, err := registry.LoadDir(modelsDir)
	if err != nil {
		t.Fatalf("load models: %v", err)
	}
	cfg.Registry = reg
	mgr := manager.NewWithConfig(cfg)
	mux := httpapi.NewMux(mgr)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, mgr
}

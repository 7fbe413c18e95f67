package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"latentd/internal/manager"
	"latentd/pkg/types"
)

func postRun(t *testing.T, url string, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url+"/run", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(b)
}

func TestE2E_ModelsAndStatus(t *testing.T) {
	dir := funnelModelsDir(t, "fun")
	srv, _ := newServerForDir(t, dir, 0, 0, "fun")

	resp, err := http.Get(srv.URL + "/models")
	if err != nil {
		t.Fatalf("get models: %v", err)
	}
	defer resp.Body.Close()
	var mr types.ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		t.Fatalf("decode models: %v", err)
	}
	if len(mr.Models) != 1 || mr.Models[0].ID != "fun" {
		t.Fatalf("unexpected models: %+v", mr.Models)
	}

	resp2, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	defer resp2.Body.Close()
	var st types.StatusResponse
	if err := json.NewDecoder(resp2.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if st.ServerTimeUnix == 0 {
		t.Fatalf("status missing server time: %+v", st)
	}
}

func TestE2E_RunStreamsDrawsAndSummary(t *testing.T) {
	dir := funnelModelsDir(t, "fun")
	srv, _ := newServerForDir(t, dir, 0, 0, "fun")

	resp, body := postRun(t, srv.URL, `{"algorithm":"hmc","iterations":30,"seed":11,"stream":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 31 {
		t.Fatalf("expected 30 draws + done line, got %d", len(lines))
	}
	var done struct {
		Done    bool   `json:"done"`
		RunID   string `json:"run_id"`
		Model   string `json:"model"`
		Summary struct {
			Algorithm string `json:"algorithm"`
			Draws     int    `json:"draws"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &done); err != nil {
		t.Fatalf("decode done line: %v", err)
	}
	if !done.Done || done.Model != "fun" || done.Summary.Algorithm != "hmc" || done.Summary.Draws != 30 {
		t.Fatalf("unexpected done line: %+v", done)
	}
}

func TestE2E_UnknownModel404(t *testing.T) {
	dir := funnelModelsDir(t, "fun")
	srv, _ := newServerForDir(t, dir, 0, 0, "")

	resp, body := postRun(t, srv.URL, `{"model":"nope","algorithm":"hmc"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
}

func TestE2E_CapabilityRejection422(t *testing.T) {
	dir := t.TempDir()
	script := `while read line; do echo '{\"logp\":-1.0}'; done`
	writeSpec(t, dir, "ext.toml",
		"family = \"external\"\ndim = 2\ncommand = [\"sh\", \"-c\", \""+script+"\"]\n")
	srv, mgr := newServerForDir(t, dir, 0, 0, "")
	t.Cleanup(func() { _ = mgr.Unload("ext") })

	resp, body := postRun(t, srv.URL, `{"model":"ext","algorithm":"hmc"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for hmc on gradient-free model, got %d body=%s", resp.StatusCode, body)
	}

	// randomwalk needs only log densities and must be accepted
	resp2, body2 := postRun(t, srv.URL, `{"model":"ext","algorithm":"randomwalk","iterations":3,"seed":1}`)
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("randomwalk on external model: status=%d body=%s", resp2.StatusCode, body2)
	}
}

func TestE2E_Backpressure429(t *testing.T) {
	dir := t.TempDir()
	// Slow evaluator: each density evaluation takes ~50ms, so a short run
	// holds the in-flight slot long enough to observe backpressure.
	script := `while read line; do sleep 0.05; echo '{\"logp\":-1.0}'; done`
	writeSpec(t, dir, "slow.toml",
		"family = \"external\"\ndim = 1\ncommand = [\"sh\", \"-c\", \""+script+"\"]\n")
	cfg := manager.ManagerConfig{
		DefaultModel:  "slow",
		MaxQueueDepth: 1,
		MaxWait:       5 * time.Millisecond,
	}
	srv, mgr := newServerForDirWithConfig(t, dir, cfg)
	t.Cleanup(func() { _ = mgr.Unload("slow") })

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		postRun(t, srv.URL, `{"algorithm":"randomwalk","iterations":20,"seed":1}`)
	}()
	// Let the first run acquire the in-flight slot
	time.Sleep(300 * time.Millisecond)

	resp, body := postRun(t, srv.URL, `{"algorithm":"randomwalk","iterations":5,"seed":2}`)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 while run in flight, got %d body=%s", resp.StatusCode, body)
	}
	wg.Wait()
}

func TestE2E_ReadyzTransitions(t *testing.T) {
	dir := funnelModelsDir(t, "fun")
	srv, _ := newServerForDir(t, dir, 0, 0, "fun")
	resp, err := http.Get(srv.URL + "/readyz")
	if err != nil {
		t.Fatalf("get readyz: %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ready with populated registry, got %d", resp.StatusCode)
	}
}

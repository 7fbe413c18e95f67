package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"latentd/pkg/types"
)

// clientConfig carries flags shared by all server-backed commands.
type clientConfig struct {
	Server string
}

// runFlags mirrors types.RunRequest for flag binding.
type runFlags struct {
	Model         string
	Algorithm     string
	Iterations    int
	BurnIn        int
	Thin          int
	StepSize      float64
	LeapfrogSteps int
	Seed          int64
	Stream        bool
}

func (f runFlags) request() types.RunRequest {
	return types.RunRequest{
		Model:         f.Model,
		Algorithm:     f.Algorithm,
		Iterations:    f.Iterations,
		BurnIn:        f.BurnIn,
		Thin:          f.Thin,
		StepSize:      f.StepSize,
		LeapfrogSteps: f.LeapfrogSteps,
		Seed:          f.Seed,
		Stream:        f.Stream,
	}
}

func httpClient() *http.Client {
	// No overall timeout: run streams can be long-lived.
	return &http.Client{Transport: &http.Transport{ResponseHeaderTimeout: 30 * time.Second}}
}

func getJSON(cfg *clientConfig, path string, out any) error {
	resp, err := httpClient().Get(cfg.Server + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var er types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
		return fmt.Errorf("%s (%d)", er.Error, er.Code)
	}
	return fmt.Errorf("server returned %s", resp.Status)
}

func fnListModels(cfg *clientConfig, out io.Writer) error {
	var mr types.ModelsResponse
	if err := getJSON(cfg, "/models", &mr); err != nil {
		return err
	}
	for _, m := range mr.Models {
		fmt.Fprintf(out, "%s\t%s\tdim=%d\t%s\n", m.ID, m.Family, m.Dim, m.Path)
	}
	return nil
}

func fnStatus(cfg *clientConfig, out io.Writer) error {
	var st types.StatusResponse
	if err := getJSON(cfg, "/status", &st); err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}

func fnRun(cfg *clientConfig, f runFlags, out io.Writer) error {
	body, err := json.Marshal(f.request())
	if err != nil {
		return err
	}
	resp, err := httpClient().Post(cfg.Server+"/run", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	// Relay NDJSON lines as they arrive.
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		fmt.Fprintln(out, sc.Text())
	}
	return sc.Err()
}

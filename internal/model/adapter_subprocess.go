package model

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// Subprocess evaluates log densities in a child process speaking NDJSON:
// each request line is {"z":[...]} and each reply line is {"logp":...}.
// One request is in flight at a time; evaluation failures poison the
// adapter (LogProb returns -Inf afterwards) and surface via Err/Close.
type Subprocess struct {
	dim int

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	scanner *bufio.Scanner
	lastErr error
}

type evalRequest struct {
	Z []float64 `json:"z"`
}

type evalReply struct {
	LogP  float64 `json:"logp"`
	Error string  `json:"error,omitempty"`
}

// StartSubprocess launches the evaluator command and returns an Adapter.
func StartSubprocess(command []string, dim int) (*Subprocess, error) {
	if len(command) == 0 {
		return nil, errors.New("external model: command is empty")
	}
	cmd := exec.Command(command[0], command[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start model evaluator: %w", err)
	}
	log.Printf("adapter=subprocess event=start cmd=%q pid=%d", command[0], cmd.Process.Pid)
	return &Subprocess{
		dim:     dim,
		cmd:     cmd,
		stdin:   stdin,
		scanner: bufio.NewScanner(stdout),
	}, nil
}

func (s *Subprocess) Dim() int { return s.dim }

func (s *Subprocess) LogProb(z []float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr != nil {
		return math.Inf(-1)
	}
	b, err := json.Marshal(evalRequest{Z: z})
	if err != nil {
		s.lastErr = err
		return math.Inf(-1)
	}
	if _, err := s.stdin.Write(append(b, '\n')); err != nil {
		s.lastErr = fmt.Errorf("write to evaluator: %w", err)
		return math.Inf(-1)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			s.lastErr = fmt.Errorf("read from evaluator: %w", err)
		} else {
			s.lastErr = errors.New("evaluator closed its output")
		}
		return math.Inf(-1)
	}
	var rep evalReply
	if err := json.Unmarshal(s.scanner.Bytes(), &rep); err != nil {
		s.lastErr = fmt.Errorf("decode evaluator reply: %w", err)
		return math.Inf(-1)
	}
	if rep.Error != "" {
		s.lastErr = errors.New("evaluator: " + rep.Error)
		return math.Inf(-1)
	}
	return rep.LogP
}

// Err returns the first evaluation failure, if any.
func (s *Subprocess) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close terminates the evaluator: close stdin, SIGTERM, then kill after a
// grace period.
func (s *Subprocess) Close() error {
	s.mu.Lock()
	cmd := s.cmd
	s.cmd = nil
	s.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = s.stdin.Close()
	_ = cmd.Process.Signal(syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		_ = cmd.Process.Kill()
		<-done
	}
	log.Printf("adapter=subprocess event=stop pid=%d", cmd.Process.Pid)
	return s.Err()
}

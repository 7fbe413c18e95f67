package infer

import (
	"context"
	"math"
	"testing"
)

func TestNewKLqpRejectsModelsWithoutGradients(t *testing.T) {
	target := opaqueTarget{inner: newGaussTarget([]float64{0}, []float64{1})}
	if _, err := NewKLqp(Config{Model: target, Seed: 1}, 0); err == nil || !IsCapability(err) {
		t.Fatalf("expected capability error, got %v", err)
	}
}

func TestKLqpFitsGaussian(t *testing.T) {
	// For a normal target the mean-field optimum is the target itself.
	target := newGaussTarget([]float64{2, -0.5}, []float64{1, 1})
	alg, err := NewKLqp(Config{Model: target, Iterations: 5000, Seed: 13}, 0.1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s, err := alg.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Algorithm != "klqp" {
		t.Fatalf("algorithm: %q", s.Algorithm)
	}
	want := []float64{2, -0.5}
	for i := range want {
		if math.Abs(s.Mean[i]-want[i]) > 0.3 {
			t.Fatalf("variational mean[%d]: got %v want %v", i, s.Mean[i], want[i])
		}
		if s.Std[i] < 0.4 || s.Std[i] > 1.8 {
			t.Fatalf("variational std[%d] out of range: %v", i, s.Std[i])
		}
	}
	if s.ELBO == 0 {
		t.Fatalf("expected a nonzero ELBO estimate")
	}
}

func TestKLqpEmitsELBODraws(t *testing.T) {
	target := newGaussTarget([]float64{0}, []float64{1})
	alg, err := NewKLqp(Config{Model: target, Iterations: 50, Thin: 10, Seed: 4}, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	n := 0
	if _, err := alg.Run(context.Background(), func(d Draw) error {
		n++
		if d.Iter == 0 || len(d.Z) != 1 {
			t.Fatalf("unexpected draw: %+v", d)
		}
		return nil
	}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 thinned draws, got %d", n)
	}
}

func TestNewMAPRejectsModelsWithoutGradients(t *testing.T) {
	target := opaqueTarget{inner: newGaussTarget([]float64{0}, []float64{1})}
	if _, err := NewMAP(Config{Model: target, Seed: 1}, 0); err == nil || !IsCapability(err) {
		t.Fatalf("expected capability error, got %v", err)
	}
}

func TestMAPFindsMode(t *testing.T) {
	target := newGaussTarget([]float64{2.5}, []float64{1})
	alg, err := NewMAP(Config{Model: target, Iterations: 2000, Seed: 1}, 0.2)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s, err := alg.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if math.Abs(s.Mean[0]-2.5) > 0.05 {
		t.Fatalf("mode: got %v want 2.5", s.Mean[0])
	}
	// gaussTarget's unnormalized density peaks at 0 for unit stddev.
	if s.LogProb < -0.01 || s.LogProb > 0 {
		t.Fatalf("final log density should be near the mode value: %v", s.LogProb)
	}
}

package infer

import (
	"context"
	"math"
	"testing"
)

func TestNewHMCRejectsModelsWithoutGradients(t *testing.T) {
	target := opaqueTarget{inner: newGaussTarget([]float64{0}, []float64{1})}
	_, err := NewHMC(Config{Model: target, Seed: 1}, 0, 0)
	if err == nil || !IsCapability(err) {
		t.Fatalf("expected capability error, got %v", err)
	}
	if he, ok := err.(interface{ StatusCode() int }); !ok || he.StatusCode() != 422 {
		t.Fatalf("capability error should map to 422")
	}
}

func TestHMCRecoversGaussianMoments(t *testing.T) {
	target := newGaussTarget([]float64{2, -1}, []float64{1.5, 0.5})
	alg, err := NewHMC(Config{Model: target, Iterations: 4000, BurnIn: 500, Seed: 7}, 0.25, 4)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s, err := alg.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Algorithm != "hmc" || s.Draws != 3500 {
		t.Fatalf("unexpected summary header: %+v", s)
	}
	if s.AcceptRate < 0.5 || s.AcceptRate > 1 {
		t.Fatalf("acceptance rate out of range: %v", s.AcceptRate)
	}
	wantMean := []float64{2, -1}
	wantStd := []float64{1.5, 0.5}
	for i := range wantMean {
		if math.Abs(s.Mean[i]-wantMean[i]) > 0.2 {
			t.Fatalf("mean[%d]: got %v want %v", i, s.Mean[i], wantMean[i])
		}
		if math.Abs(s.Std[i]-wantStd[i]) > 0.2 {
			t.Fatalf("std[%d]: got %v want %v", i, s.Std[i], wantStd[i])
		}
		if !(s.Q05[i] < s.Q50[i] && s.Q50[i] < s.Q95[i]) {
			t.Fatalf("quantiles not ordered at %d: %v %v %v", i, s.Q05[i], s.Q50[i], s.Q95[i])
		}
	}
}

func TestHMCDeterministicForSeed(t *testing.T) {
	target := newGaussTarget([]float64{0}, []float64{1})
	run := func() Summary {
		alg, err := NewHMC(Config{Model: target, Iterations: 200, Seed: 42}, 0.3, 3)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		s, err := alg.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return s
	}
	a, b := run(), run()
	if a.Mean[0] != b.Mean[0] || a.AcceptRate != b.AcceptRate {
		t.Fatalf("same seed produced different runs: %+v vs %+v", a, b)
	}
}

func TestHMCSmallStepAcceptsNearlyAlways(t *testing.T) {
	// With a tiny step the integrator error vanishes and the MH correction
	// should accept almost everything.
	target := newGaussTarget([]float64{0}, []float64{1})
	alg, err := NewHMC(Config{Model: target, Iterations: 500, Seed: 3}, 0.01, 2)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s, err := alg.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.AcceptRate < 0.99 {
		t.Fatalf("expected near-total acceptance, got %v", s.AcceptRate)
	}
}

func TestHMCBadInit(t *testing.T) {
	alg, err := NewHMC(Config{Model: gradlessWrap{nowhereTarget{}}, Seed: 1}, 0, 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := alg.Run(context.Background(), nil); err == nil || !IsBadInit(err) {
		t.Fatalf("expected bad init error, got %v", err)
	}
}

// gradlessWrap gives nowhereTarget a trivial gradient so HMC construction
// succeeds and the failure surfaces at run time.
type gradlessWrap struct{ nowhereTarget }

func (gradlessWrap) GradLogProb(z, grad []float64) float64 {
	for i := range grad {
		grad[i] = 0
	}
	return math.Inf(-1)
}

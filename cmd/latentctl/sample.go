package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"latentd/internal/infer"
	"latentd/internal/model"
)

// fnSample runs inference locally against a spec file and writes NDJSON to out.
func fnSample(specPath string, f runFlags, out io.Writer) error {
	mdl, err := model.BuildFromFile(specPath)
	if err != nil {
		return err
	}
	if c, ok := mdl.(io.Closer); ok {
		defer c.Close()
	}

	cfg := infer.Config{
		Model:      mdl,
		Iterations: f.Iterations,
		BurnIn:     f.BurnIn,
		Thin:       f.Thin,
		Seed:       f.Seed,
	}
	var alg infer.Algorithm
	switch f.Algorithm {
	case "hmc":
		alg, err = infer.NewHMC(cfg, f.StepSize, f.LeapfrogSteps)
	case "randomwalk":
		alg, err = infer.NewRandomWalk(cfg, f.StepSize)
	case "klqp":
		alg, err = infer.NewKLqp(cfg, f.StepSize)
	case "map":
		alg, err = infer.NewMAP(cfg, f.StepSize)
	default:
		return fmt.Errorf("unknown algorithm: %s", f.Algorithm)
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enc := json.NewEncoder(out)
	onDraw := func(d infer.Draw) error {
		if !f.Stream {
			return nil
		}
		return enc.Encode(d)
	}
	summary, err := alg.Run(ctx, onDraw)
	if err != nil {
		return err
	}
	return enc.Encode(summary)
}

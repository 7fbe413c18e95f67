package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "latentctl:", err)
		os.Exit(1)
	}
}

// buildRootCmd constructs the Cobra command tree.
func buildRootCmd() *cobra.Command {
	cfg := &clientConfig{Server: envOr("LATENTD_SERVER", "http://127.0.0.1:8080")}

	root := &cobra.Command{
		Use:           "latentctl",
		Short:         "Client and local utilities for latentd",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.Server, "server", cfg.Server, "latentd base URL (defaults LATENTD_SERVER)")

	modelsCmd := &cobra.Command{
		Use:     "models",
		Short:   "List models registered on the server",
		Example: "  latentctl models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnListModels(cfg, cmd.OutOrStdout())
		},
	}

	statusCmd := &cobra.Command{
		Use:     "status",
		Short:   "Show server status (instances, budget, totals)",
		Example: "  latentctl status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnStatus(cfg, cmd.OutOrStdout())
		},
	}

	var runReq runFlags
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Submit an inference run and stream NDJSON to stdout",
		Example: "  latentctl run --model eight-schools --algorithm hmc --iterations 2000 --stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnRun(cfg, runReq, cmd.OutOrStdout())
		},
	}
	runCmd.Flags().StringVar(&runReq.Model, "model", "", "Model id (server default when empty)")
	runCmd.Flags().StringVar(&runReq.Algorithm, "algorithm", "hmc", "Algorithm: hmc, randomwalk, klqp, map")
	runCmd.Flags().IntVar(&runReq.Iterations, "iterations", 0, "Total iterations (0 uses the server default)")
	runCmd.Flags().IntVar(&runReq.BurnIn, "burn-in", 0, "Burn-in iterations")
	runCmd.Flags().IntVar(&runReq.Thin, "thin", 0, "Keep every thin-th draw")
	runCmd.Flags().Float64Var(&runReq.StepSize, "step-size", 0, "Step size (0 uses the algorithm default)")
	runCmd.Flags().IntVar(&runReq.LeapfrogSteps, "leapfrog-steps", 0, "Leapfrog steps per HMC transition")
	runCmd.Flags().Int64Var(&runReq.Seed, "seed", 0, "Random seed (0 lets the server choose)")
	runCmd.Flags().BoolVar(&runReq.Stream, "stream", false, "Stream every recorded draw")

	var sampleReq runFlags
	sampleCmd := &cobra.Command{
		Use:     "sample <spec.toml>",
		Short:   "Run inference locally from a model spec file, no server needed",
		Example: "  latentctl sample ./models/funnel.toml --algorithm hmc --iterations 1000",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnSample(args[0], sampleReq, cmd.OutOrStdout())
		},
	}
	sampleCmd.Flags().StringVar(&sampleReq.Algorithm, "algorithm", "hmc", "Algorithm: hmc, randomwalk, klqp, map")
	sampleCmd.Flags().IntVar(&sampleReq.Iterations, "iterations", 0, "Total iterations (0 uses the default)")
	sampleCmd.Flags().IntVar(&sampleReq.BurnIn, "burn-in", 0, "Burn-in iterations")
	sampleCmd.Flags().IntVar(&sampleReq.Thin, "thin", 0, "Keep every thin-th draw")
	sampleCmd.Flags().Float64Var(&sampleReq.StepSize, "step-size", 0, "Step size (0 uses the algorithm default)")
	sampleCmd.Flags().IntVar(&sampleReq.LeapfrogSteps, "leapfrog-steps", 0, "Leapfrog steps per HMC transition")
	sampleCmd.Flags().Int64Var(&sampleReq.Seed, "seed", 0, "Random seed (0 picks one)")
	sampleCmd.Flags().BoolVar(&sampleReq.Stream, "stream", true, "Stream every recorded draw")

	root.AddCommand(modelsCmd, statusCmd, runCmd, sampleCmd)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

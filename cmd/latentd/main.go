package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"latentd/internal/config"
	"latentd/internal/httpapi"
	"latentd/internal/manager"
	"latentd/internal/registry"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("LATENTD_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	modelsDir := flag.String("models-dir", envOr("LATENTD_MODELS_DIR", "~/models/latent"), "Directory to scan for *.toml model specs")
	memBudgetMB := flag.Int("mem-budget-mb", 0, "Memory budget in MB for all instances (0=unlimited)")
	memMarginMB := flag.Int("mem-margin-mb", 0, "Reserved memory margin in MB to keep free")
	defaultModel := flag.String("default-model", envOr("LATENTD_DEFAULT_MODEL", ""), "Default model id when request omits model")
	defaultAlgorithm := flag.String("default-algorithm", "", "Default algorithm when request omits it (hmc, randomwalk, klqp, map)")
	configPath := flag.String("config", envOr("LATENTD_CONFIG", ""), "Optional config file (.toml/.yaml/.json); flags override")
	logLevel := flag.String("log-level", envOr("LATENTD_LOG_LEVEL", "info"), "Log level: debug, info, error, off")
	corsEnabled := flag.Bool("cors-enabled", false, "Enable CORS middleware")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	switch *logLevel {
	case "debug":
		logger = logger.Level(zerolog.DebugLevel)
	case "error":
		logger = logger.Level(zerolog.ErrorLevel)
	case "off":
		logger = logger.Level(zerolog.Disabled)
	default:
		logger = logger.Level(zerolog.InfoLevel)
	}

	// Config file fills in anything the flags left at their zero value.
	if *configPath != "" {
		fileCfg, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("load config")
		}
		if *addr == ":8080" && fileCfg.Addr != "" {
			*addr = fileCfg.Addr
		}
		if fileCfg.ModelsDir != "" && *modelsDir == "~/models/latent" {
			*modelsDir = fileCfg.ModelsDir
		}
		if *memBudgetMB == 0 {
			*memBudgetMB = fileCfg.MemBudgetMB
		}
		if *memMarginMB == 0 {
			*memMarginMB = fileCfg.MemMarginMB
		}
		if *defaultModel == "" {
			*defaultModel = fileCfg.DefaultModel
		}
		if *defaultAlgorithm == "" {
			*defaultAlgorithm = fileCfg.DefaultAlgorithm
		}
		if !*corsEnabled {
			*corsEnabled = fileCfg.CORSEnabled
		}
		if *corsOrigins == "" && len(fileCfg.CORSOrigins) > 0 {
			*corsOrigins = strings.Join(fileCfg.CORSOrigins, ",")
		}
	}

	reg, err := registry.LoadDir(*modelsDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", *modelsDir).Msg("load models")
	}
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Registry:         reg,
		BudgetMB:         *memBudgetMB,
		MarginMB:         *memMarginMB,
		DefaultModel:     *defaultModel,
		DefaultAlgorithm: *defaultAlgorithm,
	})
	if report := mgr.SanityCheck(); len(report.Missing) > 0 {
		logger.Warn().Strs("models", report.Missing).Str("error", report.Error).Msg("external evaluators unavailable")
	}

	httpapi.SetLogger(logger)
	if *corsEnabled {
		var origins []string
		for _, o := range strings.Split(*corsOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		httpapi.SetCORSOptions(true, origins, nil, nil)
	}

	// Base context canceled on shutdown so in-flight runs stop promptly.
	baseCtx, baseCancel := context.WithCancel(context.Background())
	defer baseCancel()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(mgr)
	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", *addr).Str("models_dir", *modelsDir).Int("models", len(reg)).Msg("latentd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	baseCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}

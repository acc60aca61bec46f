package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/collisions/internal/batch"
	"github.com/tomz197/collisions/internal/config"
	"github.com/tomz197/collisions/internal/log"
	"github.com/tomz197/collisions/internal/world"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so the deferred log sync happens before exit.
func run() int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	logger, err := log.New(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pin the seed so the report can be reproduced.
	cfg.Seed = world.ResolveSeed(cfg.Seed)
	logger.Info("batch started",
		zap.Uint64("seed", cfg.Seed),
		zap.Int("runs", cfg.Batch.Runs),
		zap.Int("ticks", cfg.Batch.Ticks),
		zap.Int("particles", cfg.Particles.Count),
	)

	start := time.Now()
	reports, err := batch.Run(ctx, cfg, logger)
	if err != nil {
		logger.Error("batch failed", zap.Error(err))
		return 1
	}

	summary := batch.Summarize(reports)
	logger.Info("batch finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Uint64("collisions", summary.Collisions),
		zap.Uint64("degenerate", summary.Degenerate),
		zap.Float64("max_energy_drift", summary.MaxEnergyDrift),
	)

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(batch.Result{Summary: summary, Runs: reports}); err != nil {
		logger.Error("write report", zap.Error(err))
		return 1
	}
	if err := enc.Close(); err != nil {
		logger.Error("write report", zap.Error(err))
		return 1
	}
	return 0
}

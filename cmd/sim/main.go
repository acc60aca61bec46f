package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/collisions/internal/config"
	"github.com/tomz197/collisions/internal/log"
	"github.com/tomz197/collisions/internal/loop"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred cleanup (terminal restore, log
// sync) happens before the process exits.
func run() int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	// stderr shares the screen, so logs only go to SIM_LOG_PATH
	logger, err := log.ForTerminal(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Error("enable raw mode", zap.Error(err))
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		return 1
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(ctx, reader, os.Stdout, loop.Options{
		Config: cfg,
		Logger: logger,
	}); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "simulation error: %v\n", err)
		return 1
	}
	return 0
}

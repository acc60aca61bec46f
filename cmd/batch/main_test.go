package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/collisions/internal/config"
)

func setupEnv(t *testing.T, particles string) string {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "sim.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("seed: 3\nbatch:\n  runs: 2\n  ticks: 20\n"), 0o600))

	logPath := filepath.Join(dir, "batch.log")
	t.Setenv(config.EnvConfigPath, cfgPath)
	t.Setenv(config.EnvParticles, particles)
	t.Setenv(config.EnvLogPath, logPath)
	return logPath
}

func TestRunSucceeds(t *testing.T) {
	logPath := setupEnv(t, "4")

	assert.Equal(t, 0, run())

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), `"msg":"batch finished"`)
}

func TestRunFailureKeepsErrorLog(t *testing.T) {
	logPath := setupEnv(t, "5000")

	assert.Equal(t, 1, run())

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), `"msg":"batch failed"`)
}

func TestRunBadConfig(t *testing.T) {
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, run())
}

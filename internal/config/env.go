// Package config provides simulation parameters, their defaults, and loading
// from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by FromEnv.
const (
	EnvConfigPath = "SIM_CONFIG"
	EnvParticles  = "SIM_PARTICLES"
	EnvSeed       = "SIM_SEED"
	EnvLogLevel   = "SIM_LOG_LEVEL"
	EnvLogPath    = "SIM_LOG_PATH"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt parses the environment variable named by the key as an integer,
// returning fallback if it is not set.
func GetEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// GetEnvUint64 parses the environment variable named by the key as an
// unsigned integer, returning fallback if it is not set.
func GetEnvUint64(key string, fallback uint64) (uint64, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// FromEnv loads the file named by SIM_CONFIG (defaults if unset) and applies
// the remaining SIM_* overrides. The result is validated.
func FromEnv() (Config, error) {
	cfg := Default()
	if path := GetEnv(EnvConfigPath, ""); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	count, err := GetEnvInt(EnvParticles, cfg.Particles.Count)
	if err != nil {
		return Config{}, err
	}
	cfg.Particles.Count = count

	seed, err := GetEnvUint64(EnvSeed, cfg.Seed)
	if err != nil {
		return Config{}, err
	}
	cfg.Seed = seed

	cfg.Log.Level = GetEnv(EnvLogLevel, cfg.Log.Level)
	cfg.Log.Path = GetEnv(EnvLogPath, cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

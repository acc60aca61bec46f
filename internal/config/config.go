package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/collisions/internal/physics"
)

// Simulation defaults, taken from the classic 700x700 window setup.
const (
	DefaultTickRate       = 60  // Hz
	DefaultPixelsPerMeter = 100 // 0.01 m per pixel
	DefaultViewWidth      = 700 // Logical view width (pixels)
	DefaultViewHeight     = 700 // Logical view height (pixels)
	DefaultParticles      = 20
)

// Placement defaults for generated particles.
const (
	DefaultRadiusMin       = 8
	DefaultRadiusMax       = 14
	DefaultMassMin         = 1
	DefaultMassMax         = 10
	DefaultSpeedFactorMax  = 2  // Each velocity component is randint(1, max) * rand()
	DefaultPlacementMargin = 5  // Inset from the boundary edges
	DefaultSpacingBuffer   = 10 // Extra gap required between placed particles
	DefaultPlacementTries  = 1000
)

// Batch defaults.
const (
	DefaultBatchRuns  = 8
	DefaultBatchTicks = 3600
)

// ErrInvalidConfig is returned by Validate for values that are not geometry.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable simulation parameter.
type Config struct {
	TickRate       int            `yaml:"tick_rate"`
	PixelsPerMeter float64        `yaml:"pixels_per_meter"`
	CooldownTicks  int            `yaml:"cooldown_ticks"` // At least 1
	Seed           uint64         `yaml:"seed"` // 0 picks a time-based seed
	View           ViewConfig     `yaml:"view"`
	Boundary       BoundaryConfig `yaml:"boundary"`
	Particles      ParticleConfig `yaml:"particles"`
	Batch          BatchConfig    `yaml:"batch"`
	Log            LogConfig      `yaml:"log"`
}

// ViewConfig is the logical drawing area mapped onto the terminal.
type ViewConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BoundaryConfig places the containing box inside the view.
type BoundaryConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"` // Hex, e.g. "#0000ff"
}

// ParticleConfig controls random population setup.
type ParticleConfig struct {
	Count           int     `yaml:"count"`
	RadiusMin       int     `yaml:"radius_min"`
	RadiusMax       int     `yaml:"radius_max"`
	MassMin         int     `yaml:"mass_min"`
	MassMax         int     `yaml:"mass_max"`
	SpeedFactorMax  int     `yaml:"speed_factor_max"`
	PlacementMargin float64 `yaml:"placement_margin"`
	SpacingBuffer   float64 `yaml:"spacing_buffer"`
	PlacementTries  int     `yaml:"placement_tries"`
}

// BatchConfig controls headless runs.
type BatchConfig struct {
	Runs  int `yaml:"runs"`
	Ticks int `yaml:"ticks"`
}

// LogConfig selects the log level and destination. An empty path means
// stderr for headless tools and no logging for the terminal simulator.
type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TickRate:       DefaultTickRate,
		PixelsPerMeter: DefaultPixelsPerMeter,
		CooldownTicks:  physics.DefaultCooldownTicks,
		View: ViewConfig{
			Width:  DefaultViewWidth,
			Height: DefaultViewHeight,
		},
		Boundary: BoundaryConfig{
			X:      50,
			Y:      50,
			Width:  600,
			Height: 600,
			Color:  "#0000ff",
		},
		Particles: ParticleConfig{
			Count:           DefaultParticles,
			RadiusMin:       DefaultRadiusMin,
			RadiusMax:       DefaultRadiusMax,
			MassMin:         DefaultMassMin,
			MassMax:         DefaultMassMax,
			SpeedFactorMax:  DefaultSpeedFactorMax,
			PlacementMargin: DefaultPlacementMargin,
			SpacingBuffer:   DefaultSpacingBuffer,
			PlacementTries:  DefaultPlacementTries,
		},
		Batch: BatchConfig{
			Runs:  DefaultBatchRuns,
			Ticks: DefaultBatchTicks,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field. Geometry errors match physics.ErrInvalidGeometry.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate %d", ErrInvalidConfig, c.TickRate)
	}
	if c.PixelsPerMeter <= 0 {
		return fmt.Errorf("%w: pixels_per_meter %v", physics.ErrInvalidGeometry, c.PixelsPerMeter)
	}
	if c.CooldownTicks < 1 {
		return fmt.Errorf("%w: cooldown_ticks %d", ErrInvalidConfig, c.CooldownTicks)
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return fmt.Errorf("%w: view %vx%v", physics.ErrInvalidGeometry, c.View.Width, c.View.Height)
	}
	if _, err := physics.NewBoundary(c.Boundary.X, c.Boundary.Y, c.Boundary.Width, c.Boundary.Height); err != nil {
		return err
	}
	if _, err := colorful.Hex(c.Boundary.Color); err != nil {
		return fmt.Errorf("%w: boundary color %q", ErrInvalidConfig, c.Boundary.Color)
	}

	p := c.Particles
	if p.Count < 0 {
		return fmt.Errorf("%w: particle count %d", ErrInvalidConfig, p.Count)
	}
	if p.RadiusMin <= 0 || p.RadiusMax < p.RadiusMin {
		return fmt.Errorf("%w: radius range [%d, %d]", physics.ErrInvalidGeometry, p.RadiusMin, p.RadiusMax)
	}
	if p.MassMin <= 0 || p.MassMax < p.MassMin {
		return fmt.Errorf("%w: mass range [%d, %d]", physics.ErrInvalidGeometry, p.MassMin, p.MassMax)
	}
	if p.SpeedFactorMax < 1 {
		return fmt.Errorf("%w: speed_factor_max %d", ErrInvalidConfig, p.SpeedFactorMax)
	}
	if p.PlacementMargin < 0 || p.SpacingBuffer < 0 {
		return fmt.Errorf("%w: placement margin %v buffer %v", ErrInvalidConfig, p.PlacementMargin, p.SpacingBuffer)
	}
	if p.PlacementTries <= 0 {
		return fmt.Errorf("%w: placement_tries %d", ErrInvalidConfig, p.PlacementTries)
	}
	inner := 2 * (p.PlacementMargin + float64(p.RadiusMax))
	if inner >= c.Boundary.Width || inner >= c.Boundary.Height {
		return fmt.Errorf("%w: boundary too small for radius %d with margin %v",
			physics.ErrInvalidGeometry, p.RadiusMax, p.PlacementMargin)
	}

	if c.Batch.Runs < 0 || c.Batch.Ticks < 0 {
		return fmt.Errorf("%w: batch runs %d ticks %d", ErrInvalidConfig, c.Batch.Runs, c.Batch.Ticks)
	}
	return nil
}

// TickDuration returns the wall-clock frame length used for pacing.
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Step returns the physics time step for one tick.
func (c Config) Step() physics.Step {
	return physics.Step{Seconds: 1 / float64(c.TickRate), PixelsPerMeter: c.PixelsPerMeter}
}

// BoundaryColor returns the parsed boundary colour.
// Validate guarantees the hex string parses.
func (c Config) BoundaryColor() color.RGBA {
	col, err := colorful.Hex(c.Boundary.Color)
	if err != nil {
		return color.RGBA{B: 255, A: 255}
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Package batch runs independent headless simulations concurrently and
// reports how well each one conserved energy.
package batch

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/collisions/internal/config"
	"github.com/tomz197/collisions/internal/world"
)

// ctxCheckInterval is how many ticks a run advances between context checks.
const ctxCheckInterval = 256

// Report describes one finished run.
type Report struct {
	Seed          uint64  `yaml:"seed"`
	Ticks         int     `yaml:"ticks"`
	Particles     int     `yaml:"particles"`
	Collisions    uint64  `yaml:"collisions"`
	Degenerate    uint64  `yaml:"degenerate"`
	InitialEnergy float64 `yaml:"initial_energy"`
	FinalEnergy   float64 `yaml:"final_energy"`
	EnergyDrift   float64 `yaml:"energy_drift"`   // |final - initial| / initial
	MomentumDrift float64 `yaml:"momentum_drift"` // |p_final - p_initial|; walls change momentum
	Escaped       int     `yaml:"escaped"`        // Centres outside the boundary at the end
}

// Summary aggregates a set of reports.
type Summary struct {
	Runs           int     `yaml:"runs"`
	Collisions     uint64  `yaml:"collisions"`
	Degenerate     uint64  `yaml:"degenerate"`
	MaxEnergyDrift float64 `yaml:"max_energy_drift"`
}

// Result is the document written by cmd/batch.
type Result struct {
	Summary Summary  `yaml:"summary"`
	Runs    []Report `yaml:"runs"`
}

// Run simulates cfg.Batch.Runs worlds seeded seed, seed+1, ... for
// cfg.Batch.Ticks ticks each. Reports are returned in seed order. The first
// failing run cancels the others.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) ([]Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := world.ResolveSeed(cfg.Seed)
	reports := make([]Report, cfg.Batch.Runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range reports {
		seed := base + uint64(i)
		g.Go(func() error {
			report, err := runOne(ctx, cfg, seed)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i, seed, err)
			}
			reports[i] = report
			logger.Debug("run finished",
				zap.Uint64("seed", seed),
				zap.Uint64("collisions", report.Collisions),
				zap.Float64("energy_drift", report.EnergyDrift),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// runOne drives a single world. Each world stays on one goroutine.
func runOne(ctx context.Context, cfg config.Config, seed uint64) (Report, error) {
	w, err := world.New(cfg, seed)
	if err != nil {
		return Report{}, err
	}

	start := w.Stats()
	for tick := 0; tick < cfg.Batch.Ticks; tick++ {
		if tick%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
		}
		w.Advance()
	}
	end := w.Stats()

	drift := 0.0
	if start.Energy > 0 {
		drift = math.Abs(end.Energy-start.Energy) / start.Energy
	}

	return Report{
		Seed:          seed,
		Ticks:         cfg.Batch.Ticks,
		Particles:     end.Particles,
		Collisions:    end.Collisions,
		Degenerate:    end.Degenerate,
		InitialEnergy: start.Energy,
		FinalEnergy:   end.Energy,
		EnergyDrift:   drift,
		MomentumDrift: end.Momentum.Sub(start.Momentum).Magnitude(),
		Escaped:       end.Escaped,
	}, nil
}

// Summarize totals the reports.
func Summarize(reports []Report) Summary {
	s := Summary{Runs: len(reports)}
	for _, r := range reports {
		s.Collisions += r.Collisions
		s.Degenerate += r.Degenerate
		s.MaxEnergyDrift = max(s.MaxEnergyDrift, r.EnergyDrift)
	}
	return s
}

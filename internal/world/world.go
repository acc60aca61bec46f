// Package world holds the simulation context: the boundary, the particle
// population and the tick counters the render shell and batch runner read.
package world

import (
	"time"

	"github.com/tomz197/collisions/internal/config"
	"github.com/tomz197/collisions/internal/physics"
	"github.com/tomz197/collisions/internal/vector"
)

// World is one running simulation. It is not safe for concurrent use;
// each goroutine drives its own World.
type World struct {
	Boundary  physics.Boundary
	Particles []*physics.Particle

	seed       uint64
	dtScaled   float64
	tick       uint64
	collisions uint64
	degenerate uint64
}

// Stats is a snapshot of the conserved quantities and counters.
type Stats struct {
	Tick       uint64
	Particles  int
	Collisions uint64        // Resolved particle-particle contacts so far
	Degenerate uint64        // Contacts skipped because centres coincided
	Momentum   vector.Vector // Total mass * velocity
	Energy     float64       // Total kinetic energy
	Escaped    int           // Particles whose centre is outside the boundary
}

// ResolveSeed returns seed, or a time-based seed when seed is zero.
func ResolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// New builds the boundary from cfg and places cfg.Particles.Count particles
// using a generator seeded with seed.
func New(cfg config.Config, seed uint64) (*World, error) {
	b, err := physics.NewBoundary(cfg.Boundary.X, cfg.Boundary.Y, cfg.Boundary.Width, cfg.Boundary.Height)
	if err != nil {
		return nil, err
	}

	particles, err := Populate(b, cfg.Particles, cfg.CooldownTicks, NewRand(seed))
	if err != nil {
		return nil, err
	}

	return NewWithParticles(b, particles, cfg.Step(), seed), nil
}

// NewWithParticles wraps an existing population. The caller guarantees the
// particles do not overlap.
func NewWithParticles(b physics.Boundary, particles []*physics.Particle, step physics.Step, seed uint64) *World {
	return &World{
		Boundary:  b,
		Particles: particles,
		seed:      seed,
		dtScaled:  step.Scaled(),
	}
}

// Seed returns the seed the population was generated from.
func (w *World) Seed() uint64 {
	return w.seed
}

// Tick returns the number of ticks advanced so far.
func (w *World) Tick() uint64 {
	return w.tick
}

// Advance runs one tick and returns the pairwise pass counts.
func (w *World) Advance() physics.PairStats {
	pairs := physics.Advance(w.Particles, w.Boundary, w.dtScaled)

	w.collisions += uint64(pairs.Resolved)
	w.degenerate += uint64(pairs.Degenerate)
	w.tick++
	return pairs
}

// Stats computes the current totals.
func (w *World) Stats() Stats {
	momentum := vector.Zero(physics.Dimensions)
	var energy float64
	escaped := 0
	for _, p := range w.Particles {
		momentum = momentum.Add(p.Momentum())
		energy += p.KineticEnergy()
		if !w.Boundary.Contains(p.Position()) {
			escaped++
		}
	}
	return Stats{
		Tick:       w.tick,
		Particles:  len(w.Particles),
		Collisions: w.collisions,
		Degenerate: w.degenerate,
		Momentum:   momentum,
		Energy:     energy,
		Escaped:    escaped,
	}
}

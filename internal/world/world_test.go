package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/collisions/internal/config"
	"github.com/tomz197/collisions/internal/physics"
	"github.com/tomz197/collisions/internal/vector"
)

func TestNewPlacesWithoutOverlap(t *testing.T) {
	cfg := config.Default()
	w, err := New(cfg, 1)
	require.NoError(t, err)
	require.Len(t, w.Particles, cfg.Particles.Count)

	pc := cfg.Particles
	for i, p := range w.Particles {
		assert.True(t, w.Boundary.FitsDisk(p.Position(), p.Radius()+pc.PlacementMargin), "particle %d at %v", i, p.Position())
		assert.GreaterOrEqual(t, p.Radius(), float64(pc.RadiusMin))
		assert.LessOrEqual(t, p.Radius(), float64(pc.RadiusMax))
		assert.GreaterOrEqual(t, p.Mass(), float64(pc.MassMin))
		assert.LessOrEqual(t, p.Mass(), float64(pc.MassMax))
		assert.Equal(t, uint8(255), p.Color().A)

		v := p.Velocity()
		assert.GreaterOrEqual(t, v.X(), 0.0)
		assert.Less(t, v.X(), float64(pc.SpeedFactorMax))
		assert.GreaterOrEqual(t, v.Y(), 0.0)
		assert.Less(t, v.Y(), float64(pc.SpeedFactorMax))

		for j := i + 1; j < len(w.Particles); j++ {
			q := w.Particles[j]
			assert.Greater(t, p.DistanceTo(q), p.Radius()+q.Radius()+pc.SpacingBuffer, "particles %d and %d", i, j)
		}
	}
}

func TestNewIsDeterministic(t *testing.T) {
	cfg := config.Default()
	a, err := New(cfg, 7)
	require.NoError(t, err)
	b, err := New(cfg, 7)
	require.NoError(t, err)

	require.Len(t, b.Particles, len(a.Particles))
	for i := range a.Particles {
		assert.Equal(t, a.Particles[i].Position(), b.Particles[i].Position())
		assert.Equal(t, a.Particles[i].Velocity(), b.Particles[i].Velocity())
		assert.Equal(t, a.Particles[i].Color(), b.Particles[i].Color())
	}

	c, err := New(cfg, 8)
	require.NoError(t, err)
	assert.NotEqual(t, a.Particles[0].Position(), c.Particles[0].Position())
}

func TestPopulateFailsWhenCrowded(t *testing.T) {
	b, err := physics.NewBoundary(0, 0, 60, 60)
	require.NoError(t, err)

	pc := config.Default().Particles
	pc.Count = 50
	pc.PlacementTries = 50

	_, err = Populate(b, pc, physics.DefaultCooldownTicks, NewRand(3))
	assert.ErrorIs(t, err, ErrPlacement)
}

func TestPopulateZeroParticles(t *testing.T) {
	b, err := physics.NewBoundary(0, 0, 100, 100)
	require.NoError(t, err)
	pc := config.Default().Particles
	pc.Count = 0

	particles, err := Populate(b, pc, 5, NewRand(1))
	require.NoError(t, err)
	assert.Empty(t, particles)
}

func TestAdvanceCountsTicksAndCollisions(t *testing.T) {
	b, err := physics.NewBoundary(0, 0, 1000, 1000)
	require.NoError(t, err)

	p1, err := physics.NewParticle(physics.ParticleOptions{
		Position: vector.New(500, 500), Velocity: vector.New(1, 0), Mass: 1, Radius: 5,
	})
	require.NoError(t, err)
	p2, err := physics.NewParticle(physics.ParticleOptions{
		Position: vector.New(512, 500), Velocity: vector.New(-1, 0), Mass: 1, Radius: 5,
	})
	require.NoError(t, err)

	w := NewWithParticles(b, []*physics.Particle{p1, p2}, physics.Step{Seconds: 1, PixelsPerMeter: 1}, 11)
	assert.Equal(t, uint64(11), w.Seed())

	stats := w.Stats()
	assert.Equal(t, vector.Vector{0, 0}, stats.Momentum)
	assert.Equal(t, 1.0, stats.Energy)

	// One tick closes the 2 pixel gap and the pair collides
	pairs := w.Advance()
	assert.Equal(t, 1, pairs.Resolved)
	assert.Equal(t, uint64(1), w.Tick())

	stats = w.Stats()
	assert.Equal(t, uint64(1), stats.Collisions)
	assert.Equal(t, 2, stats.Particles)
	assert.Zero(t, stats.Escaped)
	assert.InDelta(t, 1.0, stats.Energy, 1e-12)
	assert.True(t, vector.ApproxEqual(vector.New(-1, 0), p1.Velocity(), 1e-12))
}

func TestLongRunConservesEnergyAndStaysContained(t *testing.T) {
	cfg := config.Default()
	w, err := New(cfg, 2024)
	require.NoError(t, err)

	initial := w.Stats().Energy
	outside := make([]int, len(w.Particles))
	maxOutside := 0

	for i := 0; i < 5000; i++ {
		w.Advance()
		for j, p := range w.Particles {
			if w.Boundary.Contains(p.Position()) {
				outside[j] = 0
				continue
			}
			outside[j]++
			maxOutside = max(maxOutside, outside[j])
		}
	}

	stats := w.Stats()
	assert.Equal(t, uint64(5000), stats.Tick)
	assert.Positive(t, stats.Collisions)
	// Wall reflections negate components and pair collisions are elastic
	assert.InDelta(t, 0, math.Abs(stats.Energy-initial)/initial, 1e-9)
	assert.LessOrEqual(t, maxOutside, 3*cfg.CooldownTicks)
}

func TestResolveSeed(t *testing.T) {
	assert.Equal(t, uint64(42), ResolveSeed(42))
	assert.NotZero(t, ResolveSeed(0))
}

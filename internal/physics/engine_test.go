package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/collisions/internal/vector"
)

func TestStepBoundariesIntegratesThenResolves(t *testing.T) {
	b := newTestBoundary(t)
	moving := newTestParticle(t, 300, 300, 1, 2, 1, 10)
	// Crosses the left edge during integration, then gets reflected
	leaving := newTestParticle(t, 52, 300, -6, 0, 1, 10)

	StepBoundaries([]*Particle{moving, leaving}, b, 1)

	assert.Equal(t, vector.Vector{301, 302}, moving.Position())
	assert.Equal(t, vector.Vector{2*(50+10) - 46, 300}, leaving.Position())
	assert.Equal(t, vector.Vector{6, 0}, leaving.Velocity())
}

func TestStepPairsHeadOn(t *testing.T) {
	a := newTestParticle(t, 100, 100, 1, 0, 1, 5)
	b := newTestParticle(t, 110, 100, -1, 0, 1, 5)

	stats := StepPairs([]*Particle{a, b})

	assert.Equal(t, PairStats{Resolved: 1}, stats)
	assert.True(t, vector.ApproxEqual(vector.New(-1, 0), a.Velocity(), eps))
	assert.True(t, vector.ApproxEqual(vector.New(1, 0), b.Velocity(), eps))
}

func TestStepPairsNonContactIsIdempotent(t *testing.T) {
	particles := []*Particle{
		newTestParticle(t, 100, 100, 1, 0, 1, 5),
		newTestParticle(t, 110.001, 100, -1, 0, 2, 5),
		newTestParticle(t, 300, 300, 0.5, 0.5, 3, 10),
	}
	before := make([]vector.Vector, len(particles))
	for i, p := range particles {
		before[i] = p.Velocity()
	}

	stats := StepPairs(particles)

	assert.Equal(t, PairStats{}, stats)
	for i, p := range particles {
		assert.Equal(t, before[i], p.Velocity())
		assert.False(t, p.Collided())
	}
}

func TestStepPairsCooldown(t *testing.T) {
	b := newTestBoundary(t)
	a := newTestParticle(t, 300, 300, 1, 0, 1, 10)
	c := newTestParticle(t, 310, 300, -1, 0, 3, 10)
	particles := []*Particle{a, c}

	// dt of zero keeps the pair overlapping for the whole test
	require.Equal(t, 1, StepPairs(particles).Resolved)
	afterFirst := []vector.Vector{a.Velocity(), c.Velocity()}

	for tick := 1; tick < DefaultCooldownTicks; tick++ {
		StepBoundaries(particles, b, 0)
		stats := StepPairs(particles)
		assert.Zero(t, stats.Resolved, "tick %d", tick)
		assert.Equal(t, afterFirst[0], a.Velocity(), "tick %d", tick)
		assert.Equal(t, afterFirst[1], c.Velocity(), "tick %d", tick)
	}

	StepBoundaries(particles, b, 0)
	assert.False(t, a.Collided())
	assert.False(t, c.Collided())
	assert.Equal(t, 1, StepPairs(particles).Resolved)
}

func TestStepPairsSequentialContacts(t *testing.T) {
	// p0 touches both p1 and p2; once resolved against p1 it is in cooldown
	// and the p0/p2 contact is left for a later tick.
	p0 := newTestParticle(t, 100, 100, 0, 0, 1, 5)
	p1 := newTestParticle(t, 109, 100, -1, 0, 1, 5)
	p2 := newTestParticle(t, 91, 100, 1, 0, 1, 5)

	stats := StepPairs([]*Particle{p0, p1, p2})

	assert.Equal(t, 1, stats.Resolved)
	assert.True(t, vector.ApproxEqual(vector.New(1, 0), p2.Velocity(), eps))
	assert.False(t, p2.Collided())
}

func TestStepPairsLaterPairSeesUpdatedVelocity(t *testing.T) {
	// p0/p1 don't touch; p1 hits p2 first (index order 1,2 comes after 0,x),
	// so check that a particle resolved earlier keeps its velocity.
	p0 := newTestParticle(t, 0, 0, 0, 0, 1, 1)
	p1 := newTestParticle(t, 100, 0, 1, 0, 1, 1)
	p2 := newTestParticle(t, 102, 0, -1, 0, 1, 1)

	stats := StepPairs([]*Particle{p0, p1, p2})

	assert.Equal(t, 1, stats.Resolved)
	assert.True(t, vector.ApproxEqual(vector.New(-1, 0), p1.Velocity(), eps))
	assert.True(t, vector.ApproxEqual(vector.New(1, 0), p2.Velocity(), eps))
	assert.Equal(t, vector.Vector{0, 0}, p0.Velocity())
}

func TestStepPairsDegenerate(t *testing.T) {
	a := newTestParticle(t, 100, 100, 1, 0, 1, 5)
	c := newTestParticle(t, 100, 100, -1, 0, 1, 5)

	stats := StepPairs([]*Particle{a, c})

	assert.Equal(t, PairStats{Degenerate: 1}, stats)
	assert.Equal(t, vector.Vector{1, 0}, a.Velocity())
	assert.Equal(t, vector.Vector{-1, 0}, c.Velocity())
}

func TestAdvanceConservesMomentumWithoutWalls(t *testing.T) {
	// Large boundary so only particle-particle contacts happen
	b, err := NewBoundary(-1e6, -1e6, 2e6, 2e6)
	require.NoError(t, err)

	particles := []*Particle{
		newTestParticle(t, 0, 0, 1, 0.2, 2, 5),
		newTestParticle(t, 30, 1, -1, 0, 3, 5),
		newTestParticle(t, 60, -2, -0.5, 0.1, 1, 5),
	}
	total := func() vector.Vector {
		sum := vector.Zero(Dimensions)
		for _, p := range particles {
			sum = sum.Add(p.Momentum())
		}
		return sum
	}
	energy := func() float64 {
		var e float64
		for _, p := range particles {
			e += p.KineticEnergy()
		}
		return e
	}

	momentumBefore := total()
	energyBefore := energy()
	for i := 0; i < 200; i++ {
		Advance(particles, b, 1)
	}

	assert.True(t, vector.ApproxEqual(momentumBefore, total(), 1e-9))
	assert.InDelta(t, energyBefore, energy(), 1e-9)
}

func TestAdvanceReturnsPairStats(t *testing.T) {
	b := newTestBoundary(t)
	particles := []*Particle{
		newTestParticle(t, 300, 300, 1, 0, 1, 10),
		newTestParticle(t, 315, 300, -1, 0, 1, 10),
	}

	stats := Advance(particles, b, 1)
	assert.Equal(t, PairStats{Resolved: 1}, stats)
	assert.True(t, particles[0].Collided())

	stats = Advance(particles, b, 1)
	assert.Equal(t, PairStats{}, stats, "pair stays in cooldown")
}

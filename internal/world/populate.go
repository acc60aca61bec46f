package world

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/collisions/internal/config"
	"github.com/tomz197/collisions/internal/physics"
	"github.com/tomz197/collisions/internal/vector"
)

// ErrPlacement is returned when a particle cannot be placed without
// overlapping those already placed.
var ErrPlacement = errors.New("particle placement failed")

// NewRand returns the generator used for population setup.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Populate places pc.Count particles at random inside b. Each candidate is
// redrawn until it keeps at least pc.SpacingBuffer clear of every particle
// placed before it, up to pc.PlacementTries attempts per particle.
func Populate(b physics.Boundary, pc config.ParticleConfig, cooldownTicks int, rng *rand.Rand) ([]*physics.Particle, error) {
	particles := make([]*physics.Particle, 0, pc.Count)

	for len(particles) < pc.Count {
		p, err := placeOne(b, pc, cooldownTicks, particles, rng)
		if err != nil {
			return nil, err
		}
		particles = append(particles, p)
	}

	return particles, nil
}

// placeOne draws candidates until one fits.
func placeOne(b physics.Boundary, pc config.ParticleConfig, cooldownTicks int, placed []*physics.Particle, rng *rand.Rand) (*physics.Particle, error) {
	for try := 0; try < pc.PlacementTries; try++ {
		radius := float64(randInt(rng, pc.RadiusMin, pc.RadiusMax))
		inset := pc.PlacementMargin + radius
		x := randRange(rng, b.Left()+inset, b.Right()-inset)
		y := randRange(rng, b.Top()+inset, b.Bottom()-inset)
		pos := vector.New(x, y)

		if overlapsAny(pos, radius, pc.SpacingBuffer, placed) {
			continue
		}

		return physics.NewParticle(physics.ParticleOptions{
			Position: pos,
			Velocity: vector.New(
				float64(randInt(rng, 1, pc.SpeedFactorMax))*rng.Float64(),
				float64(randInt(rng, 1, pc.SpeedFactorMax))*rng.Float64(),
			),
			Mass:          float64(randInt(rng, pc.MassMin, pc.MassMax)),
			Radius:        radius,
			Color:         randomColor(rng),
			CooldownTicks: cooldownTicks,
		})
	}
	return nil, fmt.Errorf("%w: particle %d of %d after %d attempts", ErrPlacement, len(placed)+1, pc.Count, pc.PlacementTries)
}

// overlapsAny reports whether a disk at pos comes within buffer of any placed particle.
func overlapsAny(pos vector.Vector, radius, buffer float64, placed []*physics.Particle) bool {
	for _, other := range placed {
		if pos.Sub(other.Position()).Magnitude() <= other.Radius()+radius+buffer {
			return true
		}
	}
	return false
}

// colorRand adapts math/rand/v2 to the generator interface go-colorful expects.
type colorRand struct {
	*rand.Rand
}

func (r colorRand) Intn(n int) int {
	return r.IntN(n)
}

// randomColor picks a bright, saturated colour.
func randomColor(rng *rand.Rand) color.RGBA {
	r, g, b := colorful.FastHappyColorWithRand(colorRand{rng}).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// randInt returns an integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// randRange returns a float in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

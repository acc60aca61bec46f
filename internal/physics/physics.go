// Package physics provides the collision engine: boundary geometry, particle
// motion integration, and elastic collision response.
package physics

import (
	"errors"
	"math"
)

var (
	// ErrInvalidGeometry is returned when a boundary or particle is built
	// with a non-positive dimension, radius, or mass.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrDegenerateCollision is returned when two particles in contact share
	// the same centre, leaving the collision normal undefined.
	ErrDegenerateCollision = errors.New("degenerate collision")
)

// Dimensions is the number of spatial dimensions the engine works in.
const Dimensions = 2

// DefaultCooldownTicks is how many ticks a particle ignores further
// collisions after one has been resolved.
const DefaultCooldownTicks = 5

// Step is the fixed time increment of one tick. Seconds is a float so
// rates like 60 Hz are not truncated to whole nanoseconds.
type Step struct {
	Seconds        float64 // Tick length
	PixelsPerMeter float64 // World-to-pixel scale, chosen once per simulation
}

// Scaled returns the factor applied to a velocity (m/s) to obtain the
// per-tick displacement in pixels.
func (s Step) Scaled() float64 {
	return s.Seconds * s.PixelsPerMeter
}

// positive reports whether v is a finite number greater than zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

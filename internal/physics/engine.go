package physics

import "errors"

// PairStats counts the outcome of one pairwise collision pass.
type PairStats struct {
	Resolved   int // Pairs that exchanged an impulse
	Degenerate int // Touching pairs skipped because their centres coincided
}

// StepBoundaries integrates every particle and then resolves its boundary
// collision. Particles are independent of each other in this pass.
func StepBoundaries(particles []*Particle, b Boundary, dtScaled float64) {
	for _, p := range particles {
		p.Integrate(dtScaled)
		p.ResolveBoundaryCollision(b)
	}
}

// StepPairs checks every unordered pair once, in ascending index order, and
// resolves the pairs that touch while neither is in cooldown. A particle
// resolved against an earlier partner carries its new velocity into later
// checks of the same pass.
func StepPairs(particles []*Particle) PairStats {
	var stats PairStats
	for i := 0; i < len(particles); i++ {
		p1 := particles[i]
		for j := i + 1; j < len(particles); j++ {
			// Re-read each iteration: an earlier pair may have engaged p1's cooldown
			if p1.collided {
				break
			}
			p2 := particles[j]
			if p2.collided || !p1.Touches(p2) {
				continue
			}
			if err := p1.ResolveParticleCollision(p2); err != nil {
				if errors.Is(err, ErrDegenerateCollision) {
					stats.Degenerate++
				}
				continue
			}
			stats.Resolved++
		}
	}
	return stats
}

// Advance runs one tick: motion and boundary resolution for every particle,
// followed by the pairwise collision pass.
func Advance(particles []*Particle, b Boundary, dtScaled float64) PairStats {
	StepBoundaries(particles, b, dtScaled)
	return StepPairs(particles)
}

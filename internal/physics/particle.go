package physics

import (
	"fmt"
	"image/color"

	"github.com/tomz197/collisions/internal/vector"
)

// ParticleOptions describes a particle at construction time.
// The caller is responsible for non-overlapping initial placement.
type ParticleOptions struct {
	Position      vector.Vector // Centre, pixels
	Velocity      vector.Vector // m/s
	Mass          float64       // kg
	Radius        float64       // pixels
	Color         color.RGBA    // Metadata for the renderer; the engine never reads it
	CooldownTicks int           // 0 selects DefaultCooldownTicks
}

// Particle is a moving disk. Position and velocity are mutated in place by
// Integrate and the collision methods.
type Particle struct {
	position vector.Vector
	velocity vector.Vector
	mass     float64
	radius   float64
	color    color.RGBA

	collided      bool
	cooldown      int // Ticks left before collisions are handled again
	cooldownTicks int // Value cooldown is reset to
}

// NewParticle validates opts and creates a particle.
func NewParticle(opts ParticleOptions) (*Particle, error) {
	if opts.Position.Len() != Dimensions || opts.Velocity.Len() != Dimensions {
		return nil, fmt.Errorf("%w: particle needs %d-D position and velocity, got %d-D and %d-D",
			ErrInvalidGeometry, Dimensions, opts.Position.Len(), opts.Velocity.Len())
	}
	for i := 0; i < Dimensions; i++ {
		if !finite(opts.Position[i]) || !finite(opts.Velocity[i]) {
			return nil, fmt.Errorf("%w: particle position %v velocity %v", ErrInvalidGeometry, opts.Position, opts.Velocity)
		}
	}
	if !positive(opts.Mass) {
		return nil, fmt.Errorf("%w: particle mass %v", ErrInvalidGeometry, opts.Mass)
	}
	if !positive(opts.Radius) {
		return nil, fmt.Errorf("%w: particle radius %v", ErrInvalidGeometry, opts.Radius)
	}
	if opts.CooldownTicks < 0 {
		return nil, fmt.Errorf("%w: cooldown %d ticks", ErrInvalidGeometry, opts.CooldownTicks)
	}

	ticks := opts.CooldownTicks
	if ticks == 0 {
		ticks = DefaultCooldownTicks
	}

	return &Particle{
		position:      opts.Position.Clone(),
		velocity:      opts.Velocity.Clone(),
		mass:          opts.Mass,
		radius:        opts.Radius,
		color:         opts.Color,
		cooldown:      ticks,
		cooldownTicks: ticks,
	}, nil
}

// Position returns a copy of the centre position.
func (p *Particle) Position() vector.Vector { return p.position.Clone() }

// Velocity returns a copy of the velocity.
func (p *Particle) Velocity() vector.Vector { return p.velocity.Clone() }

// Mass returns the particle mass.
func (p *Particle) Mass() float64 { return p.mass }

// Radius returns the particle radius.
func (p *Particle) Radius() float64 { return p.radius }

// Color returns the colour metadata.
func (p *Particle) Color() color.RGBA { return p.color }

// Collided reports whether the particle is in its post-collision cooldown.
func (p *Particle) Collided() bool { return p.collided }

// Cooldown returns the remaining cooldown ticks. Only meaningful while Collided.
func (p *Particle) Cooldown() int { return p.cooldown }

// Momentum returns mass * velocity.
func (p *Particle) Momentum() vector.Vector {
	return p.velocity.Scale(p.mass)
}

// KineticEnergy returns 0.5 * mass * |velocity|².
func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.mass * p.velocity.Dot(p.velocity)
}

// Integrate moves the particle by velocity*dtScaled and counts down an active
// cooldown. When the countdown reaches zero the particle may collide again.
func (p *Particle) Integrate(dtScaled float64) {
	p.position = p.position.Add(p.velocity.Scale(dtScaled))

	if p.collided {
		p.cooldown--
		if p.cooldown <= 0 {
			p.collided = false
			p.cooldown = p.cooldownTicks
		}
	}
}

// engageCooldown suppresses collision handling for the next cooldownTicks ticks.
func (p *Particle) engageCooldown() {
	p.collided = true
	p.cooldown = p.cooldownTicks
}

// ResolveBoundaryCollision keeps the particle inside b.
//
// A centre that has crossed an edge (tunnelled during the tick) is reflected
// back inside: the first match of left, right, top, bottom wins and only that
// axis is corrected. Otherwise a disk within one radius of an edge has the
// matching velocity component negated; both axes may flip at a corner, which
// is an approximation rather than an exact corner contact.
//
// Does nothing while the particle is in cooldown.
func (p *Particle) ResolveBoundaryCollision(b Boundary) {
	if p.collided {
		return
	}

	pos, vel, r := p.position, p.velocity, p.radius

	switch {
	case pos[0] <= b.Left():
		pos[0] = 2*(b.Left()+r) - pos[0]
		vel[0] = -vel[0]
	case pos[0] >= b.Right():
		pos[0] = 2*(b.Right()-r) - pos[0]
		vel[0] = -vel[0]
	case pos[1] <= b.Top():
		pos[1] = 2*(b.Top()+r) - pos[1]
		vel[1] = -vel[1]
	case pos[1] >= b.Bottom():
		pos[1] = 2*(b.Bottom()-r) - pos[1]
		vel[1] = -vel[1]
	default:
		flipped := false
		if pos[0]-b.Left() <= r || b.Right()-pos[0] <= r {
			vel[0] = -vel[0]
			flipped = true
		}
		if pos[1]-b.Top() <= r || b.Bottom()-pos[1] <= r {
			vel[1] = -vel[1]
			flipped = true
		}
		if !flipped {
			return
		}
	}

	p.engageCooldown()
}

// DistanceTo returns the distance between the two centres.
func (p *Particle) DistanceTo(other *Particle) float64 {
	return p.position.Sub(other.position).Magnitude()
}

// Touches reports whether the two disks overlap or touch.
func (p *Particle) Touches(other *Particle) bool {
	return p.DistanceTo(other) <= p.radius+other.radius
}

// ResolveParticleCollision applies a frictionless elastic collision between
// p and other. The impulse acts along the line joining the centres; the
// tangential velocity components are unchanged. Both particles enter cooldown.
//
// Returns ErrDegenerateCollision, leaving both particles untouched, if the
// centres coincide.
func (p *Particle) ResolveParticleCollision(other *Particle) error {
	normal := p.position.Sub(other.position)
	dist := normal.Magnitude()
	if dist == 0 {
		return fmt.Errorf("%w: centres coincide at %v", ErrDegenerateCollision, p.position)
	}

	unitNormal := normal.Scale(1 / dist)
	unitTangent := vector.New(-unitNormal[1], unitNormal[0])

	selfNormal := unitNormal.Dot(p.velocity)
	selfTangent := unitTangent.Dot(p.velocity)
	otherNormal := unitNormal.Dot(other.velocity)
	otherTangent := unitTangent.Dot(other.velocity)

	m1, m2 := p.mass, other.mass
	total := m1 + m2
	newSelfNormal := (selfNormal*(m1-m2) + 2*m2*otherNormal) / total
	newOtherNormal := (otherNormal*(m2-m1) + 2*m1*selfNormal) / total

	p.velocity = unitTangent.Scale(selfTangent).Add(unitNormal.Scale(newSelfNormal))
	other.velocity = unitTangent.Scale(otherTangent).Add(unitNormal.Scale(newOtherNormal))

	p.engageCooldown()
	other.engageCooldown()
	return nil
}

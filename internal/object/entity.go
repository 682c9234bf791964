// Package object defines the moving polygon entities of the simulation and
// the asteroid belt that owns the rocks.
package object

import (
	"github.com/tomz197/vectoroids/internal/geom"
)

// Kind discriminates the closed set of entity variants.
type Kind int

const (
	KindAsteroid Kind = iota
	KindShip
	KindBullet
	KindSaucer
	KindExplosion
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAsteroid:
		return "asteroid"
	case KindShip:
		return "ship"
	case KindBullet:
		return "bullet"
	case KindSaucer:
		return "saucer"
	case KindExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

const (
	// DefaultExplosionLength is the relative lifetime given to particles.
	DefaultExplosionLength = 1

	// explosionFrames is how long a particle of length 1 lives.
	explosionFrames = 40

	// explosionDrift is the outward particle speed in canvas units per tick.
	explosionDrift = 12
)

// Entity is one moving polygon on the canvas. Variant specific state lives
// in Tier (asteroids), Life (bullets, saucers and particles) and
// Weapon/Owner (bullets).
type Entity struct {
	*Transform

	Kind            Kind
	Alive           bool
	ExplosionLength int

	Tier   Tier
	Life   int
	Weapon Weapon
	Owner  Kind
	// Spin is a constant rotation in degrees per second.
	Spin float64
}

// NewEntity creates a live entity of kind at origin.
func NewEntity(kind Kind, origin geom.Point) *Entity {
	return &Entity{
		Transform:       NewTransform(origin),
		Kind:            kind,
		Alive:           true,
		ExplosionLength: DefaultExplosionLength,
	}
}

// NewExplosion creates a particle at p that lives for length units.
func NewExplosion(p geom.Point, length int) *Entity {
	e := NewEntity(KindExplosion, p)
	e.ExplosionLength = length
	e.Life = length * explosionFrames
	return e
}

// Explode kills the entity and returns one particle per current vertex.
// Particles drift away from the entity's origin.
func (e *Entity) Explode() []*Entity {
	e.Alive = false
	e.SetVelocity(geom.Vector{})

	center := e.Origin()
	points := e.GetPoints()
	particles := make([]*Entity, 0, len(points))
	for _, p := range points {
		particle := NewExplosion(p, e.ExplosionLength)
		dir := geom.Vector{X: float64(p.X - center.X), Y: float64(p.Y - center.Y)}
		if l := dir.Length(); l > 0 {
			particle.SetVelocity(dir.Scale(explosionDrift / l))
		}
		particles = append(particles, particle)
	}
	return particles
}

// Step advances the entity one tick according to its kind. It reports
// whether the entity is still alive afterwards.
func Step(e *Entity) bool {
	if !e.Alive {
		return false
	}

	switch e.Kind {
	case KindBullet, KindExplosion, KindSaucer:
		e.Life--
		if e.Life <= 0 {
			e.Alive = false
			return false
		}
	}

	if e.Spin != 0 {
		e.Rotate(e.Spin)
	}
	e.Move()
	return true
}

package object

import (
	"math/rand"

	"github.com/tomz197/vectoroids/internal/geom"
)

// Ship outline, authored nose up.
var shipTemplate = []geom.Point{
	{X: 0, Y: 160},
	{X: 100, Y: -100},
	{X: 0, Y: -50},
	{X: -100, Y: -100},
}

// Flame drawn behind the ship while thrusting.
var flameTemplate = []geom.Point{
	{X: 50, Y: -80},
	{X: 0, Y: -220},
	{X: -50, Y: -80},
}

// NewShip creates the player's ship at origin, pointing up.
func NewShip(origin geom.Point) *Entity {
	e := NewEntity(KindShip, origin)
	e.AddPoints(shipTemplate...)
	e.SetRadians(0)
	return e
}

// Flame returns the thrust flame outline for ship.
func Flame(ship *Entity) []geom.Point {
	t := NewTransform(ship.Origin())
	t.AddPoints(flameTemplate...)
	t.SetRadians(ship.Radians())
	return t.GetPoints()
}

// Nose returns the tip of the entity's outline.
func Nose(e *Entity) geom.Point {
	points := e.GetPoints()
	if len(points) == 0 {
		return e.Origin()
	}
	return points[0]
}

// Thrust accelerates e along its heading, capped at maxSpeed.
func Thrust(e *Entity, accel, maxSpeed float64) {
	h := e.Heading()
	v := e.Velocity()
	v.X += h.X * accel
	v.Y += h.Y * accel
	if speed := v.Length(); speed > maxSpeed {
		v = v.Scale(maxSpeed / speed)
	}
	e.SetVelocity(v)
}

// Drift slows e by factor.
func Drift(e *Entity, factor float64) {
	e.SetVelocity(e.Velocity().Scale(factor))
}

// Hyperspace drops e at a random spot with no momentum.
func Hyperspace(rng *rand.Rand, e *Entity) {
	e.SetOrigin(geom.Point{
		X: rng.Intn(geom.CanvasWidth),
		Y: rng.Intn(geom.CanvasHeight),
	})
	e.SetVelocity(geom.Vector{})
}

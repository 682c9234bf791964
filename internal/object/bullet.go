package object

import (
	"github.com/tomz197/vectoroids/internal/geom"
)

// Weapon selects the bullet the ship fires.
type Weapon int

const (
	WeaponLaser Weapon = iota
	WeaponRocket
)

// String returns the weapon name.
func (w Weapon) String() string {
	switch w {
	case WeaponLaser:
		return "laser"
	case WeaponRocket:
		return "rocket"
	default:
		return "unknown"
	}
}

// WeaponSpec is the ballistic profile of a weapon. Life is in ticks.
type WeaponSpec struct {
	Speed   float64
	Life    int
	MaxLive int
}

var bulletTemplates = map[Weapon][]geom.Point{
	WeaponLaser:  {{X: 0, Y: 40}, {X: 0, Y: -40}},
	WeaponRocket: {{X: 0, Y: 70}, {X: 25, Y: 0}, {X: 0, Y: -50}, {X: -25, Y: 0}},
}

// NewBullet fires weapon from the given point along heading. The shooter's
// velocity is added to the bullet's own.
func NewBullet(owner Kind, weapon Weapon, spec WeaponSpec, from geom.Point, heading, inherit geom.Vector, radians float64) *Entity {
	e := NewEntity(KindBullet, from)
	e.Owner = owner
	e.Weapon = weapon
	e.Life = spec.Life
	e.AddPoints(bulletTemplates[weapon]...)
	e.SetRadians(radians)
	e.SetVelocity(geom.Vector{
		X: inherit.X + heading.X*spec.Speed,
		Y: inherit.Y + heading.Y*spec.Speed,
	})
	return e
}

// CountLive returns the live bullets fired by owner.
func CountLive(bullets []*Entity, owner Kind) int {
	n := 0
	for _, b := range bullets {
		if b.Alive && b.Owner == owner {
			n++
		}
	}
	return n
}

package object

import (
	"math/rand"

	"github.com/tomz197/vectoroids/internal/geom"
)

// Saucer outline, symmetric so it reads the same at any rotation.
var saucerTemplate = []geom.Point{
	{X: -250, Y: 0},
	{X: -100, Y: 80},
	{X: -60, Y: 160},
	{X: 60, Y: 160},
	{X: 100, Y: 80},
	{X: 250, Y: 0},
	{X: 100, Y: -80},
	{X: -100, Y: -80},
}

// NewSaucer creates a saucer on the left or right edge that stays for life
// ticks unless shot.
func NewSaucer(rng *rand.Rand, life int) *Entity {
	x := 0
	if rng.Intn(2) == 1 {
		x = geom.CanvasWidth - 1
	}
	e := NewEntity(KindSaucer, geom.Point{X: x, Y: rng.Intn(geom.CanvasHeight)})
	e.Life = life
	e.AddPoints(saucerTemplate...)
	return e
}

// Pursue turns the saucer toward target by at most one Align step and sets
// its velocity along the new heading.
func Pursue(e *Entity, target geom.Point, speed float64) {
	e.Align(target)
	e.SetVelocity(e.Heading().Scale(speed))
}

package loop

import (
	"math/rand"

	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/object"
)

const titleAsteroids = 8

// Title is the attract screen: a silent belt drifting behind the menu.
type Title struct {
	belt  *object.Belt
	ticks int
}

// NewTitle creates a title screen with its own belt.
func NewTitle(rng *rand.Rand) *Title {
	return &Title{belt: object.NewBelt(rng, titleAsteroids, object.TierSmall, nil)}
}

// Step drifts the belt.
func (t *Title) Step() {
	t.ticks++
	t.belt.Move()
}

func (t *Title) draw(scene *Scene) {
	for _, a := range t.belt.Asteroids() {
		scene.Polygon(draw.White, a.GetPoints())
	}

	scene.TextCentered(draw.Yellow, "VECTOROIDS", geom.CanvasHeight/3, 120)
	// Blink at half a second.
	if (t.ticks/30)%2 == 0 {
		scene.TextCentered(draw.White, "PRESS ANY KEY", geom.CanvasHeight/2+300, 50)
	}
	scene.TextCentered(draw.White, "1 LASER  2 ROCKET", geom.CanvasHeight/2+900, 35)
	scene.TextCentered(draw.White, "ESC QUIT", geom.CanvasHeight/2+1300, 35)
}

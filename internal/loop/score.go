package loop

import (
	"fmt"

	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/object"
)

// Score tracks the running score and the session high score. The high
// score lives only as long as the process.
type Score struct {
	current   int
	high      int
	extraLife int
	nextLife  int
}

// NewScore creates a score keeper awarding a life every extraLife points.
// Zero disables extra lives.
func NewScore(extraLife int) *Score {
	s := &Score{extraLife: extraLife}
	s.Reset()
	return s
}

// Reset starts a new game at zero.
func (s *Score) Reset() {
	s.current = 0
	s.nextLife = s.extraLife
}

// Cancel drops the running score without touching the high score.
func (s *Score) Cancel() {
	s.Reset()
}

// Add awards points and returns how many extra lives they earned.
func (s *Score) Add(points int) int {
	if points <= 0 {
		return 0
	}
	s.current += points
	if s.current > s.high {
		s.high = s.current
	}

	lives := 0
	for s.extraLife > 0 && s.current >= s.nextLife {
		lives++
		s.nextLife += s.extraLife
	}
	return lives
}

// Current returns the running score.
func (s *Score) Current() int {
	return s.current
}

// High returns the best score of the session.
func (s *Score) High() int {
	return s.high
}

const hudScale = 22

// draw adds the score line and a ship icon per remaining life.
func (s *Score) draw(scene *Scene, lives int) {
	scene.Text(draw.White, fmt.Sprintf("%06d", s.current), geom.Point{X: 200, Y: 150}, hudScale)
	high := fmt.Sprintf("HI %06d", s.high)
	scene.Text(draw.White, high, geom.Point{X: geom.CanvasWidth - 200 - textWidth(high, hudScale), Y: 150}, hudScale)

	for i := 0; i < lives; i++ {
		icon := object.NewShip(geom.Point{X: 300 + i*300, Y: 500})
		scene.Polygon(draw.White, icon.GetPoints())
	}
}

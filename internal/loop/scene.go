package loop

import (
	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/geom"
)

// Scene collects the draw data of one frame.
type Scene struct {
	Lines    []draw.Line
	Polygons []draw.Polygon
}

// Clear empties the scene.
func (s *Scene) Clear() {
	s.Lines = nil
	s.Polygons = nil
}

// Polygon adds a closed outline.
func (s *Scene) Polygon(c draw.Color, points []geom.Point) {
	if len(points) == 0 {
		return
	}
	s.Polygons = append(s.Polygons, draw.Polygon{Color: c, Points: points})
}

// Line adds a segment.
func (s *Scene) Line(c draw.Color, p1, p2 geom.Point) {
	s.Lines = append(s.Lines, draw.Line{Color: c, P1: p1, P2: p2})
}

// Text adds vector text with its top-left corner at origin.
func (s *Scene) Text(c draw.Color, text string, origin geom.Point, scale int) {
	s.Lines = addText(s.Lines, c, text, origin, scale)
}

// TextCentered adds vector text centered horizontally on the canvas with
// its middle at y.
func (s *Scene) TextCentered(c draw.Color, text string, y, scale int) {
	x := (geom.CanvasWidth - textWidth(text, scale)) / 2
	s.Text(c, text, geom.Point{X: x, Y: y - glyphHeight*scale/2}, scale)
}

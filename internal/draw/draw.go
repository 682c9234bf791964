// Package draw defines the rendering collaborator contract and the
// renderers that implement it: a scaled terminal canvas and a PNG
// rasterizer.
package draw

import (
	"github.com/tomz197/vectoroids/internal/geom"
)

// Line is a single colored segment on the logical canvas.
type Line struct {
	Color  Color
	P1, P2 geom.Point
}

// Polygon is a closed outline; the last point connects to the first.
type Polygon struct {
	Color  Color
	Points []geom.Point
}

// Renderer paints frames produced by the simulation. Initialize must
// complete before the first Draw. A renderer may draw synchronously or
// defer the work; Draw is never called concurrently with itself.
type Renderer interface {
	Initialize(palette Palette) error
	Draw(lines []Line, polygons []Polygon) error
}

// Resizer is implemented by renderers whose device size can change.
type Resizer interface {
	Resize(rect geom.Rect)
}

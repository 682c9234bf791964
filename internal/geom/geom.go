// Package geom provides the integer geometry shared by the simulation:
// the fixed logical canvas, points, distances and polygon containment.
package geom

import "math"

// Logical canvas. All gameplay math happens in this space; front-ends scale
// it to device pixels.
const (
	CanvasWidth  = 10000
	CanvasHeight = 7500

	// FPS is the fixed simulation rate.
	FPS = 60
)

// Point is a position on the logical canvas.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Center returns the middle of the logical canvas.
func Center() Point {
	return Point{X: CanvasWidth / 2, Y: CanvasHeight / 2}
}

// Rect is a device pixel rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Vector is a continuous velocity. It is truncated to integers on application.
type Vector struct {
	X, Y float64
}

// Scale returns v multiplied by f.
func (v Vector) Scale(f float64) Vector {
	return Vector{X: v.X * f, Y: v.Y * f}
}

// Length returns the magnitude of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Point) int {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// PointInCircle checks if p is within radius of center (inclusive).
func PointInCircle(p, center Point, radius int) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// PolygonContains reports whether p lies inside the closed polygon using
// the even-odd ray casting rule. Polygons with fewer than three points
// contain nothing.
func PolygonContains(polygon []Point, p Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	px, py := float64(p.X), float64(p.Y)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := float64(polygon[i].X), float64(polygon[i].Y)
		xj, yj := float64(polygon[j].X), float64(polygon[j].Y)
		if (yi > py) != (yj > py) {
			crossX := (xj-xi)*(py-yi)/(yj-yi) + xi
			if px < crossX {
				inside = !inside
			}
		}
	}
	return inside
}

// Bearing returns the heading from one point to another in canvas terms:
// 0 points up (negative Y), angles grow clockwise. The result is in [0, 2π).
func Bearing(from, to Point) float64 {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	return NormalizeRadians(math.Atan2(dx, -dy))
}

// NormalizeRadians maps any angle into [0, 2π).
func NormalizeRadians(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	if r >= 2*math.Pi {
		r = 0
	}
	return r
}

// DegreesToRadians converts an angle in degrees.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// WrapAxis applies the single-step toroidal clamp used by moving entities:
// values below zero snap to size-1, values at or beyond size snap to zero.
func WrapAxis(v, size int) int {
	switch {
	case v < 0:
		return size - 1
	case v >= size:
		return 0
	default:
		return v
	}
}

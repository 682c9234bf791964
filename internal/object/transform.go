package object

import (
	"math"
	"sync"

	"github.com/tomz197/vectoroids/internal/geom"
)

// AlignLimit is the largest turn a single Align call may apply.
var AlignLimit = geom.DegreesToRadians(5)

// Transform holds an entity's polygon template and its placement on the
// logical canvas.
//
// The template and the rotated copy are guarded by separate locks. Anything
// touching both takes localMu before viewMu.
type Transform struct {
	localMu sync.RWMutex
	local   []geom.Point

	viewMu   sync.RWMutex
	rotated  []geom.Point
	origin   geom.Point
	radians  float64
	velocity geom.Vector
}

// NewTransform creates a transform at origin. Templates are authored nose up,
// so the initial rotation of π leaves them nose down on the canvas.
func NewTransform(origin geom.Point) *Transform {
	return &Transform{
		origin:  origin,
		radians: math.Pi,
	}
}

// AddPoints appends template points and returns the index of the last one.
func (t *Transform) AddPoints(points ...geom.Point) int {
	t.localMu.Lock()
	defer t.localMu.Unlock()
	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	t.local = append(t.local, points...)
	sin, cos := math.Sincos(t.radians)
	for _, p := range points {
		t.rotated = append(t.rotated, rotatePoint(p, sin, cos))
	}
	return len(t.rotated) - 1
}

// GetPoints returns a fresh copy of the rotated points translated to the
// current origin.
func (t *Transform) GetPoints() []geom.Point {
	t.viewMu.RLock()
	defer t.viewMu.RUnlock()

	out := make([]geom.Point, len(t.rotated))
	for i, p := range t.rotated {
		out[i] = p.Add(t.origin)
	}
	return out
}

// ClearPoints empties the template and its rotated copy.
func (t *Transform) ClearPoints() {
	t.localMu.Lock()
	defer t.localMu.Unlock()
	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	t.local = t.local[:0]
	t.rotated = t.rotated[:0]
}

// Align turns toward target by at most AlignLimit.
func (t *Transform) Align(target geom.Point) {
	t.localMu.RLock()
	defer t.localMu.RUnlock()
	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	delta := geom.Bearing(t.origin, target) - t.radians
	// take the short way round
	if delta > math.Pi {
		delta -= 2 * math.Pi
	} else if delta < -math.Pi {
		delta += 2 * math.Pi
	}
	delta = math.Max(-AlignLimit, math.Min(AlignLimit, delta))

	t.radians += delta
	t.rotateLocked()
}

// Rotate advances the rotation by one frame's share of degreesPerSecond.
func (t *Transform) Rotate(degreesPerSecond float64) {
	t.localMu.RLock()
	defer t.localMu.RUnlock()
	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	t.radians += geom.DegreesToRadians(degreesPerSecond) / geom.FPS
	t.rotateLocked()
}

// SetRadians replaces the rotation outright.
func (t *Transform) SetRadians(r float64) {
	t.localMu.RLock()
	defer t.localMu.RUnlock()
	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	t.radians = r
	t.rotateLocked()
}

// rotateLocked normalizes the angle and recomputes the rotated points.
// Callers hold localMu (read) and viewMu (write).
func (t *Transform) rotateLocked() {
	t.radians = geom.NormalizeRadians(t.radians)
	sin, cos := math.Sincos(t.radians)

	t.rotated = t.rotated[:0]
	for _, p := range t.local {
		t.rotated = append(t.rotated, rotatePoint(p, sin, cos))
	}
}

// rotatePoint applies the canvas rotation. The second row is mirrored
// because the canvas Y axis points down.
func rotatePoint(p geom.Point, sin, cos float64) geom.Point {
	x, y := float64(p.X), float64(p.Y)
	return geom.Point{
		X: int(x*cos + y*sin),
		Y: int(x*sin - y*cos),
	}
}

// Radians returns the current rotation in [0, 2π).
func (t *Transform) Radians() float64 {
	t.viewMu.RLock()
	defer t.viewMu.RUnlock()
	return t.radians
}

// Heading returns the unit vector the nose points along.
func (t *Transform) Heading() geom.Vector {
	sin, cos := math.Sincos(t.Radians())
	return geom.Vector{X: sin, Y: -cos}
}

// Origin returns the absolute position.
func (t *Transform) Origin() geom.Point {
	t.viewMu.RLock()
	defer t.viewMu.RUnlock()
	return t.origin
}

// SetOrigin moves the transform without wrapping.
func (t *Transform) SetOrigin(p geom.Point) {
	t.viewMu.Lock()
	defer t.viewMu.Unlock()
	t.origin = p
}

// Velocity returns the current velocity.
func (t *Transform) Velocity() geom.Vector {
	t.viewMu.RLock()
	defer t.viewMu.RUnlock()
	return t.velocity
}

// SetVelocity replaces the current velocity.
func (t *Transform) SetVelocity(v geom.Vector) {
	t.viewMu.Lock()
	defer t.viewMu.Unlock()
	t.velocity = v
}

// Move advances the origin by the truncated velocity. Each axis wraps at
// most once per call.
func (t *Transform) Move() {
	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	t.origin.X = geom.WrapAxis(t.origin.X+int(t.velocity.X), geom.CanvasWidth)
	t.origin.Y = geom.WrapAxis(t.origin.Y+int(t.velocity.Y), geom.CanvasHeight)
}

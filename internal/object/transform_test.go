package object

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/tomz197/vectoroids/internal/geom"
)

func TestNewTransform(t *testing.T) {
	origin := geom.Point{X: 10, Y: 20}
	tr := NewTransform(origin)

	if tr.Radians() != math.Pi {
		t.Errorf("Radians() = %v, expected π", tr.Radians())
	}
	if tr.Origin() != origin {
		t.Errorf("Origin() = %v, expected %v", tr.Origin(), origin)
	}
}

func TestAddPointsReturnsLastIndex(t *testing.T) {
	tr := NewTransform(geom.Point{})

	if got := tr.AddPoints(geom.Point{X: 0, Y: 10}, geom.Point{X: 5, Y: 0}); got != 1 {
		t.Errorf("AddPoints() = %d, expected 1", got)
	}
	if got := tr.AddPoints(geom.Point{X: -5, Y: 0}); got != 2 {
		t.Errorf("AddPoints() = %d, expected 2", got)
	}

	tr.ClearPoints()
	if got := len(tr.GetPoints()); got != 0 {
		t.Errorf("len(GetPoints()) after ClearPoints() = %d, expected 0", got)
	}
}

func TestGetPointsTranslated(t *testing.T) {
	tr := NewTransform(geom.Point{X: 100, Y: 200})
	tr.AddPoints(geom.Point{X: 0, Y: 10})

	// at π the template point (0, 10) maps to (0, 10): nose down
	got := tr.GetPoints()
	expected := geom.Point{X: 100, Y: 210}
	if len(got) != 1 || got[0] != expected {
		t.Errorf("GetPoints() = %v, expected [%v]", got, expected)
	}

	got[0] = geom.Point{}
	if tr.GetPoints()[0] != expected {
		t.Error("GetPoints() returned a shared slice")
	}
}

func TestRotateFormula(t *testing.T) {
	tr := NewTransform(geom.Point{})
	tr.AddPoints(geom.Point{X: 0, Y: 100})

	tr.SetRadians(0)
	if got := tr.GetPoints()[0]; got != (geom.Point{X: 0, Y: -100}) {
		t.Errorf("at 0 point = %v, expected (0,-100)", got)
	}

	tr.SetRadians(math.Pi / 2)
	if got := tr.GetPoints()[0]; got != (geom.Point{X: 100, Y: 0}) {
		t.Errorf("at π/2 point = %v, expected (100,0)", got)
	}
}

func TestRotateNormalizes(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	tr := NewTransform(geom.Center())
	tr.AddPoints(geom.Point{X: 0, Y: 50}, geom.Point{X: 30, Y: -30})

	for i := 0; i < 5000; i++ {
		switch rng.Intn(3) {
		case 0:
			tr.Rotate((rng.Float64() - 0.5) * 100000)
		case 1:
			tr.Align(geom.Point{X: rng.Intn(geom.CanvasWidth), Y: rng.Intn(geom.CanvasHeight)})
		default:
			tr.Rotate(-360 * 60)
		}
		if r := tr.Radians(); r < 0 || r >= 2*math.Pi {
			t.Fatalf("Radians() = %v after step %d, expected [0, 2π)", r, i)
		}
	}
}

func TestRotateOneFrame(t *testing.T) {
	tr := NewTransform(geom.Point{})
	tr.SetRadians(0)
	tr.Rotate(60)

	expected := geom.DegreesToRadians(1)
	if math.Abs(tr.Radians()-expected) > 1e-12 {
		t.Errorf("Radians() = %v, expected %v", tr.Radians(), expected)
	}
}

func TestAlignClamp(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	tr := NewTransform(geom.Center())

	for i := 0; i < 1000; i++ {
		before := tr.Radians()
		tr.Align(geom.Point{X: rng.Intn(geom.CanvasWidth), Y: rng.Intn(geom.CanvasHeight)})
		after := tr.Radians()

		diff := math.Abs(after - before)
		if diff > math.Pi {
			diff = 2*math.Pi - diff
		}
		if diff > AlignLimit+1e-9 {
			t.Fatalf("Align() turned %v, expected at most %v", diff, AlignLimit)
		}
	}
}

func TestAlignConverges(t *testing.T) {
	tr := NewTransform(geom.Point{X: 5000, Y: 5000})
	target := geom.Point{X: 9000, Y: 5000}

	for i := 0; i < 100; i++ {
		tr.Align(target)
	}
	if math.Abs(tr.Radians()-math.Pi/2) > 1e-9 {
		t.Errorf("Radians() = %v, expected π/2", tr.Radians())
	}
}

func TestMoveWraps(t *testing.T) {
	tests := []struct {
		name     string
		origin   geom.Point
		velocity geom.Vector
		expected geom.Point
	}{
		{"inside", geom.Point{X: 100, Y: 100}, geom.Vector{X: 10.9, Y: -10.9}, geom.Point{X: 110, Y: 90}},
		{"left edge", geom.Point{X: 5, Y: 100}, geom.Vector{X: -10}, geom.Point{X: geom.CanvasWidth - 1, Y: 100}},
		{"right edge", geom.Point{X: geom.CanvasWidth - 1, Y: 100}, geom.Vector{X: 1}, geom.Point{X: 0, Y: 100}},
		{"top edge", geom.Point{X: 100, Y: 0}, geom.Vector{Y: -1}, geom.Point{X: 100, Y: geom.CanvasHeight - 1}},
		{"full width", geom.Point{X: 100, Y: 100}, geom.Vector{X: geom.CanvasWidth * 3}, geom.Point{X: 0, Y: 100}},
		{"full height back", geom.Point{X: 100, Y: 100}, geom.Vector{Y: -geom.CanvasHeight * 2}, geom.Point{X: 100, Y: geom.CanvasHeight - 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTransform(tt.origin)
			tr.SetVelocity(tt.velocity)
			tr.Move()
			if got := tr.Origin(); got != tt.expected {
				t.Errorf("Move() origin = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestTransformConcurrentAccess(t *testing.T) {
	tr := NewTransform(geom.Center())
	tr.AddPoints(geom.Point{X: 0, Y: 100}, geom.Point{X: 50, Y: -50}, geom.Point{X: -50, Y: -50})

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.Rotate(180)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			tr.AddPoints(geom.Point{X: i, Y: i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = tr.GetPoints()
		}
	}()
	wg.Wait()

	if got := len(tr.GetPoints()); got != 103 {
		t.Errorf("len(GetPoints()) = %d, expected 103", got)
	}
}

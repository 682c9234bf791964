package geom

import (
	"math"
	"testing"
)

func TestWrapAxis(t *testing.T) {
	tests := []struct {
		name     string
		v, size  int
		expected int
	}{
		{"inside", 10, 100, 10},
		{"zero", 0, 100, 0},
		{"negative", -1, 100, 99},
		{"far negative", -250, 100, 99},
		{"at size", 100, 100, 0},
		{"beyond size", 350, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapAxis(tt.v, tt.size); got != tt.expected {
				t.Errorf("WrapAxis(%d, %d) = %d, expected %d", tt.v, tt.size, got, tt.expected)
			}
		})
	}
}

func TestPolygonContains(t *testing.T) {
	square := []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"center", Point{50, 50}, true},
		{"outside right", Point{150, 50}, false},
		{"outside above", Point{50, -1}, false},
		{"near corner", Point{1, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonContains(square, tt.p); got != tt.expected {
				t.Errorf("PolygonContains(%v) = %v, expected %v", tt.p, got, tt.expected)
			}
		})
	}

	if PolygonContains(square[:2], Point{50, 0}) {
		t.Error("PolygonContains() with two points should be false")
	}
}

func TestBearing(t *testing.T) {
	origin := Point{100, 100}
	tests := []struct {
		name     string
		to       Point
		expected float64
	}{
		{"up", Point{100, 0}, 0},
		{"right", Point{200, 100}, math.Pi / 2},
		{"down", Point{100, 200}, math.Pi},
		{"left", Point{0, 100}, 3 * math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(origin, tt.to)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Bearing() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestNormalizeRadians(t *testing.T) {
	for _, r := range []float64{-10, -2 * math.Pi, -0.1, 0, 1, 2 * math.Pi, 7, 100} {
		got := NormalizeRadians(r)
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("NormalizeRadians(%v) = %v, expected value in [0, 2π)", r, got)
		}
	}
}

func TestPointInCircle(t *testing.T) {
	c := Point{0, 0}
	if !PointInCircle(Point{3, 4}, c, 5) {
		t.Error("PointInCircle() on the boundary should be true")
	}
	if PointInCircle(Point{4, 4}, c, 5) {
		t.Error("PointInCircle() outside radius should be false")
	}
}

package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/vectoroids/internal/geom"
)

// Tier is an asteroid's size, ordered from Destroyed (removed) up to Large.
type Tier int

const (
	TierDestroyed Tier = iota
	TierSmall
	TierMedium
	TierLarge
)

// String returns the name of the tier.
func (t Tier) String() string {
	switch t {
	case TierDestroyed:
		return "destroyed"
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Reduce returns the next smaller tier. Destroyed stays destroyed.
func (t Tier) Reduce() Tier {
	if t <= TierDestroyed {
		return TierDestroyed
	}
	return t - 1
}

// Size properties for each tier, in canvas units.
var tierRadii = map[Tier]float64{
	TierSmall:  140,
	TierMedium: 280,
	TierLarge:  480,
}

// Speeds in canvas units per tick.
var tierSpeeds = map[Tier]float64{
	TierSmall:  22,
	TierMedium: 14,
	TierLarge:  8,
}

// NewAsteroid creates an asteroid of tier at origin heading in a random
// direction.
func NewAsteroid(rng *rand.Rand, origin geom.Point, tier Tier) *Entity {
	e := NewEntity(KindAsteroid, origin)
	e.Tier = tier
	shapeAsteroid(rng, e)
	return e
}

// NewAsteroidRandom creates an asteroid anywhere on the canvas.
func NewAsteroidRandom(rng *rand.Rand, tier Tier) *Entity {
	origin := geom.Point{
		X: rng.Intn(geom.CanvasWidth),
		Y: rng.Intn(geom.CanvasHeight),
	}
	return NewAsteroid(rng, origin, tier)
}

// shapeAsteroid replaces the entity's outline, velocity and spin with a
// fresh random shape for its tier.
func shapeAsteroid(rng *rand.Rand, e *Entity) {
	radius := tierRadii[e.Tier]
	speed := tierSpeeds[e.Tier]

	// Generate irregular polygon vertices (8-12 vertices)
	numVerts := 8 + rng.Intn(5)
	points := make([]geom.Point, numVerts)
	for i := range points {
		// Vary radius by ±30% for irregular shape
		dist := radius * (0.7 + rng.Float64()*0.6)
		angle := float64(i) * 2 * math.Pi / float64(numVerts)
		points[i] = geom.Point{
			X: int(math.Cos(angle) * dist),
			Y: int(math.Sin(angle) * dist),
		}
	}

	e.ClearPoints()
	e.AddPoints(points...)

	angle := rng.Float64() * 2 * math.Pi
	e.SetVelocity(geom.Vector{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed})
	e.Spin = (rng.Float64() - 0.5) * 120
}

// randomTier picks uniformly between minTier and Large inclusive.
func randomTier(rng *rand.Rand, minTier Tier) Tier {
	if minTier < TierSmall {
		minTier = TierSmall
	}
	if minTier > TierLarge {
		minTier = TierLarge
	}
	return TierLarge - Tier(rng.Intn(int(TierLarge-minTier)+1))
}

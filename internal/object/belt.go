package object

import (
	"math/rand"
	"slices"
	"sync"

	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/sound"
)

// SafeDistance is the default clearance around a respawn point.
const SafeDistance = 2000

// Points awarded by the tier an asteroid is reduced to.
const (
	ScoreMedium    = 50
	ScoreSmall     = 100
	ScoreDestroyed = 250
)

// Belt owns every asteroid of a round or of the title screen. Insertion
// order matters: collisions are resolved newest first.
type Belt struct {
	mu        sync.RWMutex
	asteroids []*Entity
	rng       *rand.Rand
	trigger   func(sound.ID)
}

// NewBelt creates count asteroids with tiers drawn uniformly from
// [minTier, Large]. trigger receives explosion sounds and may be nil.
func NewBelt(rng *rand.Rand, count int, minTier Tier, trigger func(sound.ID)) *Belt {
	if trigger == nil {
		trigger = func(sound.ID) {}
	}
	count = max(count, 0)
	b := &Belt{
		asteroids: make([]*Entity, 0, count),
		rng:       rng,
		trigger:   trigger,
	}
	for i := 0; i < count; i++ {
		b.asteroids = append(b.asteroids, NewAsteroidRandom(rng, randomTier(rng, minTier)))
	}
	return b
}

// Add appends an asteroid to the belt.
func (b *Belt) Add(a *Entity) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.asteroids = append(b.asteroids, a)
}

// Move advances every asteroid one tick.
func (b *Belt) Move() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, a := range b.asteroids {
		Step(a)
	}
}

// Count returns the number of asteroids left.
func (b *Belt) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.asteroids)
}

// Asteroids returns a snapshot of the asteroids for drawing.
func (b *Belt) Asteroids() []*Entity {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*Entity, len(b.asteroids))
	copy(out, b.asteroids)
	return out
}

// IsCenterSafe reports whether no asteroid origin lies within radius of
// center.
func (b *Belt) IsCenterSafe(center geom.Point, radius int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, a := range b.asteroids {
		if geom.PointInCircle(a.Origin(), center, radius) {
			return false
		}
	}
	return true
}

// CheckPointCollisions tests p against the asteroids, newest first, and
// resolves the first hit: the asteroid drops one tier and, unless destroyed,
// one clone of the reduced tier is appended at the same place. It returns
// the points scored, or 0 when nothing was hit.
func (b *Belt) CheckPointCollisions(p geom.Point) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.asteroids) - 1; i >= 0; i-- {
		a := b.asteroids[i]
		if !geom.PolygonContains(a.GetPoints(), p) {
			continue
		}

		a.Tier = a.Tier.Reduce()
		var score int
		switch a.Tier {
		case TierDestroyed:
			score = ScoreDestroyed
			b.trigger(sound.Explode3)
		case TierSmall:
			score = ScoreSmall
			b.trigger(sound.Explode2)
		case TierMedium:
			score = ScoreMedium
			b.trigger(sound.Explode1)
		}

		if a.Tier == TierDestroyed {
			a.Alive = false
			b.asteroids = slices.Delete(b.asteroids, i, i+1)
		} else {
			shapeAsteroid(b.rng, a)
			b.asteroids = append(b.asteroids, NewAsteroid(b.rng, a.Origin(), a.Tier))
		}
		return score
	}
	return 0
}

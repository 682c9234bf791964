package loop

import (
	"math/rand"

	"github.com/tomz197/vectoroids/internal/config"
	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/object"
	"github.com/tomz197/vectoroids/internal/sound"
)

// saucerSoundEvery repeats the saucer siren while one is on screen.
const saucerSoundEvery = 45

const explosionHalfLife = 20

// Round is one game session: the ship, its lives, the belt and everything
// flying between them. It is driven by a single goroutine.
type Round struct {
	settings config.Settings
	rng      *rand.Rand
	score    *Score
	trigger  func(sound.ID)

	ship       *object.Entity
	belt       *object.Belt
	bullets    []*object.Entity
	saucer     *object.Entity
	explosions []*object.Entity

	level      int
	lives      int
	paused     bool
	thrusting  bool
	respawnIn  int
	saucerIn   int
	saucerFire int
	hyperIn    int
	ticks      int
}

// NewRound starts level one with the ship at the center.
func NewRound(settings config.Settings, rng *rand.Rand, score *Score, trigger func(sound.ID)) *Round {
	if trigger == nil {
		trigger = func(sound.ID) {}
	}
	r := &Round{
		settings: settings,
		rng:      rng,
		score:    score,
		trigger:  trigger,
		lives:    settings.Round.Lives,
		ship:     object.NewShip(geom.Center()),
		saucerIn: settings.Saucer.Interval,
	}
	r.startLevel(1)
	return r
}

func (r *Round) startLevel(level int) {
	r.level = level
	count := r.settings.Round.InitialAsteroids + r.settings.Round.AsteroidsPerLevel*(level-1)
	r.belt = object.NewBelt(r.rng, count, object.TierLarge, r.trigger)
	r.keepCenterClear()
}

// keepCenterClear moves freshly spawned asteroids out of the respawn zone
// by shifting them half a canvas on both axes.
func (r *Round) keepCenterClear() {
	center := geom.Center()
	radius := r.settings.Round.SafeRadius
	for _, a := range r.belt.Asteroids() {
		o := a.Origin()
		if geom.PointInCircle(o, center, radius) {
			a.SetOrigin(geom.Point{
				X: (o.X + geom.CanvasWidth/2) % geom.CanvasWidth,
				Y: (o.Y + geom.CanvasHeight/2) % geom.CanvasHeight,
			})
		}
	}
}

// Level returns the current level, starting at one.
func (r *Round) Level() int {
	return r.level
}

// Lives returns the remaining lives, including the one in play.
func (r *Round) Lives() int {
	return r.lives
}

// Paused reports whether the round is frozen.
func (r *Round) Paused() bool {
	return r.paused
}

// Belt returns the round's asteroid belt.
func (r *Round) Belt() *object.Belt {
	return r.belt
}

// Ship returns the live ship, or nil while waiting to respawn.
func (r *Round) Ship() *object.Entity {
	return r.ship
}

// Bullets returns the bullets in flight.
func (r *Round) Bullets() []*object.Entity {
	return r.bullets
}

// Apply feeds one tick of input into the round. Edge actions arrive at most
// once per press.
func (r *Round) Apply(held InputState, act Actions, weapon object.Weapon) {
	if act.Pause {
		r.paused = !r.paused
	}
	r.thrusting = false
	if r.paused || r.ship == nil {
		return
	}

	ship := r.ship
	if held.Left {
		ship.Rotate(-r.settings.Ship.RotateSpeed)
	}
	if held.Right {
		ship.Rotate(r.settings.Ship.RotateSpeed)
	}
	if held.Thrust {
		object.Thrust(ship, r.settings.Ship.Thrust, r.settings.Ship.MaxSpeed)
		r.thrusting = true
		r.trigger(sound.Thrust)
	} else {
		object.Drift(ship, r.settings.Ship.Drag)
	}

	if act.Hyperspace && r.hyperIn == 0 {
		object.Hyperspace(r.rng, ship)
		r.hyperIn = r.settings.Ship.HyperspaceCooldown
	}
	if act.Shoot {
		r.fire(weapon)
	}
}

func (r *Round) fire(weapon object.Weapon) {
	spec := r.weaponSpec(weapon)
	if object.CountLive(r.bullets, object.KindShip) >= spec.MaxLive {
		return
	}
	ship := r.ship
	r.bullets = append(r.bullets, object.NewBullet(
		object.KindShip, weapon, spec,
		object.Nose(ship), ship.Heading(), ship.Velocity(), ship.Radians(),
	))
	r.trigger(sound.Fire)
}

func (r *Round) weaponSpec(w object.Weapon) object.WeaponSpec {
	cfg := r.settings.Weapons.Laser
	if w == object.WeaponRocket {
		cfg = r.settings.Weapons.Rocket
	}
	return object.WeaponSpec{Speed: cfg.Speed, Life: cfg.Life, MaxLive: cfg.MaxLive}
}

// Step advances the simulation one tick.
func (r *Round) Step() {
	if r.paused {
		return
	}
	r.ticks++
	if r.hyperIn > 0 {
		r.hyperIn--
	}

	r.belt.Move()
	if r.ship != nil {
		object.Step(r.ship)
	}
	r.bullets = stepAll(r.bullets)
	r.explosions = stepAll(r.explosions)
	r.stepSaucer()

	r.collideBullets()
	r.collideShip()
	r.respawn()

	if r.belt.Count() == 0 && r.saucer == nil {
		r.startLevel(r.level + 1)
	}
}

// stepAll advances entities and drops the ones that died.
func stepAll(entities []*object.Entity) []*object.Entity {
	kept := entities[:0]
	for _, e := range entities {
		if object.Step(e) {
			kept = append(kept, e)
		}
	}
	clear(entities[len(kept):])
	return kept
}

func (r *Round) stepSaucer() {
	cfg := r.settings.Saucer
	if r.saucer == nil {
		if cfg.Interval <= 0 {
			return
		}
		r.saucerIn--
		if r.saucerIn <= 0 {
			r.saucer = object.NewSaucer(r.rng, cfg.Interval/2)
			r.saucer.ExplosionLength = r.settings.Round.ExplosionLength
			r.saucerIn = cfg.Interval
			r.saucerFire = cfg.FireInterval
			r.trigger(sound.Saucer)
		}
		return
	}

	if r.ship != nil {
		object.Pursue(r.saucer, r.ship.Origin(), cfg.Speed)
	}
	if !object.Step(r.saucer) {
		r.saucer = nil
		return
	}
	if r.ticks%saucerSoundEvery == 0 {
		r.trigger(sound.Saucer)
	}

	r.saucerFire--
	if r.saucerFire <= 0 && r.ship != nil {
		r.saucerFire = cfg.FireInterval
		origin := r.saucer.Origin()
		aim := object.NewTransform(origin)
		aim.SetRadians(geom.Bearing(origin, r.ship.Origin()))
		spec := object.WeaponSpec{Speed: cfg.BulletSpeed, Life: r.settings.Weapons.Laser.Life * 2, MaxLive: 1}
		r.bullets = append(r.bullets, object.NewBullet(
			object.KindSaucer, object.WeaponLaser, spec,
			origin, aim.Heading(), geom.Vector{}, aim.Radians(),
		))
		r.trigger(sound.Fire)
	}
}

func (r *Round) collideBullets() {
	for _, b := range r.bullets {
		if !b.Alive {
			continue
		}
		p := b.Origin()

		if b.Owner == object.KindShip {
			if points := r.belt.CheckPointCollisions(p); points > 0 {
				b.Alive = false
				r.award(points)
				continue
			}
			if r.saucer != nil && geom.PolygonContains(r.saucer.GetPoints(), p) {
				b.Alive = false
				r.destroySaucer()
				r.award(r.settings.Saucer.Score)
			}
			continue
		}

		if r.ship != nil && geom.PolygonContains(r.ship.GetPoints(), p) {
			b.Alive = false
			r.destroyShip()
		}
	}
}

func (r *Round) collideShip() {
	if r.ship == nil {
		return
	}
	for _, v := range r.ship.GetPoints() {
		if points := r.belt.CheckPointCollisions(v); points > 0 {
			r.award(points)
			r.destroyShip()
			return
		}
		if r.saucer != nil && geom.PolygonContains(r.saucer.GetPoints(), v) {
			r.destroySaucer()
			r.destroyShip()
			return
		}
	}
}

func (r *Round) award(points int) {
	for extra := r.score.Add(points); extra > 0; extra-- {
		r.lives++
		r.trigger(sound.Life)
	}
}

func (r *Round) destroyShip() {
	r.ship.ExplosionLength = r.settings.Round.ExplosionLength
	r.explosions = append(r.explosions, r.ship.Explode()...)
	r.ship = nil
	r.thrusting = false
	r.lives--
	r.respawnIn = r.settings.Round.RespawnDelay
	r.trigger(sound.Explode3)
}

func (r *Round) destroySaucer() {
	r.explosions = append(r.explosions, r.saucer.Explode()...)
	r.saucer = nil
	r.trigger(sound.Explode1)
}

// respawn brings the ship back at the center once the delay has passed
// and no asteroid is near.
func (r *Round) respawn() {
	if r.ship != nil || r.lives <= 0 {
		return
	}
	if r.respawnIn > 0 {
		r.respawnIn--
		return
	}
	center := geom.Center()
	if !r.belt.IsCenterSafe(center, r.settings.Round.SafeRadius) {
		return
	}
	if r.saucer != nil && geom.PointInCircle(r.saucer.Origin(), center, r.settings.Round.SafeRadius) {
		return
	}
	r.ship = object.NewShip(center)
}

// Done reports whether the round is over: no lives left and the last
// explosion has faded.
func (r *Round) Done() bool {
	return r.lives <= 0 && r.ship == nil && len(r.explosions) == 0
}

// draw adds the round's entities to scene.
func (r *Round) draw(scene *Scene) {
	for _, a := range r.belt.Asteroids() {
		scene.Polygon(draw.White, a.GetPoints())
	}
	if r.ship != nil {
		scene.Polygon(draw.White, r.ship.GetPoints())
		if r.thrusting {
			scene.Polygon(draw.Orange, object.Flame(r.ship))
		}
	}
	if r.saucer != nil {
		scene.Polygon(draw.Red, r.saucer.GetPoints())
	}
	for _, b := range r.bullets {
		if !b.Alive {
			continue
		}
		c := draw.Yellow
		switch {
		case b.Owner == object.KindSaucer:
			c = draw.Red
		case b.Weapon == object.WeaponRocket:
			c = draw.Orange
		}
		scene.Polygon(c, b.GetPoints())
	}
	for _, e := range r.explosions {
		// Particles cool down to orange for the second half of their life.
		c := draw.Yellow
		if e.Life < e.ExplosionLength*explosionHalfLife {
			c = draw.Orange
		}
		scene.Polygon(c, []geom.Point{e.Origin()})
	}

	r.score.draw(scene, max(r.lives-1, 0))
	if r.paused {
		scene.TextCentered(draw.Yellow, "PAUSED", geom.CanvasHeight/2, 60)
	}
}

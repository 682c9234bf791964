// Package loop drives the game: a mode state machine fed by key events, a
// fixed-rate simulation tick and a repaint path that drops frames while the
// renderer is busy.
package loop

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vectoroids/internal/config"
	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/input"
	"github.com/tomz197/vectoroids/internal/object"
	"github.com/tomz197/vectoroids/internal/sound"
)

// Mode is the controller state.
type Mode int32

const (
	ModePrep Mode = iota
	ModeTitle
	ModeGame
	ModeExit
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePrep:
		return "prep"
	case ModeTitle:
		return "title"
	case ModeGame:
		return "game"
	case ModeExit:
		return "exit"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyInitialized = errors.New("controller already initialized")
	ErrNilRenderer        = errors.New("nil renderer")
)

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	Settings *config.Settings
	Sounds   *sound.Library
	Logger   *log.Logger
	Rand     *rand.Rand

	// ManualTick disables the ticker. Frames advance only through Advance
	// and are painted synchronously.
	ManualTick bool
}

// Frame is the draw data of one tick.
type Frame struct {
	Seq      uint64
	Lines    []draw.Line
	Polygons []draw.Polygon
}

// Stats counts what happened to repaint requests.
type Stats struct {
	Ticks   uint64
	Drawn   uint64
	Dropped uint64
	Failed  uint64
}

// Controller owns one game from the title screen to exit.
type Controller struct {
	settings config.Settings
	logger   *log.Logger
	palette  draw.Palette
	sounds   *sound.Library
	manual   bool

	// bus receives sounds from the simulation; events re-raises them to
	// outside listeners.
	bus         *sound.Bus
	events      *sound.Bus
	unsubscribe func()

	mu       sync.Mutex
	mode     atomic.Int32
	rng      *rand.Rand
	rect     geom.Rect
	weapon   object.Weapon
	keys     keyboard
	score    *Score
	title    *Title
	round    *Round
	renderer draw.Renderer
	seq      uint64

	frames chan Frame
	busy   atomic.Bool
	last   atomic.Pointer[Frame]

	ticks   atomic.Uint64
	drawn   atomic.Uint64
	dropped atomic.Uint64
	failed  atomic.Uint64

	cancel      context.CancelFunc
	tickDone    chan struct{}
	renderDone  chan struct{}
	exited      chan struct{}
	exitOnce    sync.Once
	disposeOnce sync.Once
}

// New creates a controller in Prep mode. Missing sounds or an incomplete
// palette are fatal.
func New(opts Options) (*Controller, error) {
	settings := config.Default()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	palette, err := draw.ParsePalette(settings.Palette)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	lib := opts.Sounds
	if lib == nil {
		if lib, err = sound.LoadDefault(); err != nil {
			return nil, fmt.Errorf("load sounds: %w", err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Controller{
		settings: settings,
		logger:   logger,
		palette:  palette,
		sounds:   lib,
		manual:   opts.ManualTick,
		bus:      sound.NewBus(),
		events:   sound.NewBus(),
		rng:      rng,
		weapon:   object.WeaponLaser,
		score:    NewScore(settings.Round.ExtraLifeScore),
		frames:   make(chan Frame, 1),
		exited:   make(chan struct{}),
	}
	c.unsubscribe = c.bus.Subscribe(c.events.Trigger)
	return c, nil
}

// Initialize attaches the renderer, shows the title screen and starts the
// frame loop.
func (c *Controller) Initialize(renderer draw.Renderer, rect geom.Rect) error {
	if renderer == nil {
		return ErrNilRenderer
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Status() != ModePrep {
		return ErrAlreadyInitialized
	}
	if err := renderer.Initialize(c.palette.Clone()); err != nil {
		return fmt.Errorf("initialize renderer: %w", err)
	}
	c.renderer = renderer
	c.resizeLocked(rect)
	c.title = NewTitle(c.rng)
	c.setMode(ModeTitle)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	if !c.manual {
		c.tickDone = make(chan struct{})
		c.renderDone = make(chan struct{})
		go c.run(ctx)
		go c.render(ctx)
	}

	controllersActive.Inc()
	c.logger.Debug("controller initialized", "width", rect.Width, "height", rect.Height)
	return nil
}

// Status returns the current mode. It never blocks.
func (c *Controller) Status() Mode {
	return Mode(c.mode.Load())
}

func (c *Controller) setMode(m Mode) {
	old := Mode(c.mode.Swap(int32(m)))
	if old != m {
		c.logger.Debug("mode changed", "from", old, "to", m)
	}
	if m == ModeExit {
		c.exitOnce.Do(func() { close(c.exited) })
	}
}

// Exited is closed once the controller reaches Exit.
func (c *Controller) Exited() <-chan struct{} {
	return c.exited
}

// Resize changes the device pixel rectangle. The logical canvas is fixed.
func (c *Controller) Resize(rect geom.Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resizeLocked(rect)
}

func (c *Controller) resizeLocked(rect geom.Rect) {
	c.rect = rect
	if r, ok := c.renderer.(draw.Resizer); ok && !rect.Empty() {
		r.Resize(rect)
	}
}

// Rect returns the device pixel rectangle.
func (c *Controller) Rect() geom.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rect
}

// KeyDown handles a key press. Unknown keys and keys outside Title and
// Game are ignored.
func (c *Controller) KeyDown(key input.Key) {
	if !key.Valid() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch key {
	case input.KeyOne:
		c.weapon = object.WeaponLaser
	case input.KeyTwo:
		c.weapon = object.WeaponRocket
	}

	switch c.Status() {
	case ModeTitle:
		if key == input.KeyEscape {
			c.setMode(ModeExit)
			return
		}
		c.startRound()
	case ModeGame:
		if key == input.KeyEscape {
			c.score.Cancel()
			c.showTitle()
			return
		}
		c.keys.press(key)
	}
}

// KeyUp handles a key release.
func (c *Controller) KeyUp(key input.Key) {
	if !key.Valid() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys.release(key)
}

func (c *Controller) startRound() {
	c.score.Reset()
	c.round = NewRound(c.settings, c.rng, c.score, c.bus.Trigger)
	c.title = nil
	c.keys.reset()
	c.setMode(ModeGame)
	roundsTotal.Inc()
}

func (c *Controller) showTitle() {
	c.round = nil
	c.title = NewTitle(c.rng)
	c.keys.reset()
	c.setMode(ModeTitle)
}

// CurrentWeapon returns the weapon the next shot uses.
func (c *Controller) CurrentWeapon() object.Weapon {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weapon
}

// Score returns the running and high score.
func (c *Controller) Score() (current, high int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.score.Current(), c.score.High()
}

// Sounds returns the clip bytes of every sound by id. The map is a copy.
func (c *Controller) Sounds() map[sound.ID][]byte {
	return c.sounds.Streams()
}

// OnSound registers fn to receive every sound the game wants played.
func (c *Controller) OnSound(fn func(sound.ID)) (unsubscribe func()) {
	return c.events.Subscribe(fn)
}

// Advance runs n ticks synchronously.
func (c *Controller) Advance(n int) {
	for i := 0; i < n; i++ {
		c.tick()
	}
}

// LastFrame returns the most recent frame, or nil before the first tick.
func (c *Controller) LastFrame() *Frame {
	return c.last.Load()
}

// Stats returns repaint counters.
func (c *Controller) Stats() Stats {
	return Stats{
		Ticks:   c.ticks.Load(),
		Drawn:   c.drawn.Load(),
		Dropped: c.dropped.Load(),
		Failed:  c.failed.Load(),
	}
}

// Dispose stops the loop and moves to Exit. It is safe to call more than
// once.
func (c *Controller) Dispose() {
	c.disposeOnce.Do(func() {
		c.mu.Lock()
		wasRunning := c.cancel != nil
		c.setMode(ModeExit)
		c.round = nil
		cancel := c.cancel
		c.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if c.tickDone != nil {
			<-c.tickDone
		}
		if c.renderDone != nil {
			select {
			case <-c.renderDone:
			case <-time.After(c.settings.Loop.RepaintTimeout):
				c.logger.Warn("renderer did not finish before dispose timeout")
			}
		}

		c.unsubscribe()
		if wasRunning {
			controllersActive.Dec()
		}
	})
}

func (c *Controller) run(ctx context.Context) {
	defer close(c.tickDone)

	ticker := time.NewTicker(c.settings.FrameTime())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick advances the active screen by one frame and requests a repaint.
// It is a no-op outside Title and Game.
func (c *Controller) tick() {
	start := time.Now()

	c.mu.Lock()
	var scene Scene
	switch c.Status() {
	case ModeTitle:
		c.title.Step()
		c.title.draw(&scene)
		c.score.draw(&scene, 0)
	case ModeGame:
		held, act := c.keys.take()
		c.round.Apply(held, act, c.weapon)
		c.round.Step()
		c.round.draw(&scene)
		if c.round.Done() {
			c.logger.Debug("round finished", "score", c.score.Current(), "level", c.round.Level())
			c.showTitle()
		}
	default:
		c.mu.Unlock()
		return
	}
	c.seq++
	frame := &Frame{Seq: c.seq, Lines: scene.Lines, Polygons: scene.Polygons}
	c.mu.Unlock()

	c.ticks.Add(1)
	tickDuration.Observe(time.Since(start).Seconds())
	c.publish(frame)
}

// publish hands frame to the renderer unless the previous one is still
// being drawn, in which case it is dropped.
func (c *Controller) publish(frame *Frame) {
	c.last.Store(frame)

	if !c.busy.CompareAndSwap(false, true) {
		c.dropped.Add(1)
		repaintsTotal.WithLabelValues("dropped").Inc()
		return
	}
	if c.manual {
		c.paint(*frame)
		return
	}
	select {
	case c.frames <- *frame:
	default:
		c.busy.Store(false)
	}
}

func (c *Controller) render(ctx context.Context) {
	defer close(c.renderDone)

	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-c.frames:
			c.paint(frame)
		}
	}
}

// paint draws one frame. Renderer errors and panics are counted and
// swallowed.
func (c *Controller) paint(frame Frame) {
	defer c.busy.Store(false)
	defer func() {
		if r := recover(); r != nil {
			c.failed.Add(1)
			repaintsTotal.WithLabelValues("failed").Inc()
			c.logger.Debug("repaint panicked", "frame", frame.Seq, "panic", r)
		}
	}()

	if err := c.renderer.Draw(frame.Lines, frame.Polygons); err != nil {
		c.failed.Add(1)
		repaintsTotal.WithLabelValues("failed").Inc()
		c.logger.Debug("repaint failed", "frame", frame.Seq, "err", err)
		return
	}
	c.drawn.Add(1)
	repaintsTotal.WithLabelValues("drawn").Inc()
}

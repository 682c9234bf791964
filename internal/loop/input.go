package loop

import "github.com/tomz197/vectoroids/internal/input"

// InputState is the held part of the player's input.
type InputState struct {
	Left   bool
	Right  bool
	Thrust bool
}

// Actions are edge-triggered requests collected between two ticks. Each
// key press yields at most one action no matter how long it is held.
type Actions struct {
	Hyperspace bool
	Shoot      bool
	Pause      bool
}

// keyboard folds key transitions into held state and pending actions.
type keyboard struct {
	held    InputState
	down    [input.KeyTwo + 1]bool
	pending Actions
}

// press records a key going down. Repeated presses without a release are
// ignored.
func (k *keyboard) press(key input.Key) {
	if k.down[key] {
		return
	}
	k.down[key] = true

	switch key {
	case input.KeyLeft:
		k.held.Left = true
	case input.KeyRight:
		k.held.Right = true
	case input.KeyUp:
		k.held.Thrust = true
	case input.KeyDown:
		k.pending.Hyperspace = true
	case input.KeySpace:
		k.pending.Shoot = true
	case input.KeyP:
		k.pending.Pause = true
	}
}

func (k *keyboard) release(key input.Key) {
	k.down[key] = false

	switch key {
	case input.KeyLeft:
		k.held.Left = false
	case input.KeyRight:
		k.held.Right = false
	case input.KeyUp:
		k.held.Thrust = false
	}
}

// take returns the held state and the actions gathered since the last call.
func (k *keyboard) take() (InputState, Actions) {
	act := k.pending
	k.pending = Actions{}
	return k.held, act
}

func (k *keyboard) reset() {
	*k = keyboard{}
}

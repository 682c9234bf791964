package sound

import "sync"

type listener struct {
	id int
	fn func(ID)
}

// Bus broadcasts play requests to every subscriber. It has no listener
// limit and never deduplicates: triggering the same ID twice notifies each
// subscriber twice.
type Bus struct {
	mu        sync.RWMutex
	nextID    int
	listeners []listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(ID)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners = append(b.listeners, listener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.listeners[:0]
	for _, l := range b.listeners {
		if l.id != id {
			kept = append(kept, l)
		}
	}
	clear(b.listeners[len(kept):])
	b.listeners = kept
}

// Trigger notifies all subscribers synchronously, in subscription order.
// Subscribers must not block.
func (b *Bus) Trigger(id ID) {
	b.mu.RLock()
	fns := make([]func(ID), len(b.listeners))
	for i, l := range b.listeners {
		fns[i] = l.fn
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(id)
	}
}

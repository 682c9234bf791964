package sound

import "sync"

// Locker is a one-shot mutual exclusion keyed by value. TryLock never
// blocks: it either marks the key busy and hands back a Lock, or fails.
type Locker[T comparable] struct {
	mu   sync.Mutex
	busy map[T]struct{}
}

// NewLocker creates a locker with no keys held.
func NewLocker[T comparable]() *Locker[T] {
	return &Locker[T]{busy: make(map[T]struct{})}
}

// TryLock marks v busy and returns its handle, or false if v is already held.
func (l *Locker[T]) TryLock(v T) (*Lock[T], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.busy[v]; held {
		return nil, false
	}
	l.busy[v] = struct{}{}
	return &Lock[T]{locker: l, key: v}, true
}

// Held reports whether v is currently marked.
func (l *Locker[T]) Held(v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, held := l.busy[v]
	return held
}

func (l *Locker[T]) release(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.busy, v)
}

// Lock is the handle for one held key. Releasing it more than once has no
// further effect, so a stale handle can never clear a newer holder's mark.
type Lock[T comparable] struct {
	locker *Locker[T]
	key    T
	once   sync.Once
}

// Release clears the mark taken by TryLock.
func (k *Lock[T]) Release() {
	k.once.Do(func() { k.locker.release(k.key) })
}

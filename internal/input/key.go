// Package input defines the closed key set the game understands and turns
// raw terminal bytes into key down/up events.
package input

// Key is a normalized key.
type Key int

const (
	KeyEscape Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyP
	KeyOne
	KeyTwo

	keyCount
)

var keyNames = [keyCount]string{
	KeyEscape: "escape",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyUp:     "up",
	KeyDown:   "down",
	KeySpace:  "space",
	KeyP:      "p",
	KeyOne:    "one",
	KeyTwo:    "two",
}

// Valid reports whether k is part of the key set.
func (k Key) Valid() bool {
	return k >= 0 && k < keyCount
}

// String returns the key name.
func (k Key) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return keyNames[k]
}

// ParseKey looks up a key by name.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return Key(k), true
		}
	}
	return 0, false
}

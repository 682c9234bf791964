package input

import (
	"bufio"
	"time"
)

// DefaultKeyHold is how long a key is considered "held" after its last press.
// Terminals send no release events, so a key goes up once it stops repeating.
// It is longer than common auto-repeat delays (250-600ms) so a held key does
// not bounce before the first repeat arrives.
const DefaultKeyHold = 600 * time.Millisecond

// Event is a key transition.
type Event struct {
	Key  Key
	Down bool
}

// Stream delivers input bytes via a channel and tracks which keys are held.
type Stream struct {
	ch       chan byte
	hold     time.Duration
	lastSeen [keyCount]time.Time
	down     [keyCount]bool
	closed   bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader, hold time.Duration) *Stream {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	s := &Stream{
		ch:   make(chan byte, 128),
		hold: hold,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes (non-blocking) and returns the key
// transitions since the previous call.
func (s *Stream) Poll(now time.Time) []Event {
	var buf []byte

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var events []Event
	for _, k := range ParseBytes(buf) {
		s.lastSeen[k] = now
		if !s.down[k] {
			s.down[k] = true
			events = append(events, Event{Key: k, Down: true})
		}
	}

	for k := Key(0); k < keyCount; k++ {
		if s.down[k] && now.Sub(s.lastSeen[k]) >= s.hold {
			s.down[k] = false
			events = append(events, Event{Key: k, Down: false})
		}
	}
	return events
}

// ParseBytes maps raw terminal input to keys. Arrow keys arrive as
// ESC [ A..D; a lone ESC is Escape. Unknown bytes are dropped.
func ParseBytes(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// Check for escape sequences (arrow keys, etc.)
		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A':
				keys = append(keys, KeyUp)
			case 'B':
				keys = append(keys, KeyDown)
			case 'C':
				keys = append(keys, KeyRight)
			case 'D':
				keys = append(keys, KeyLeft)
			}
			i += 2
			continue
		}

		if k, ok := byteKey(b); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// byteKey maps a single byte to a key.
func byteKey(b byte) (Key, bool) {
	switch b {
	case '\x1b', 'q', 'Q', '\x03':
		return KeyEscape, true
	case 'a', 'A', 'j', 'J':
		return KeyLeft, true
	case 'd', 'D', 'l', 'L':
		return KeyRight, true
	case 'w', 'W', 'i', 'I':
		return KeyUp, true
	case 's', 'S', 'k', 'K':
		return KeyDown, true
	case ' ':
		return KeySpace, true
	case 'p', 'P':
		return KeyP, true
	case '1':
		return KeyOne, true
	case '2':
		return KeyTwo, true
	}
	return 0, false
}

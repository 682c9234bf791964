// Package sound decouples requests to play a sound from the playback
// itself: a Library holds the raw clips, a Bus broadcasts play requests and
// a Locker lets a player suppress overlapping copies of a clip.
package sound

// ID names one sound clip.
type ID int

const (
	Fire ID = iota
	Life
	Thrust
	Explode1
	Explode2
	Explode3
	Saucer
)

// IDs lists every sound in declaration order.
var IDs = []ID{Fire, Life, Thrust, Explode1, Explode2, Explode3, Saucer}

var idNames = map[ID]string{
	Fire:     "fire",
	Life:     "life",
	Thrust:   "thrust",
	Explode1: "explode1",
	Explode2: "explode2",
	Explode3: "explode3",
	Saucer:   "saucer",
}

// Clip file names inside the embedded asset directory.
var idFiles = map[ID]string{
	Fire:     "fire.wav",
	Life:     "life.wav",
	Thrust:   "thrust.wav",
	Explode1: "explode1.wav",
	Explode2: "explode2.wav",
	Explode3: "explode3.wav",
	Saucer:   "lsaucer.wav",
}

// String returns the short name of the sound.
func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return "unknown"
}

// File returns the asset file name for the sound.
func (id ID) File() string {
	return idFiles[id]
}

// Parse looks up a sound by its short name.
func Parse(name string) (ID, bool) {
	for id, n := range idNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

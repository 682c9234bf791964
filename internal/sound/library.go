package sound

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

//go:embed assets/*.wav
var assets embed.FS

// ErrMissingSound is returned when a clip is absent from the asset source.
var ErrMissingSound = errors.New("sound: missing clip")

// Library holds the raw WAV bytes of every clip. It is loaded once and read
// only afterwards.
type Library struct {
	clips   map[ID][]byte
	formats map[ID]beep.Format
	lengths map[ID]int
}

// LoadDefault loads the clips embedded in the binary.
func LoadDefault() (*Library, error) {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads every clip from fsys and checks that it decodes. Any missing or
// malformed clip fails the whole load.
func Load(fsys fs.FS) (*Library, error) {
	lib := &Library{
		clips:   make(map[ID][]byte, len(IDs)),
		formats: make(map[ID]beep.Format, len(IDs)),
		lengths: make(map[ID]int, len(IDs)),
	}

	for _, id := range IDs {
		data, err := fs.ReadFile(fsys, id.File())
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s (%s)", ErrMissingSound, id, id.File())
			}
			return nil, fmt.Errorf("read %s: %w", id.File(), err)
		}

		streamer, format, err := wav.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", id.File(), err)
		}
		lib.lengths[id] = streamer.Len()
		streamer.Close()

		lib.clips[id] = data
		lib.formats[id] = format
	}
	return lib, nil
}

// Streams returns the id to WAV bytes mapping. The map is a copy; the byte
// slices are shared and must not be modified.
func (l *Library) Streams() map[ID][]byte {
	out := make(map[ID][]byte, len(l.clips))
	for id, data := range l.clips {
		out[id] = data
	}
	return out
}

// Bytes returns the WAV bytes for id.
func (l *Library) Bytes(id ID) ([]byte, bool) {
	data, ok := l.clips[id]
	return data, ok
}

// Decode opens a new decoder over the clip for id.
func (l *Library) Decode(id ID) (beep.StreamSeekCloser, beep.Format, error) {
	data, ok := l.clips[id]
	if !ok {
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrMissingSound, id)
	}
	return wav.Decode(bytes.NewReader(data))
}

// Format returns the decoded format of the clip for id.
func (l *Library) Format(id ID) beep.Format {
	return l.formats[id]
}

// Duration returns the play time of the clip for id.
func (l *Library) Duration(id ID) time.Duration {
	format, ok := l.formats[id]
	if !ok {
		return 0
	}
	return format.SampleRate.D(l.lengths[id])
}

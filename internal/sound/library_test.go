package sound

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestLoadDefault(t *testing.T) {
	lib, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}

	streams := lib.Streams()
	if len(streams) != len(IDs) {
		t.Errorf("Streams() has %d clips, expected %d", len(streams), len(IDs))
	}
	for _, id := range IDs {
		if len(streams[id]) == 0 {
			t.Errorf("clip %v is empty", id)
		}
		if lib.Duration(id) <= 0 {
			t.Errorf("Duration(%v) = %v, expected > 0", id, lib.Duration(id))
		}
	}
}

func TestStreamsIsCopy(t *testing.T) {
	lib, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}

	streams := lib.Streams()
	delete(streams, Fire)

	if _, ok := lib.Bytes(Fire); !ok {
		t.Error("deleting from Streams() result changed the library")
	}
}

func TestLoadMissing(t *testing.T) {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		t.Fatal(err)
	}

	partial := fstest.MapFS{}
	for _, id := range IDs {
		if id == Saucer {
			continue
		}
		data, err := fs.ReadFile(sub, id.File())
		if err != nil {
			t.Fatal(err)
		}
		partial[id.File()] = &fstest.MapFile{Data: data}
	}

	if _, err := Load(partial); !errors.Is(err, ErrMissingSound) {
		t.Errorf("Load() error = %v, expected %v", err, ErrMissingSound)
	}
}

func TestLoadMalformed(t *testing.T) {
	broken := fstest.MapFS{}
	for _, id := range IDs {
		broken[id.File()] = &fstest.MapFile{Data: []byte("not a wav file")}
	}

	if _, err := Load(broken); err == nil {
		t.Error("Load() with malformed clips should fail")
	}
}

func TestParse(t *testing.T) {
	for _, id := range IDs {
		got, ok := Parse(id.String())
		if !ok || got != id {
			t.Errorf("Parse(%q) = %v, %v, expected %v", id.String(), got, ok, id)
		}
	}
	if _, ok := Parse("bogus"); ok {
		t.Error("Parse(\"bogus\") should fail")
	}
}

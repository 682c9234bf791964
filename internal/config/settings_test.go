package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	s := Default()

	if err := s.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if s.FrameTime() != time.Second/60 {
		t.Errorf("FrameTime() = %v, expected %v", s.FrameTime(), time.Second/60)
	}
	if s.Round.SafeRadius != 2000 {
		t.Errorf("Round.SafeRadius = %d, expected 2000", s.Round.SafeRadius)
	}
	if s.Terminal.KeyHold < 600*time.Millisecond {
		t.Errorf("Terminal.KeyHold = %v, expected at least 600ms", s.Terminal.KeyHold)
	}
	if len(s.Palette) != 4 {
		t.Errorf("len(Palette) = %d, expected 4", len(s.Palette))
	}
}

func TestLoadCustomOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("round:\n  lives: 5\nship:\n  max_speed: 200\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Round.Lives != 5 {
		t.Errorf("Round.Lives = %d, expected 5", s.Round.Lives)
	}
	if s.Ship.MaxSpeed != 200 {
		t.Errorf("Ship.MaxSpeed = %v, expected 200", s.Ship.MaxSpeed)
	}
	// untouched keys keep their defaults
	if s.Round.InitialAsteroids != Default().Round.InitialAsteroids {
		t.Errorf("Round.InitialAsteroids = %d, expected default", s.Round.InitialAsteroids)
	}
}

func TestLoadMissingCustom(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"no lives", func(s *Settings) { s.Round.Lives = 0 }},
		{"negative asteroids", func(s *Settings) { s.Round.InitialAsteroids = -1 }},
		{"negative per level", func(s *Settings) { s.Round.AsteroidsPerLevel = -10 }},
		{"no asteroids ever", func(s *Settings) {
			s.Round.InitialAsteroids = 0
			s.Round.AsteroidsPerLevel = 0
		}},
		{"zero safe radius", func(s *Settings) { s.Round.SafeRadius = 0 }},
		{"zero explosion", func(s *Settings) { s.Round.ExplosionLength = 0 }},
		{"zero bullets", func(s *Settings) { s.Weapons.Rocket.MaxLive = 0 }},
		{"drag above one", func(s *Settings) { s.Ship.Drag = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, expected %v", err, ErrInvalid)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("VECTOROIDS_TEST_KEY", "value")

	if got := GetEnv("VECTOROIDS_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("GetEnv() = %q, expected %q", got, "value")
	}
	if got := GetEnv("VECTOROIDS_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, expected %q", got, "fallback")
	}
}

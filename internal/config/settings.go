package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/vectoroids/internal/geom"
)

//go:embed defaults/vectoroids.yaml
var defaultYAML []byte

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid settings")

// Settings is the complete game configuration.
type Settings struct {
	Loop     LoopSettings      `yaml:"loop"`
	Round    RoundSettings     `yaml:"round"`
	Ship     ShipSettings      `yaml:"ship"`
	Weapons  WeaponSettings    `yaml:"weapons"`
	Saucer   SaucerSettings    `yaml:"saucer"`
	Palette  map[string]string `yaml:"palette"`
	Terminal TerminalSettings  `yaml:"terminal"`
	Log      LogSettings       `yaml:"log"`
}

// LoopSettings controls frame pacing. The tick rate itself is fixed at
// geom.FPS because turn rates are expressed per second.
type LoopSettings struct {
	RepaintTimeout time.Duration `yaml:"repaint_timeout"` // Bound on waiting for the renderer at shutdown
}

// RoundSettings controls one game session. Durations are in ticks.
type RoundSettings struct {
	InitialAsteroids  int `yaml:"initial_asteroids"`
	AsteroidsPerLevel int `yaml:"asteroids_per_level"`
	Lives             int `yaml:"lives"`
	ExtraLifeScore    int `yaml:"extra_life_score"`
	SafeRadius        int `yaml:"safe_radius"`
	ExplosionLength   int `yaml:"explosion_length"`
	RespawnDelay      int `yaml:"respawn_delay"`
}

// ShipSettings controls the player's ship.
type ShipSettings struct {
	RotateSpeed        float64 `yaml:"rotate_speed"` // Degrees per second
	Thrust             float64 `yaml:"thrust"`       // Canvas units per tick²
	MaxSpeed           float64 `yaml:"max_speed"`    // Canvas units per tick
	Drag               float64 `yaml:"drag"`         // Velocity factor per tick without thrust
	HyperspaceCooldown int     `yaml:"hyperspace_cooldown"`
}

// WeaponSettings holds one entry per selectable weapon.
type WeaponSettings struct {
	Laser  Weapon `yaml:"laser"`
	Rocket Weapon `yaml:"rocket"`
}

// Weapon describes a bullet type.
type Weapon struct {
	Speed   float64 `yaml:"speed"`
	Life    int     `yaml:"life"`
	MaxLive int     `yaml:"max_live"`
}

// SaucerSettings controls the enemy saucer. Intervals are in ticks.
type SaucerSettings struct {
	Interval     int     `yaml:"interval"`
	Speed        float64 `yaml:"speed"`
	FireInterval int     `yaml:"fire_interval"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	Score        int     `yaml:"score"`
}

// TerminalSettings controls the terminal front-ends.
type TerminalSettings struct {
	KeyHold time.Duration `yaml:"key_hold"` // Release a key after this long without a repeat
}

// LogSettings controls logging.
type LogSettings struct {
	Level string `yaml:"level"`
}

// Default returns the embedded default settings.
func Default() Settings {
	var s Settings
	if err := yaml.Unmarshal(defaultYAML, &s); err != nil {
		panic(fmt.Sprintf("embedded settings: %v", err))
	}
	return s
}

// Load loads settings.
// Search order: customPath -> ~/.vectoroids/config.yaml -> ./configs/vectoroids.yaml -> embedded default
//
// Files are layered over the defaults, so a file only needs the keys it
// changes. The result is validated.
func Load(customPath string) (Settings, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", userCfgPath, err)
			}
			return cfg, cfg.Validate()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "vectoroids.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config configs/vectoroids.yaml: %w", err)
		}
		return cfg, cfg.Validate()
	}

	return cfg, cfg.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vectoroids", filename)
}

// Validate reports the first setting that cannot drive a game.
func (s Settings) Validate() error {
	switch {
	case s.Round.Lives <= 0:
		return fmt.Errorf("%w: round.lives must be positive, got %d", ErrInvalid, s.Round.Lives)
	case s.Round.InitialAsteroids < 0:
		return fmt.Errorf("%w: round.initial_asteroids must not be negative", ErrInvalid)
	case s.Round.AsteroidsPerLevel < 0:
		return fmt.Errorf("%w: round.asteroids_per_level must not be negative", ErrInvalid)
	case s.Round.InitialAsteroids+s.Round.AsteroidsPerLevel == 0:
		return fmt.Errorf("%w: round.initial_asteroids and round.asteroids_per_level are both zero", ErrInvalid)
	case s.Round.SafeRadius <= 0:
		return fmt.Errorf("%w: round.safe_radius must be positive", ErrInvalid)
	case s.Round.ExplosionLength <= 0:
		return fmt.Errorf("%w: round.explosion_length must be positive", ErrInvalid)
	case s.Weapons.Laser.MaxLive <= 0 || s.Weapons.Rocket.MaxLive <= 0:
		return fmt.Errorf("%w: weapons max_live must be positive", ErrInvalid)
	case s.Weapons.Laser.Life <= 0 || s.Weapons.Rocket.Life <= 0:
		return fmt.Errorf("%w: weapons life must be positive", ErrInvalid)
	case s.Ship.Drag <= 0 || s.Ship.Drag > 1:
		return fmt.Errorf("%w: ship.drag must be in (0, 1], got %v", ErrInvalid, s.Ship.Drag)
	}
	return nil
}

// FrameTime returns the duration of one tick.
func (s Settings) FrameTime() time.Duration {
	return time.Second / geom.FPS
}

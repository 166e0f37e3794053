// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"fmt"
	"strings"
)

// Config contains all tunables for the game.
type Config struct {
	Physics    Physics          `yaml:"physics"`
	Obstacles  Obstacles        `yaml:"obstacles"`
	Player     Player           `yaml:"player"`
	World      World            `yaml:"world"`
	Menu       Menu             `yaml:"menu"`
	Input      Input            `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Physics defines the body's integration parameters.
type Physics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// Obstacles defines obstacle geometry and generation parameters.
type Obstacles struct {
	PipeWidth    int `yaml:"pipe_width"`
	PipeSpacing  int `yaml:"pipe_spacing"`
	GapHeight    int `yaml:"gap_height"`
	TopMargin    int `yaml:"top_margin"`
	BottomMargin int `yaml:"bottom_margin"`
}

// Player defines the body's fixed position and hitbox.
type Player struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// World defines playfield geometry outside the obstacles.
type World struct {
	GroundHeight int `yaml:"ground_height"`
}

// Menu defines the decorative attract-mode behavior.
type Menu struct {
	// BounceFloor is the preview body's bounce height as a fraction of
	// the screen height.
	BounceFloor     float64 `yaml:"bounce_floor"`
	ReboundVelocity float64 `yaml:"rebound_velocity"`
	SpawnChance     float64 `yaml:"spawn_chance"`
}

// Input defines input handling parameters.
type Input struct {
	PrimaryCooldownMs int `yaml:"primary_cooldown_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// Validate checks the config for values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Physics.Gravity <= 0 {
		return fmt.Errorf("config: gravity must be positive, got %v", c.Physics.Gravity)
	}
	if c.Physics.JumpImpulse >= 0 {
		return fmt.Errorf("config: jump_impulse must be negative (up), got %v", c.Physics.JumpImpulse)
	}
	if c.Physics.MaxFallSpeed <= 0 {
		return fmt.Errorf("config: max_fall_speed must be positive, got %v", c.Physics.MaxFallSpeed)
	}
	if c.Physics.BaseSpeed <= 0 {
		return fmt.Errorf("config: base_speed must be positive, got %v", c.Physics.BaseSpeed)
	}
	if c.Obstacles.PipeWidth < 1 {
		return fmt.Errorf("config: pipe_width must be at least 1, got %d", c.Obstacles.PipeWidth)
	}
	if c.Obstacles.PipeSpacing <= c.Obstacles.PipeWidth {
		return fmt.Errorf("config: pipe_spacing %d must exceed pipe_width %d", c.Obstacles.PipeSpacing, c.Obstacles.PipeWidth)
	}
	// The difficulty floor is the lowest gap scaling ever produces; a
	// base below it would be silently raised instead of shrunk.
	if c.Obstacles.GapHeight < minGapHeight {
		return fmt.Errorf("config: gap_height must be at least %d, got %d", minGapHeight, c.Obstacles.GapHeight)
	}
	if c.Obstacles.TopMargin < 0 || c.Obstacles.BottomMargin < 0 {
		return fmt.Errorf("config: margins must not be negative")
	}
	if c.World.GroundHeight < 1 {
		return fmt.Errorf("config: ground_height must be at least 1, got %d", c.World.GroundHeight)
	}
	if c.Player.Width < 1 || c.Player.Height < 1 {
		return fmt.Errorf("config: player dimensions must be at least 1x1")
	}
	if c.Menu.SpawnChance < 0 || c.Menu.SpawnChance > 1 {
		return fmt.Errorf("config: spawn_chance must be in [0, 1], got %v", c.Menu.SpawnChance)
	}
	if c.Input.PrimaryCooldownMs < 0 {
		return fmt.Errorf("config: primary_cooldown_ms must not be negative, got %d", c.Input.PrimaryCooldownMs)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyClassic DifficultyPreset = "classic" // constants stay fixed for the whole run
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyFixed   DifficultyPreset = "fixed" // alias of classic
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyClassic || preset == DifficultyFixed
}

// ParsePreset validates a difficulty preset name, case-insensitively.
func ParsePreset(s string) (DifficultyPreset, error) {
	preset := DifficultyPreset(strings.ToLower(s))
	switch preset {
	case DifficultyClassic, DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return preset, nil
	}
	return "", fmt.Errorf("config: unknown difficulty preset %q (valid: classic, easy, normal, hard, fixed)", s)
}

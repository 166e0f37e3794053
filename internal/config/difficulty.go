package config

import "math"

// Floors below which scaling never pushes the playfield, no matter how
// aggressive the preset is.
const (
	minGapHeight = 4
	minSpacing   = 15
)

// DifficultyManager calculates effective game parameters from the base
// config and the current progression state.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsProgressive returns whether parameters change over the course of a run.
func (d *DifficultyManager) IsProgressive() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0). With
// progression disabled it stays at initial_level for the whole run, so
// every derived parameter stays constant.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsProgressive() {
		return clampF(d.cfg.InitialLevel, 0.0, 1.0)
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return clampF(d.cfg.InitialLevel, 0.0, 1.0)
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return clampF(d.cfg.InitialLevel+progress*(1.0-d.cfg.InitialLevel), 0.0, 1.0)
}

// Speed returns the effective scroll speed based on difficulty level.
func (d *DifficultyManager) Speed(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return base * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// GapHeight returns the effective gap height based on difficulty level.
func (d *DifficultyManager) GapHeight(base int, score int, ticks int) int {
	level := d.Level(score, ticks)
	result := base - int(level*float64(d.cfg.Scaling.GapReduction))
	if result < minGapHeight {
		result = minGapHeight
	}
	return result
}

// Spacing returns the effective obstacle spacing based on difficulty level.
func (d *DifficultyManager) Spacing(base int, score int, ticks int) int {
	level := d.Level(score, ticks)
	result := base - int(level*float64(d.cfg.Scaling.SpacingReduction))
	if result < minSpacing {
		result = minSpacing
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

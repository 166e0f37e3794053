package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It matches the
// embedded defaults/flappy.yaml and is the fallback of last resort when
// even the embedded file fails to parse.
func DefaultConfig() Config {
	return Config{
		Physics: Physics{
			Gravity:      0.25,
			JumpImpulse:  -1.8,
			MaxFallSpeed: 3.0,
			BaseSpeed:    0.8,
		},
		Obstacles: Obstacles{
			PipeWidth:    5,
			PipeSpacing:  40,
			GapHeight:    10,
			TopMargin:    3,
			BottomMargin: 3,
		},
		Player: Player{
			X:      10,
			Width:  2,
			Height: 2,
		},
		World: World{
			GroundHeight: 2,
		},
		Menu: Menu{
			BounceFloor:     0.58,
			ReboundVelocity: -1.1,
			SpawnChance:     0.012,
		},
		Input: Input{
			PrimaryCooldownMs: 150,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false, // classic mode: constants stay fixed
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				GapReduction:     4,
				SpacingReduction: 15,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML config.
func DefaultYAML() []byte {
	return defaultYAML
}

package config

import (
	_ "embed"
)

//go:embed defaults/brickhole.yaml
var defaultBrickholeYAML []byte

// DefaultBrickholeConfig returns the built-in configuration. It mirrors
// defaults/brickhole.yaml and is used when the embedded file cannot be parsed.
func DefaultBrickholeConfig() BrickholeConfig {
	return BrickholeConfig{
		Arena: ArenaConfig{
			UnitsPerCol: 10,
			UnitsPerRow: 20,
			HUDRows:     1,
		},
		Physics: PhysicsConfig{
			BallRadius:  6,
			LaunchSpeed: 5,
			HitFactor:   5,
			SpeedUp:     1.03,
			MaxSpeed:    12,
		},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       12,
			MinWidth:     60,
			MaxFraction:  0.5,
			BottomOffset: 30,
			WidenFactor:  1.5,
		},
		Bricks: BricksConfig{
			Width:                60,
			Height:               20,
			Padding:              10,
			Margin:               40,
			TopOffset:            40,
			BaseRows:             2,
			ExclusionRadius:      60,
			IndestructibleChance: 0.05,
			IndestructibleRow:    1,
			Palette:              []string{"green", "yellow", "orange", "red"},
			IndestructibleColor:  "gray",
		},
		HealthBands: []HealthBandConfig{
			{FromLevel: 1, Weights: []float64{85, 15, 0, 0}},
			{FromLevel: 2, Weights: []float64{70, 25, 5, 0}},
			{FromLevel: 3, Weights: []float64{55, 30, 12, 3}},
			{FromLevel: 4, Weights: []float64{40, 35, 17, 8}},
			{FromLevel: 5, Weights: []float64{30, 35, 22, 13}},
		},
		Zone: ZoneConfig{
			Radius:  25,
			Y:       60,
			MarginX: 50,
		},
		PowerUps: PowerUpsConfig{
			SpawnChance:     0.18,
			FallSpeed:       2.5,
			Size:            16,
			PenetrateFrames: 600,
			Weights: PowerUpWeights{
				ExtraBall:  30,
				ExtraBalls: 15,
				Widen:      25,
				Sticky:     15,
				Penetrate:  15,
			},
		},
		Particles: ParticlesConfig{
			Burst:    12,
			Confetti: 60,
			Speed:    3,
			Decay:    0.03,
		},
		Gameplay: GameplayConfig{
			BrickReward:      10,
			Lives:            3,
			MaxLevel:         5,
			TransitionFrames: 120,
			MessageFrames:    90,
			MessageChance:    0.12,
		},
		Variants: []VariantConfig{
			{
				ID:        "classic",
				Name:      "Classic",
				BallColor: "bright_white",
				Particles: []string{"yellow", "orange", "white"},
				Messages:  []string{"Nice!", "Smash!", "Keep going!", "Clean hit!"},
			},
			{
				ID:        "ember",
				Name:      "Ember",
				BallColor: "orange",
				Particles: []string{"red", "orange", "bright_yellow"},
				Messages:  []string{"Burn!", "Scorched!", "Too hot!", "Ashes!"},
			},
			{
				ID:        "frost",
				Name:      "Frost",
				BallColor: "bright_cyan",
				Particles: []string{"cyan", "bright_blue", "bright_white"},
				Messages:  []string{"Shatter!", "Frozen!", "Ice cold!", "Crack!"},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 4,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.4,
				PaddleShrink:    0.3,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBrickholeYAML
}

// Package config provides YAML-based configuration loading, validation and
// difficulty management for brickhole.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/brickhole/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// MaxBrickHealth caps the health a generated normal brick can have.
const MaxBrickHealth = 4

// BrickholeConfig contains all tunables of the simulation.
type BrickholeConfig struct {
	Arena       ArenaConfig        `yaml:"arena"`
	Physics     PhysicsConfig      `yaml:"physics"`
	Paddle      PaddleConfig       `yaml:"paddle"`
	Bricks      BricksConfig       `yaml:"bricks"`
	HealthBands []HealthBandConfig `yaml:"health_bands"`
	Zone        ZoneConfig         `yaml:"zone"`
	PowerUps    PowerUpsConfig     `yaml:"powerups"`
	Particles   ParticlesConfig    `yaml:"particles"`
	Gameplay    GameplayConfig     `yaml:"gameplay"`
	Variants    []VariantConfig    `yaml:"variants"`
	Difficulty  DifficultyConfig   `yaml:"difficulty"`
}

// ArenaConfig maps terminal cells to world units.
type ArenaConfig struct {
	UnitsPerCol float64 `yaml:"units_per_col"`
	UnitsPerRow float64 `yaml:"units_per_row"`
	HUDRows     int     `yaml:"hud_rows"`
}

// PhysicsConfig defines ball motion. Speeds are world units per frame.
type PhysicsConfig struct {
	BallRadius  float64 `yaml:"ball_radius"`
	LaunchSpeed float64 `yaml:"launch_speed"`
	HitFactor   float64 `yaml:"hit_factor"` // horizontal speed at the paddle edge
	SpeedUp     float64 `yaml:"speed_up"`   // multiplier per paddle hit
	MaxSpeed    float64 `yaml:"max_speed"`
}

// PaddleConfig defines paddle geometry.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MinWidth     float64 `yaml:"min_width"`
	MaxFraction  float64 `yaml:"max_fraction"` // of arena width
	BottomOffset float64 `yaml:"bottom_offset"`
	WidenFactor  float64 `yaml:"widen_factor"`
}

// BricksConfig defines the brick grid.
type BricksConfig struct {
	Width                float64  `yaml:"width"`
	Height               float64  `yaml:"height"`
	Padding              float64  `yaml:"padding"`
	Margin               float64  `yaml:"margin"`
	TopOffset            float64  `yaml:"top_offset"`
	BaseRows             int      `yaml:"base_rows"`
	ExclusionRadius      float64  `yaml:"exclusion_radius"`
	IndestructibleChance float64  `yaml:"indestructible_chance"`
	IndestructibleRow    int      `yaml:"indestructible_min_row"` // rows with a greater index may roll indestructible
	Palette              []string `yaml:"palette"`                // color per health, index 0 = health 1
	IndestructibleColor  string   `yaml:"indestructible_color"`
}

// HealthBandConfig gives relative weights for brick health 1..len(Weights),
// applied from FromLevel until a band with a higher FromLevel takes over.
type HealthBandConfig struct {
	FromLevel int       `yaml:"from_level"`
	Weights   []float64 `yaml:"weights"`
}

// ZoneConfig defines the target zone.
type ZoneConfig struct {
	Radius  float64 `yaml:"radius"`
	Y       float64 `yaml:"y"`
	MarginX float64 `yaml:"margin_x"`
}

// PowerUpsConfig defines spawning and effects of power-ups.
type PowerUpsConfig struct {
	SpawnChance     float64        `yaml:"spawn_chance"`
	FallSpeed       float64        `yaml:"fall_speed"`
	Size            float64        `yaml:"size"`
	PenetrateFrames int            `yaml:"penetrate_frames"`
	Weights         PowerUpWeights `yaml:"weights"`
}

// PowerUpWeights are relative spawn weights per kind.
type PowerUpWeights struct {
	ExtraBall  int `yaml:"extra_ball"`
	ExtraBalls int `yaml:"extra_balls"`
	Widen      int `yaml:"widen"`
	Sticky     int `yaml:"sticky"`
	Penetrate  int `yaml:"penetrate"`
}

// Total returns the sum of all weights.
func (w PowerUpWeights) Total() int {
	return w.ExtraBall + w.ExtraBalls + w.Widen + w.Sticky + w.Penetrate
}

// ParticlesConfig defines cosmetic bursts.
type ParticlesConfig struct {
	Burst    int     `yaml:"burst"`
	Confetti int     `yaml:"confetti"`
	Speed    float64 `yaml:"speed"`
	Decay    float64 `yaml:"decay"` // life lost per frame
}

// GameplayConfig defines session rules.
type GameplayConfig struct {
	BrickReward      int     `yaml:"brick_reward"`
	Lives            int     `yaml:"lives"`
	MaxLevel         int     `yaml:"max_level"`
	TransitionFrames int     `yaml:"transition_frames"`
	MessageFrames    int     `yaml:"message_frames"`
	MessageChance    float64 `yaml:"message_chance"`
}

// VariantConfig is a cosmetic character profile.
type VariantConfig struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	BallColor string   `yaml:"ball_color"`
	Particles []string `yaml:"particles"`
	Messages  []string `yaml:"messages"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty up.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // levels past the first / score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at max difficulty.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to launch speed
	PaddleShrink    float64 `yaml:"paddle_shrink"`    // fraction of paddle width removed
}

// Variant returns the variant with the given id.
func (c BrickholeConfig) Variant(id string) (VariantConfig, bool) {
	for _, v := range c.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return VariantConfig{}, false
}

// Validate reports the first invalid value, wrapped in ErrInvalidConfig.
func (c BrickholeConfig) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Arena.UnitsPerCol > 0 && c.Arena.UnitsPerRow > 0, "arena units must be positive"},
		{c.Arena.HUDRows >= 0, "arena hud_rows must not be negative"},
		{c.Physics.BallRadius > 0, "physics.ball_radius must be positive"},
		{c.Physics.LaunchSpeed > 0, "physics.launch_speed must be positive"},
		{c.Physics.SpeedUp >= 1, "physics.speed_up must be at least 1"},
		{c.Physics.MaxSpeed >= c.Physics.LaunchSpeed, "physics.max_speed must be at least launch_speed"},
		{c.Paddle.Width > 0 && c.Paddle.Height > 0, "paddle size must be positive"},
		{c.Paddle.MinWidth > 0 && c.Paddle.MinWidth <= c.Paddle.Width, "paddle.min_width must be in (0, width]"},
		{c.Paddle.MaxFraction > 0 && c.Paddle.MaxFraction <= 1, "paddle.max_fraction must be in (0, 1]"},
		{c.Paddle.WidenFactor >= 1, "paddle.widen_factor must be at least 1"},
		{c.Bricks.Width > 0 && c.Bricks.Height > 0, "brick size must be positive"},
		{c.Bricks.Padding >= 0 && c.Bricks.Margin >= 0, "brick padding and margin must not be negative"},
		{c.Bricks.BaseRows >= 0, "bricks.base_rows must not be negative"},
		{c.Bricks.IndestructibleChance >= 0 && c.Bricks.IndestructibleChance <= 1, "bricks.indestructible_chance must be in [0, 1]"},
		{len(c.Bricks.Palette) > 0, "bricks.palette must not be empty"},
		{len(c.HealthBands) > 0, "health_bands must not be empty"},
		{c.Zone.Radius > 0, "zone.radius must be positive"},
		{c.PowerUps.SpawnChance >= 0 && c.PowerUps.SpawnChance <= 1, "powerups.spawn_chance must be in [0, 1]"},
		{c.PowerUps.FallSpeed > 0 && c.PowerUps.Size > 0, "powerups fall_speed and size must be positive"},
		{c.PowerUps.PenetrateFrames > 0, "powerups.penetrate_frames must be positive"},
		{c.PowerUps.Weights.Total() > 0, "powerups.weights must not all be zero"},
		{c.Particles.Burst >= 0 && c.Particles.Confetti >= 0, "particle counts must not be negative"},
		{c.Particles.Decay > 0 && c.Particles.Decay <= 1, "particles.decay must be in (0, 1]"},
		{c.Gameplay.Lives > 0, "gameplay.lives must be positive"},
		{c.Gameplay.MaxLevel > 0, "gameplay.max_level must be positive"},
		{c.Gameplay.TransitionFrames > 0, "gameplay.transition_frames must be positive"},
		{c.Gameplay.MessageFrames > 0, "gameplay.message_frames must be positive"},
		{len(c.Variants) > 0, "variants must not be empty"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.msg)
		}
	}

	w := c.PowerUps.Weights
	if w.ExtraBall < 0 || w.ExtraBalls < 0 || w.Widen < 0 || w.Sticky < 0 || w.Penetrate < 0 {
		return fmt.Errorf("%w: powerups.weights must not be negative", ErrInvalidConfig)
	}
	for i, name := range c.Bricks.Palette {
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("%w: bricks.palette[%d]: unknown color %q", ErrInvalidConfig, i, name)
		}
	}
	for i, band := range c.HealthBands {
		if err := band.Validate(); err != nil {
			return fmt.Errorf("health_bands[%d]: %w", i, err)
		}
	}

	seen := make(map[string]bool, len(c.Variants))
	for _, v := range c.Variants {
		if v.ID == "" {
			return fmt.Errorf("%w: variant without id", ErrInvalidConfig)
		}
		if seen[v.ID] {
			return fmt.Errorf("%w: duplicate variant %q", ErrInvalidConfig, v.ID)
		}
		seen[v.ID] = true
		if _, ok := core.ParseColor(v.BallColor); !ok {
			return fmt.Errorf("%w: variant %q: unknown ball color %q", ErrInvalidConfig, v.ID, v.BallColor)
		}
	}
	return nil
}

// Validate checks a single health band.
func (b HealthBandConfig) Validate() error {
	if b.FromLevel < 1 {
		return fmt.Errorf("%w: from_level must be at least 1", ErrInvalidConfig)
	}
	if len(b.Weights) == 0 || len(b.Weights) > MaxBrickHealth {
		return fmt.Errorf("%w: weights must have 1 to %d entries", ErrInvalidConfig, MaxBrickHealth)
	}
	total := 0.0
	for _, w := range b.Weights {
		if w < 0 {
			return fmt.Errorf("%w: weights must not be negative", ErrInvalidConfig)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("%w: weights must not all be zero", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset resolves a preset name. Empty input yields an empty preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

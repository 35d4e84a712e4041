package config

import "math"

// DifficultyManager derives per-level game parameters from the difficulty config.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a game level index (1-based) and score.
func (d *DifficultyManager) Level(levelIndex, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "level":
		progress = float64(levelIndex-1) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// LaunchSpeed returns the ball launch speed for a level.
// Speed increases from base to base * (1 + speedMultiplier).
func (d *DifficultyManager) LaunchSpeed(base float64, levelIndex, score int) float64 {
	return base * (1.0 + d.Level(levelIndex, score)*d.cfg.Scaling.SpeedMultiplier)
}

// PaddleWidth returns the starting paddle width for a level, never below minWidth.
func (d *DifficultyManager) PaddleWidth(base, minWidth float64, levelIndex, score int) float64 {
	w := base * (1.0 - d.Level(levelIndex, score)*d.cfg.Scaling.PaddleShrink)
	return math.Max(minWidth, w)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

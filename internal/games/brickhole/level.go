package brickhole

import (
	"fmt"
	"math"

	"github.com/vovakirdan/brickhole/internal/config"
	"github.com/vovakirdan/brickhole/internal/core"
)

// ErrInvalidConfig is returned (wrapped) when the generator cannot produce a
// sensible layout from its configuration and arena.
var ErrInvalidConfig = config.ErrInvalidConfig

// maxBrickArea is the fraction of the arena height bricks may extend into.
// Rows past it are dropped so the paddle keeps room to play.
const maxBrickArea = 0.6

// zoneAttempts bounds how often the zone is re-placed when its exclusion
// radius swallows every destructible brick.
const zoneAttempts = 8

// LevelConfig is the part of the configuration the generator needs.
type LevelConfig struct {
	Bricks      config.BricksConfig
	Zone        config.ZoneConfig
	HealthBands []config.HealthBandConfig
}

// LevelConfigFrom extracts the generator settings from a full config.
func LevelConfigFrom(cfg config.BrickholeConfig) LevelConfig {
	return LevelConfig{
		Bricks:      cfg.Bricks,
		Zone:        cfg.Zone,
		HealthBands: cfg.HealthBands,
	}
}

// Layout is a freshly generated level.
type Layout struct {
	Zone   Zone
	Bricks []Brick
}

// Generator places the target zone and the brick grid for a level.
type Generator struct {
	rng Rand
	cfg LevelConfig
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng Rand, cfg LevelConfig) *Generator {
	return &Generator{rng: rng, cfg: cfg}
}

// Validate checks the configuration against an arena without generating anything.
func (g *Generator) Validate(arenaW, arenaH float64) error {
	_, _, err := g.validate(arenaW, arenaH)
	return err
}

func (g *Generator) validate(arenaW, arenaH float64) (palette []core.Color, solid core.Color, err error) {
	b, z := g.cfg.Bricks, g.cfg.Zone
	switch {
	case arenaW <= 0 || arenaH <= 0 || math.IsNaN(arenaW) || math.IsNaN(arenaH):
		return nil, 0, fmt.Errorf("%w: arena %vx%v must be positive", ErrInvalidConfig, arenaW, arenaH)
	case arenaW <= 2*z.MarginX:
		return nil, 0, fmt.Errorf("%w: arena width %v leaves no room between zone margins of %v", ErrInvalidConfig, arenaW, z.MarginX)
	case z.Radius <= 0 || z.Y < 0 || z.Y >= arenaH:
		return nil, 0, fmt.Errorf("%w: zone radius %v at y=%v does not fit arena height %v", ErrInvalidConfig, z.Radius, z.Y, arenaH)
	case b.Width <= 0 || b.Height <= 0 || b.Padding < 0:
		return nil, 0, fmt.Errorf("%w: brick size %vx%v padding %v", ErrInvalidConfig, b.Width, b.Height, b.Padding)
	case arenaW-b.Margin < b.Width+b.Padding:
		return nil, 0, fmt.Errorf("%w: arena width %v fits no brick column", ErrInvalidConfig, arenaW)
	case maxBrickRows(b, arenaH) < 1:
		return nil, 0, fmt.Errorf("%w: arena height %v fits no brick row", ErrInvalidConfig, arenaH)
	case len(b.Palette) == 0:
		return nil, 0, fmt.Errorf("%w: empty brick palette", ErrInvalidConfig)
	case len(g.cfg.HealthBands) == 0:
		return nil, 0, fmt.Errorf("%w: empty health table", ErrInvalidConfig)
	}

	palette = make([]core.Color, len(b.Palette))
	for i, name := range b.Palette {
		c, ok := core.ParseColor(name)
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown palette color %q", ErrInvalidConfig, name)
		}
		palette[i] = c
	}
	solid = core.ColorGray
	if b.IndestructibleColor != "" {
		c, ok := core.ParseColor(b.IndestructibleColor)
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown indestructible color %q", ErrInvalidConfig, b.IndestructibleColor)
		}
		solid = c
	}
	for i, band := range g.cfg.HealthBands {
		if err := band.Validate(); err != nil {
			return nil, 0, fmt.Errorf("health band %d: %w", i, err)
		}
	}
	return palette, solid, nil
}

// Generate produces the zone and bricks for levelIndex (1-based).
func (g *Generator) Generate(levelIndex int, arenaW, arenaH float64) (Layout, error) {
	if levelIndex < 1 {
		return Layout{}, fmt.Errorf("%w: level index %d must be at least 1", ErrInvalidConfig, levelIndex)
	}
	palette, solid, err := g.validate(arenaW, arenaH)
	if err != nil {
		return Layout{}, err
	}

	b, z := g.cfg.Bricks, g.cfg.Zone
	weights := g.bandFor(levelIndex).Weights
	rows := min(b.BaseRows+levelIndex, maxBrickRows(b, arenaH))

	for range zoneAttempts {
		zone := Zone{
			X:      z.MarginX + g.rng.Float64()*(arenaW-2*z.MarginX),
			Y:      z.Y,
			Radius: z.Radius,
		}
		bricks := g.placeBricks(zone, rows, arenaW, weights, palette, solid)
		for _, br := range bricks {
			if br.Kind == BrickNormal {
				return Layout{Zone: zone, Bricks: bricks}, nil
			}
		}
	}
	return Layout{}, fmt.Errorf("%w: zone exclusion of %v leaves no destructible brick in a %vx%v arena",
		ErrInvalidConfig, b.ExclusionRadius, arenaW, arenaH)
}

// placeBricks lays out a centered grid of rows, skipping cells near the zone.
func (g *Generator) placeBricks(zone Zone, rows int, arenaW float64, weights []float64, palette []core.Color, solid core.Color) []Brick {
	b := g.cfg.Bricks
	stepX := b.Width + b.Padding
	stepY := b.Height + b.Padding
	cols := int(math.Floor((arenaW - b.Margin) / stepX))
	gridW := float64(cols)*stepX - b.Padding
	offsetX := (arenaW - gridW) / 2

	bricks := make([]Brick, 0, cols*rows)
	for row := range rows {
		for col := range cols {
			brick := Brick{
				X:     offsetX + float64(col)*stepX,
				Y:     b.TopOffset + float64(row)*stepY,
				W:     b.Width,
				H:     b.Height,
				Alive: true,
			}
			if brick.Box().DistToPoint(zone.Pos()) < b.ExclusionRadius {
				continue
			}

			if row > b.IndestructibleRow && g.rng.Float64() < b.IndestructibleChance {
				brick.Kind = BrickIndestructible
				brick.Health = 1
				brick.MaxHealth = 1
				brick.Color = solid
			} else {
				health := weightedIndex(g.rng, weights) + 1
				brick.Health = health
				brick.MaxHealth = health
				brick.Color = palette[min(health, len(palette))-1]
			}
			bricks = append(bricks, brick)
		}
	}
	return bricks
}

// maxBrickRows is how many rows fit in the brick area of an arena arenaH tall.
func maxBrickRows(b config.BricksConfig, arenaH float64) int {
	return int(math.Floor((arenaH*maxBrickArea - b.TopOffset + b.Padding) / (b.Height + b.Padding)))
}

// bandFor returns the band with the largest FromLevel not above levelIndex,
// or the lowest band when every band starts later.
func (g *Generator) bandFor(levelIndex int) config.HealthBandConfig {
	best := -1
	lowest := 0
	for i, band := range g.cfg.HealthBands {
		if band.FromLevel < g.cfg.HealthBands[lowest].FromLevel {
			lowest = i
		}
		if band.FromLevel <= levelIndex && (best < 0 || band.FromLevel > g.cfg.HealthBands[best].FromLevel) {
			best = i
		}
	}
	if best < 0 {
		best = lowest
	}
	return g.cfg.HealthBands[best]
}

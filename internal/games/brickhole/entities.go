// Package brickhole implements the brickhole simulation: procedural levels,
// ball/paddle/brick physics, power-ups, and the session state machine.
// All positions are float64 world units with +y pointing down.
package brickhole

import "github.com/vovakirdan/brickhole/internal/core"

// BrickKind distinguishes ordinary bricks from ones normal hits cannot clear.
type BrickKind int

const (
	BrickNormal BrickKind = iota
	BrickIndestructible
)

// String returns the name of the brick kind.
func (k BrickKind) String() string {
	switch k {
	case BrickNormal:
		return "normal"
	case BrickIndestructible:
		return "indestructible"
	default:
		return "?"
	}
}

// PowerUpKind represents the falling power-up variants.
type PowerUpKind int

const (
	PowerUpExtraBall  PowerUpKind = iota // one extra ball
	PowerUpExtraBalls                    // two extra balls
	PowerUpWiden                         // wider paddle
	PowerUpSticky                        // balls stick to the paddle
	PowerUpPenetrate                     // balls pass through bricks
	powerUpKindCount
)

// String returns the name of the power-up kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpExtraBall:
		return "extra-ball"
	case PowerUpExtraBalls:
		return "extra-balls"
	case PowerUpWiden:
		return "widen"
	case PowerUpSticky:
		return "sticky"
	case PowerUpPenetrate:
		return "penetrate"
	default:
		return "?"
	}
}

// Glyph returns the display character for a power-up kind.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpExtraBall:
		return 'B'
	case PowerUpExtraBalls:
		return 'M'
	case PowerUpWiden:
		return 'W'
	case PowerUpSticky:
		return 'S'
	case PowerUpPenetrate:
		return 'P'
	default:
		return '?'
	}
}

// Ball is a ball in play. Offset is only meaningful while Attached; an
// attached ball has zero velocity and follows the paddle.
type Ball struct {
	X, Y        float64
	DX, DY      float64
	Radius      float64
	Attached    bool
	Offset      float64 // from paddle center
	Penetrating bool
	Alive       bool
}

// Pos returns the ball center.
func (b *Ball) Pos() core.Vec {
	return core.Vec{X: b.X, Y: b.Y}
}

// Speed returns the magnitude of the ball velocity.
func (b *Ball) Speed() float64 {
	return core.Vec{X: b.DX, Y: b.DY}.Len()
}

// Paddle is the player-controlled paddle. X and Y are its top-left corner.
type Paddle struct {
	X, Y          float64
	Width, Height float64
	Sticky        bool
}

// CenterX returns the horizontal center of the paddle.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// Right returns the right edge of the paddle.
func (p *Paddle) Right() float64 {
	return p.X + p.Width
}

// Box returns the paddle bounds.
func (p *Paddle) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Brick is a single brick of the level grid.
type Brick struct {
	X, Y      float64
	W, H      float64
	Health    int
	MaxHealth int
	Kind      BrickKind
	Color     core.Color
	Alive     bool
}

// Box returns the brick bounds.
func (b *Brick) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// PowerUp is a falling pickup. X and Y are its center.
type PowerUp struct {
	X, Y  float64
	VY    float64
	Size  float64
	Kind  PowerUpKind
	Alive bool
}

// Particle is a cosmetic spark. It dies when Life drops to zero.
type Particle struct {
	X, Y   float64
	DX, DY float64
	Life   float64
	Color  core.Color
}

// Zone is the target hole a ball must enter to clear the level.
type Zone struct {
	X, Y   float64
	Radius float64
}

// Pos returns the zone center.
func (z Zone) Pos() core.Vec {
	return core.Vec{X: z.X, Y: z.Y}
}

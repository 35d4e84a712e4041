package brickhole

import (
	"math"

	"github.com/vovakirdan/brickhole/internal/core"
)

// moveBall integrates one free ball and resolves its collisions in priority
// order: target zone, walls, paddle plane, bricks.
func (e *Engine) moveBall(b *Ball) {
	b.X += b.DX
	b.Y += b.DY

	if core.Dist(b.Pos(), e.zone.Pos()) < e.zone.Radius+b.Radius {
		b.Alive = false
		e.cleared = true
		return
	}

	if b.X-b.Radius <= 0 {
		b.X = b.Radius
		b.DX = math.Abs(b.DX)
	} else if b.X+b.Radius >= e.arenaW {
		b.X = e.arenaW - b.Radius
		b.DX = -math.Abs(b.DX)
	}
	if b.Y-b.Radius <= 0 {
		b.Y = b.Radius
		b.DY = math.Abs(b.DY)
	}

	// The floor is open: crossing the paddle plane is either a hit or a loss.
	if b.DY > 0 && b.Y+b.Radius >= e.paddle.Y {
		if b.X >= e.paddle.X && b.X <= e.paddle.Right() {
			e.hitPaddle(b)
			if b.Attached {
				return
			}
		} else {
			b.Alive = false
			e.emit(Event{Kind: EventBallLost})
			return
		}
	}

	e.collideBricks(b)
}

// hitPaddle either attaches the ball (sticky paddle) or bounces it upward with
// a horizontal speed set by where it struck.
func (e *Engine) hitPaddle(b *Ball) {
	e.emit(Event{Kind: EventPaddleHit})
	b.Y = e.paddle.Y - b.Radius

	if e.paddle.Sticky {
		half := e.paddle.Width / 2
		b.Attached = true
		b.Offset = core.ClampF(b.X-e.paddle.CenterX(), -half, half)
		b.DX, b.DY = 0, 0
		return
	}

	phys := e.cfg.Physics
	b.DY = -math.Abs(b.DY)
	b.DX = e.hitOffset(b.X) * phys.HitFactor
	b.DX *= phys.SpeedUp
	b.DY *= phys.SpeedUp
	e.capSpeed(b)
}

// hitOffset maps x to [-1, 1] across the paddle, 0 at its center.
func (e *Engine) hitOffset(x float64) float64 {
	half := e.paddle.Width / 2
	if half <= 0 {
		return 0
	}
	return core.ClampF((x-e.paddle.CenterX())/half, -1, 1)
}

// capSpeed scales the velocity down to the configured maximum, keeping its direction.
func (e *Engine) capSpeed(b *Ball) {
	limit := e.cfg.Physics.MaxSpeed
	if s := b.Speed(); s > limit && s > 0 {
		k := limit / s
		b.DX *= k
		b.DY *= k
	}
}

// launchAttached releases every attached ball upward using the paddle-hit
// offset rule, so a centered ball goes straight up.
func (e *Engine) launchAttached() {
	speed := e.difficulty.LaunchSpeed(e.cfg.Physics.LaunchSpeed, e.level, e.score)
	for i := range e.balls {
		b := &e.balls[i]
		if !b.Alive || !b.Attached {
			continue
		}
		e.trackPaddle(b)
		b.DX = e.hitOffset(b.X) * e.cfg.Physics.HitFactor
		b.DY = -speed
		b.Attached = false
		b.Offset = 0
		e.capSpeed(b)
	}
}

// trackPaddle places an attached ball on top of the paddle at its offset.
func (e *Engine) trackPaddle(b *Ball) {
	b.X = e.paddle.CenterX() + b.Offset
	b.Y = e.paddle.Y - b.Radius
	b.DX, b.DY = 0, 0
}

// movePaddle centers the paddle on x, kept inside the arena.
func (e *Engine) movePaddle(x float64) {
	left := x - e.paddle.Width/2
	e.paddle.X = core.ClampF(left, 0, max(e.arenaW-e.paddle.Width, 0))
}

// collideBricks tests the ball center against every live brick. There is no
// early exit: one ball may hit several bricks in a frame, and each hit
// flips the vertical velocity of a non-penetrating ball. The test is a point
// test, so a fast ball can pass through a thin brick between frames.
func (e *Engine) collideBricks(b *Ball) {
	p := b.Pos()
	for i := range e.bricks {
		br := &e.bricks[i]
		if !br.Alive || !br.Box().ContainsPoint(p) {
			continue
		}

		if !b.Penetrating {
			b.DY = -b.DY
		}

		switch {
		case b.Penetrating:
			br.Health = 0
		case br.Kind == BrickIndestructible:
			continue
		default:
			br.Health--
		}

		if br.Health <= 0 {
			e.destroyBrick(br)
		}
	}
}

// destroyBrick marks a brick dead and pays out score, a possible power-up,
// a possible flavor message and a particle burst.
func (e *Engine) destroyBrick(br *Brick) {
	br.Alive = false
	br.Health = 0
	e.score += e.cfg.Gameplay.BrickReward
	e.emit(Event{Kind: EventBrickDestroyed})

	c := br.Box().Center()
	if br.Kind == BrickNormal && e.rng.Float64() < e.cfg.PowerUps.SpawnChance {
		e.spawnPowerUp(c.X, c.Y)
	}
	if len(e.variant.Messages) > 0 && e.rng.Float64() < e.cfg.Gameplay.MessageChance {
		e.showMessage(e.variant.Messages[e.rng.Intn(len(e.variant.Messages))])
	}
	e.burst(c.X, c.Y, e.cfg.Particles.Burst, e.variant.Particles, e.cfg.Particles.Speed)
}

// showMessage displays a flavor message until it expires.
func (e *Engine) showMessage(msg string) {
	e.message = msg
	e.deferred.Schedule(DeferMessageExpiry, e.frame+uint64(e.cfg.Gameplay.MessageFrames), func() { //#nosec G115 -- validated positive
		e.message = ""
	})
}

package brickhole

// spawnPowerUp drops a power-up of a weighted random kind at (x, y).
func (e *Engine) spawnPowerUp(x, y float64) {
	cfg := e.cfg.PowerUps
	e.powerUps = append(e.powerUps, PowerUp{
		X:     x,
		Y:     y,
		VY:    cfg.FallSpeed,
		Size:  cfg.Size,
		Kind:  e.rollPowerUpKind(),
		Alive: true,
	})
}

// rollPowerUpKind selects a power-up kind based on the configured weights.
func (e *Engine) rollPowerUpKind() PowerUpKind {
	w := e.cfg.PowerUps.Weights
	weights := []float64{
		PowerUpExtraBall:  float64(w.ExtraBall),
		PowerUpExtraBalls: float64(w.ExtraBalls),
		PowerUpWiden:      float64(w.Widen),
		PowerUpSticky:     float64(w.Sticky),
		PowerUpPenetrate:  float64(w.Penetrate),
	}
	if i := weightedIndex(e.rng, weights); i >= 0 {
		return PowerUpKind(i)
	}
	return PowerUpWiden
}

// updatePowerUps moves falling power-ups, applies the ones the paddle catches
// and discards the ones that leave the arena. A caught power-up is removed in
// the same pass that applies it, so it can only ever be claimed once.
func (e *Engine) updatePowerUps() {
	pTop := e.paddle.Y
	pBottom := e.paddle.Y + e.paddle.Height

	for i := range e.powerUps {
		p := &e.powerUps[i]
		if !p.Alive {
			continue
		}
		p.Y += p.VY

		half := p.Size / 2
		if p.Y+half >= pTop && p.Y-half <= pBottom && p.X >= e.paddle.X && p.X <= e.paddle.Right() {
			p.Alive = false
			e.applyPowerUp(p.Kind)
			continue
		}
		if p.Y-half > e.arenaH {
			p.Alive = false
		}
	}

	kept := e.powerUps[:0]
	for _, p := range e.powerUps {
		if p.Alive {
			kept = append(kept, p)
		}
	}
	e.powerUps = kept
}

// applyPowerUp runs the effect of a collected power-up.
func (e *Engine) applyPowerUp(kind PowerUpKind) {
	e.emit(Event{Kind: EventPowerUpCollected, PowerUp: kind})

	switch kind {
	case PowerUpExtraBall:
		e.spawnExtraBalls(1)
	case PowerUpExtraBalls:
		e.spawnExtraBalls(2)
	case PowerUpWiden:
		center := e.paddle.CenterX()
		e.paddle.Width = min(e.paddle.Width*e.cfg.Paddle.WidenFactor, e.maxPaddleWidth())
		e.movePaddle(center)
		for i := range e.balls {
			if e.balls[i].Attached {
				e.trackPaddle(&e.balls[i])
			}
		}
	case PowerUpSticky:
		e.paddle.Sticky = true
	case PowerUpPenetrate:
		for i := range e.balls {
			if e.balls[i].Alive {
				e.balls[i].Penetrating = true
			}
		}
		due := e.frame + uint64(e.cfg.PowerUps.PenetrateFrames) //#nosec G115 -- validated positive
		e.deferred.Schedule(DeferPenetrateExpiry, due, e.endPenetration)
	}
}

func (e *Engine) endPenetration() {
	for i := range e.balls {
		e.balls[i].Penetrating = false
	}
}

// spawnExtraBalls launches n balls upward from the first live ball, or from
// the paddle when no ball is in play.
func (e *Engine) spawnExtraBalls(n int) {
	x, y := e.paddle.CenterX(), e.paddle.Y-e.cfg.Physics.BallRadius
	for i := range e.balls {
		if e.balls[i].Alive {
			x, y = e.balls[i].X, e.balls[i].Y
			break
		}
	}

	speed := e.difficulty.LaunchSpeed(e.cfg.Physics.LaunchSpeed, e.level, e.score)
	for range n {
		b := Ball{
			X:      x,
			Y:      y,
			DX:     (e.rng.Float64()*2 - 1) * e.cfg.Physics.HitFactor,
			DY:     -speed,
			Radius: e.cfg.Physics.BallRadius,
			Alive:  true,
		}
		e.capSpeed(&b)
		e.balls = append(e.balls, b)
	}
}

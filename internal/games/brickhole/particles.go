package brickhole

import (
	"math"

	"github.com/vovakirdan/brickhole/internal/core"
)

var confettiColors = []core.Color{
	core.ColorBrightRed,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
	core.ColorBrightBlue,
	core.ColorBrightMagenta,
}

// burst emits n particles from (x, y) in random directions.
func (e *Engine) burst(x, y float64, n int, palette []core.Color, speed float64) {
	if len(palette) == 0 {
		palette = []core.Color{core.ColorWhite}
	}
	for i := range n {
		angle := e.rng.Float64() * 2 * math.Pi
		v := speed * (0.3 + 0.7*e.rng.Float64())
		e.particles = append(e.particles, Particle{
			X:     x,
			Y:     y,
			DX:    math.Cos(angle) * v,
			DY:    math.Sin(angle) * v,
			Life:  1,
			Color: palette[i%len(palette)],
		})
	}
}

// updateParticles moves particles and drops the ones whose life ran out.
func (e *Engine) updateParticles() {
	decay := e.cfg.Particles.Decay
	kept := e.particles[:0]
	for _, p := range e.particles {
		p.X += p.DX
		p.Y += p.DY
		p.Life -= decay
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	e.particles = kept
}

package brickhole

import "math"

// Autopilot steers the paddle from snapshots. It is used by the headless
// simulator and by tests that need long-running sessions.
type Autopilot struct {
	// Aim is the fraction of the paddle half-width used to angle returns
	// toward the target zone. 0 plays every ball back straight.
	Aim float64
}

// Decide returns the paddle x to request and whether to launch.
func (a Autopilot) Decide(snap Snapshot) (x float64, launch bool) {
	x = snap.Paddle.CenterX()

	var target *Ball
	for i := range snap.Balls {
		b := &snap.Balls[i]
		if b.Attached {
			launch = true
			continue
		}
		if b.DY <= 0 {
			continue
		}
		if target == nil || b.Y > target.Y {
			target = b
		}
	}
	if target == nil {
		return x, launch
	}

	// Predict where the ball crosses the paddle plane, folding wall bounces.
	frames := (snap.Paddle.Y - target.Radius - target.Y) / target.DY
	landX := foldInto(target.X+target.DX*frames, target.Radius, snap.ArenaW-target.Radius)

	// Offset the paddle so the ball strikes the side that sends it toward the zone.
	side := math.Copysign(1, snap.Zone.X-landX)
	return landX - side*a.Aim*snap.Paddle.Width/2, launch
}

// foldInto reflects v into [lo, hi] the way walls reflect a ball.
func foldInto(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	m := math.Mod(v-lo, 2*span)
	if m < 0 {
		m += 2 * span
	}
	if m > span {
		m = 2*span - m
	}
	return lo + m
}

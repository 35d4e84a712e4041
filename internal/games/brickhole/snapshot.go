package brickhole

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/brickhole/internal/core"
)

// Snapshot is a read-only copy of the engine state for renderers and tests.
// Slices are copies; mutating them does not affect the engine.
type Snapshot struct {
	Frame    uint64
	Phase    Phase
	Variant  string
	Score    int
	Lives    int
	Level    int
	MaxLevel int

	ArenaW, ArenaH float64

	Paddle    Paddle
	Balls     []Ball
	Bricks    []Brick // alive only
	PowerUps  []PowerUp
	Particles []Particle
	Zone      Zone

	BallColor core.Color
	Message   string
	// Transition runs from 0 to 1 during the level interstitial.
	Transition float64
	// PenetrateLeft is the number of frames until penetration expires, 0 if inactive.
	PenetrateLeft uint64

	RNGState uint64
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:      e.frame,
		Phase:      e.phase,
		Variant:    e.variant.ID,
		Score:      e.score,
		Lives:      e.lives,
		Level:      e.level,
		MaxLevel:   e.cfg.Gameplay.MaxLevel,
		ArenaW:     e.arenaW,
		ArenaH:     e.arenaH,
		Paddle:     e.paddle,
		Balls:      append([]Ball(nil), e.balls...),
		PowerUps:   append([]PowerUp(nil), e.powerUps...),
		Particles:  append([]Particle(nil), e.particles...),
		Zone:       e.zone,
		BallColor:  e.variant.BallColor,
		Message:    e.message,
		Transition: e.progress,
		RNGState:   e.rng.State(),
	}

	snap.Bricks = make([]Brick, 0, len(e.bricks))
	for _, b := range e.bricks {
		if b.Alive {
			snap.Bricks = append(snap.Bricks, b)
		}
	}

	if due, ok := e.deferred.Pending(DeferPenetrateExpiry); ok && due > e.frame {
		snap.PenetrateLeft = due - e.frame
	}
	return snap
}

// BricksRemaining counts destructible bricks still alive.
func (snap *Snapshot) BricksRemaining() int {
	n := 0
	for _, b := range snap.Bricks {
		if b.Kind == BrickNormal {
			n++
		}
	}
	return n
}

// Hash returns an FNV-1a hash over the simulation state (particles and the
// flavor message excluded) for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	u := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	f := func(v float64) { u(math.Float64bits(v)) }
	i := func(v int) { u(uint64(v)) } //#nosec G115 -- hash computation
	bit := func(v bool) {
		if v {
			u(1)
		} else {
			u(0)
		}
	}

	u(snap.Frame)
	i(int(snap.Phase))
	_, _ = h.Write([]byte(snap.Variant))
	i(snap.Score)
	i(snap.Lives)
	i(snap.Level)
	f(snap.ArenaW)
	f(snap.ArenaH)

	f(snap.Paddle.X)
	f(snap.Paddle.Y)
	f(snap.Paddle.Width)
	bit(snap.Paddle.Sticky)

	i(len(snap.Balls))
	for _, b := range snap.Balls {
		f(b.X)
		f(b.Y)
		f(b.DX)
		f(b.DY)
		f(b.Offset)
		bit(b.Attached)
		bit(b.Penetrating)
	}

	i(len(snap.Bricks))
	for _, b := range snap.Bricks {
		f(b.X)
		f(b.Y)
		i(b.Health)
		i(int(b.Kind))
	}

	i(len(snap.PowerUps))
	for _, p := range snap.PowerUps {
		f(p.X)
		f(p.Y)
		i(int(p.Kind))
	}

	f(snap.Zone.X)
	f(snap.Zone.Y)
	f(snap.Transition)
	u(snap.PenetrateLeft)
	u(snap.RNGState)

	return h.Sum64()
}

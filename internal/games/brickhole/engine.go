package brickhole

import (
	"errors"
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/brickhole/internal/config"
)

var (
	// ErrUnknownVariant is returned by StartSession for an unconfigured variant id.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrSessionActive is returned by StartSession outside the menu phase.
	ErrSessionActive = errors.New("session already active")
)

// Engine owns the entity model and advances it one frame per Step.
// It is not safe for concurrent use; callers drive it from a single goroutine
// and only touch it through commands and snapshots.
type Engine struct {
	cfg        config.BrickholeConfig
	difficulty *config.DifficultyManager
	rng        *RNG
	gen        *Generator
	variants   []Variant

	arenaW, arenaH float64

	phase   Phase
	variant Variant
	score   int
	lives   int
	level   int
	frame   uint64

	paddle    Paddle
	balls     []Ball
	bricks    []Brick
	powerUps  []PowerUp
	particles []Particle
	zone      Zone

	deferred   DeferredQueue
	message    string
	transition *gween.Tween
	progress   float64
	cleared    bool

	pendingX      float64
	hasPendingX   bool
	pendingLaunch bool

	events []Event
	err    error
}

// NewEngine validates cfg and the arena and returns an engine in the menu phase.
func NewEngine(cfg config.BrickholeConfig, arenaW, arenaH float64, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewRNG(seed)
	e := &Engine{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rng,
		gen:        NewGenerator(rng, LevelConfigFrom(cfg)),
		variants:   VariantsFrom(cfg.Variants),
		phase:      PhaseMenu,
	}
	if err := e.Resize(arenaW, arenaH); err != nil {
		return nil, err
	}
	e.variant = e.variants[0]
	return e, nil
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() config.BrickholeConfig {
	return e.cfg
}

// Variants returns the selectable character variants.
func (e *Engine) Variants() []Variant {
	return append([]Variant(nil), e.variants...)
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Err returns the error that forced the session to end, if any.
func (e *Engine) Err() error {
	return e.err
}

// ArenaSize returns the arena dimensions in world units.
func (e *Engine) ArenaSize() (w, h float64) {
	return e.arenaW, e.arenaH
}

// Resize changes the arena and clamps the zone, paddle and free balls back inside.
// Bricks left outside the new arena are dropped without scoring.
// The arena is rejected, and the old one kept, if no level could be generated in it.
func (e *Engine) Resize(arenaW, arenaH float64) error {
	if err := e.gen.Validate(arenaW, arenaH); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	p, z := e.cfg.Paddle, e.cfg.Zone
	if paddleY := arenaH - p.BottomOffset - p.Height; paddleY <= z.Y+z.Radius {
		return fmt.Errorf("resize: %w: paddle at y=%v would sit above the zone bottom %v",
			ErrInvalidConfig, paddleY, z.Y+z.Radius)
	}
	e.arenaW, e.arenaH = arenaW, arenaH

	if e.zone.Radius > 0 {
		e.zone.X = clampInside(e.zone.X, e.zone.Radius, arenaW)
		e.zone.Y = clampInside(e.zone.Y, e.zone.Radius, arenaH)
	}

	e.paddle.Width = min(e.paddle.Width, e.maxPaddleWidth())
	e.paddle.Height = e.cfg.Paddle.Height
	e.paddle.Y = arenaH - e.cfg.Paddle.BottomOffset - e.paddle.Height
	e.movePaddle(e.paddle.CenterX())

	for i := range e.balls {
		b := &e.balls[i]
		if b.Attached {
			e.trackPaddle(b)
			continue
		}
		b.X = clampInside(b.X, b.Radius, arenaW)
		b.Y = min(b.Y, arenaH)
	}

	for i := range e.bricks {
		br := &e.bricks[i]
		if br.X < 0 || br.Box().Right() > arenaW || br.Box().Bottom() > e.paddle.Y {
			br.Alive = false
		}
	}
	e.compactBricks()
	return nil
}

// StartSession begins a new session at level 1 with the given variant.
func (e *Engine) StartSession(variantID string) error {
	if e.phase != PhaseMenu {
		return fmt.Errorf("start %q in phase %s: %w", variantID, e.phase, ErrSessionActive)
	}
	v, ok := e.findVariant(variantID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, variantID)
	}

	e.variant = v
	e.score = 0
	e.level = 1
	e.lives = e.cfg.Gameplay.Lives
	e.frame = 0
	e.err = nil
	e.particles = e.particles[:0]
	if err := e.startLevel(); err != nil {
		return err
	}
	e.phase = PhasePlaying
	return nil
}

// Acknowledge returns from a terminal phase to the menu. It reports whether
// anything changed.
func (e *Engine) Acknowledge() bool {
	if !e.phase.Terminal() {
		return false
	}
	e.phase = PhaseMenu
	e.bricks = e.bricks[:0]
	e.zone = Zone{}
	e.balls = e.balls[:0]
	e.powerUps = e.powerUps[:0]
	e.particles = e.particles[:0]
	e.deferred.Clear()
	e.message = ""
	e.clearCommands()
	return true
}

// SetPaddleX queues a move of the paddle center to x for the next step.
// Ignored outside the playing phase and for NaN or infinite x.
func (e *Engine) SetPaddleX(x float64) {
	if e.phase != PhasePlaying || math.IsNaN(x) || math.IsInf(x, 0) {
		return
	}
	e.pendingX = x
	e.hasPendingX = true
}

// Launch queues a launch of all attached balls for the next step.
// Ignored outside the playing phase; a no-op when no ball is attached.
func (e *Engine) Launch() {
	if e.phase != PhasePlaying {
		return
	}
	e.pendingLaunch = true
}

// Step advances the simulation by one frame and returns the frame's events.
func (e *Engine) Step() []Event {
	e.events = nil

	switch e.phase {
	case PhasePlaying:
		e.stepPlaying()
	case PhaseLevelTransition:
		e.stepTransition()
	case PhaseWon:
		// Confetti keeps falling; nothing else moves.
		e.updateParticles()
	}

	return e.events
}

func (e *Engine) stepPlaying() {
	e.frame++

	if e.hasPendingX {
		e.movePaddle(e.pendingX)
	}
	launch := e.pendingLaunch
	e.clearCommands()

	e.deferred.Drain(e.frame)

	for i := range e.balls {
		if e.balls[i].Attached {
			e.trackPaddle(&e.balls[i])
		}
	}
	if launch {
		e.launchAttached()
	}

	e.cleared = false
	for i := range e.balls {
		b := &e.balls[i]
		if !b.Alive || b.Attached {
			continue
		}
		e.moveBall(b)
		if e.cleared {
			break
		}
	}
	e.compactBalls()
	e.compactBricks()

	if e.cleared || e.normalBricksLeft() == 0 {
		e.clearLevel()
		return
	}

	e.updatePowerUps()
	e.updateParticles()

	if len(e.balls) == 0 {
		e.loseLife()
	}
}

func (e *Engine) stepTransition() {
	e.updateParticles()

	cur, done := e.transition.Update(1)
	e.progress = float64(cur)
	if !done {
		return
	}
	e.transition = nil

	if e.level >= e.cfg.Gameplay.MaxLevel {
		e.phase = PhaseWon
		e.burst(e.arenaW/2, e.arenaH/3, e.cfg.Particles.Confetti, confettiColors, e.cfg.Particles.Speed*2)
		e.emit(Event{Kind: EventSessionWon})
		return
	}

	e.level++
	if err := e.startLevel(); err != nil {
		e.fail(err)
		return
	}
	e.phase = PhasePlaying
}

// clearLevel freezes play and starts the interstitial.
func (e *Engine) clearLevel() {
	e.emit(Event{Kind: EventLevelCleared, Level: e.level})
	e.phase = PhaseLevelTransition
	e.transition = gween.New(0, 1, float32(e.cfg.Gameplay.TransitionFrames), ease.OutQuad)
	e.progress = 0
	e.clearCommands()
}

// loseLife handles the last live ball leaving play.
func (e *Engine) loseLife() {
	e.lives--
	if e.lives <= 0 {
		e.lives = 0
		e.phase = PhaseGameOver
		e.deferred.Clear()
		e.clearCommands()
		e.emit(Event{Kind: EventSessionOver})
		return
	}
	e.resetRound()
}

// fail ends the session after an internal error.
func (e *Engine) fail(err error) {
	e.err = err
	e.phase = PhaseGameOver
	e.emit(Event{Kind: EventSessionOver})
}

// startLevel generates the current level and resets the round.
func (e *Engine) startLevel() error {
	layout, err := e.gen.Generate(e.level, e.arenaW, e.arenaH)
	if err != nil {
		return fmt.Errorf("generate level %d: %w", e.level, err)
	}
	e.zone = layout.Zone
	e.bricks = layout.Bricks
	e.resetRound()
	return nil
}

// resetRound restores the paddle and a single attached ball to the
// level-start configuration and drops in-flight power-ups and timers.
func (e *Engine) resetRound() {
	width := e.difficulty.PaddleWidth(e.cfg.Paddle.Width, e.cfg.Paddle.MinWidth, e.level, e.score)
	e.paddle = Paddle{
		Width:  min(width, e.maxPaddleWidth()),
		Height: e.cfg.Paddle.Height,
		Y:      e.arenaH - e.cfg.Paddle.BottomOffset - e.cfg.Paddle.Height,
	}
	e.movePaddle(e.arenaW / 2)

	e.powerUps = e.powerUps[:0]
	e.deferred.Clear()
	e.message = ""
	e.clearCommands()

	e.balls = e.balls[:0]
	e.balls = append(e.balls, Ball{Radius: e.cfg.Physics.BallRadius, Attached: true, Alive: true})
	e.trackPaddle(&e.balls[0])
}

func (e *Engine) clearCommands() {
	e.hasPendingX = false
	e.pendingLaunch = false
}

func (e *Engine) findVariant(id string) (Variant, bool) {
	for _, v := range e.variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

func (e *Engine) normalBricksLeft() int {
	n := 0
	for i := range e.bricks {
		if e.bricks[i].Alive && e.bricks[i].Kind == BrickNormal {
			n++
		}
	}
	return n
}

func (e *Engine) compactBalls() {
	kept := e.balls[:0]
	for _, b := range e.balls {
		if b.Alive {
			kept = append(kept, b)
		}
	}
	e.balls = kept
}

func (e *Engine) compactBricks() {
	kept := e.bricks[:0]
	for _, b := range e.bricks {
		if b.Alive {
			kept = append(kept, b)
		}
	}
	e.bricks = kept
}

func (e *Engine) maxPaddleWidth() float64 {
	return e.arenaW * e.cfg.Paddle.MaxFraction
}

// clampInside keeps a center coordinate at least r away from both ends of [0, size].
func clampInside(v, r, size float64) float64 {
	if size <= 2*r {
		return size / 2
	}
	return max(r, min(v, size-r))
}

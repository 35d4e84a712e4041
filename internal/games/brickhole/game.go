package brickhole

import (
	"github.com/vovakirdan/brickhole/internal/config"
	"github.com/vovakirdan/brickhole/internal/core"
)

// keyNudge is how far one Left/Right key press moves the paddle, as a
// fraction of arena width.
const keyNudge = 0.03

// Minimum terminal size for a playable arena.
const (
	MinScreenW = 30
	MinScreenH = 15
)

// Game adapts the Engine to the terminal platform: it maps screen size to
// arena size, input frames to engine commands, and renders snapshots.
type Game struct {
	cfg     config.BrickholeConfig
	variant string
	engine  *Engine
	runtime core.RuntimeConfig
	events  []Event
	err     error
	// tooSmall is set when the terminal cannot hold an arena.
	tooSmall bool
}

// New creates a game that plays the given variant.
func New(cfg config.BrickholeConfig, variantID string) *Game {
	return &Game{cfg: cfg, variant: variantID}
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "brickhole"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Brickhole"
}

// Variant returns the variant id this game plays.
func (g *Game) Variant() string {
	return g.variant
}

// ArenaFor converts a terminal size to arena dimensions.
func ArenaFor(cfg config.ArenaConfig, screenW, screenH int) (w, h float64) {
	return float64(screenW) * cfg.UnitsPerCol, float64(screenH-cfg.HUDRows) * cfg.UnitsPerRow
}

// Reset builds a fresh engine for the screen size and starts a session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.events = nil
	g.err = nil
	g.engine = nil
	g.tooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH
	if g.tooSmall {
		return
	}

	w, h := ArenaFor(g.cfg.Arena, runtime.ScreenW, runtime.ScreenH)
	engine, err := NewEngine(g.cfg, w, h, runtime.Seed)
	if err != nil {
		g.err = err
		g.tooSmall = true
		return
	}
	if err := engine.StartSession(g.variant); err != nil {
		g.err = err
		return
	}
	g.engine = engine
}

// Resize adapts the arena to a new terminal size without restarting.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW, g.runtime.ScreenH = screenW, screenH
	if g.engine == nil {
		g.Reset(g.runtime)
		return
	}
	g.tooSmall = screenW < MinScreenW || screenH < MinScreenH
	if g.tooSmall {
		return
	}
	w, h := ArenaFor(g.cfg.Arena, screenW, screenH)
	if err := g.engine.Resize(w, h); err != nil {
		g.tooSmall = true
	}
}

// Step maps input to engine commands and advances one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil
	if g.engine == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	e := g.engine
	if e.Phase().Terminal() {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionLaunch) {
			e.Acknowledge()
			if err := e.StartSession(g.variant); err != nil {
				g.err = err
			}
		}
		g.events = e.Step()
		return core.StepResult{State: g.State()}
	}

	if in.HasPointer {
		e.SetPaddleX((float64(in.PointerCol) + 0.5) * g.cfg.Arena.UnitsPerCol)
	} else {
		nudge := e.arenaW * keyNudge
		center := e.paddle.CenterX()
		if in.Has(core.ActionLeft) {
			e.SetPaddleX(center - nudge)
		}
		if in.Has(core.ActionRight) {
			e.SetPaddleX(center + nudge)
		}
	}
	if in.Has(core.ActionLaunch) {
		e.Launch()
	}

	g.events = e.Step()
	return core.StepResult{State: g.State()}
}

// Events returns the events of the last step.
func (g *Game) Events() []Event {
	return g.events
}

// Err returns the last error that kept the game from starting or continuing.
func (g *Game) Err() error {
	if g.err != nil {
		return g.err
	}
	if g.engine != nil {
		return g.engine.Err()
	}
	return nil
}

// Engine exposes the underlying engine, nil until Reset succeeds.
func (g *Game) Engine() *Engine {
	return g.engine
}

// State returns the coarse session state for the platform.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{InMenu: true}
	}
	e := g.engine
	return core.GameState{
		Score:    e.score,
		Lives:    e.lives,
		Level:    e.level,
		GameOver: e.phase.Terminal(),
		Won:      e.phase == PhaseWon,
		InMenu:   e.phase == PhaseMenu,
	}
}

// Idle reports whether further steps would change nothing visible: the
// session is lost, or won and the confetti has faded.
func (g *Game) Idle() bool {
	if g.engine == nil {
		return true
	}
	switch g.engine.phase {
	case PhaseGameOver:
		return true
	case PhaseWon:
		return len(g.engine.particles) == 0
	default:
		return false
	}
}

package brickhole

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/brickhole/internal/config"
)

// testConfig disables the random side effects of brick destruction so
// scenarios see only what they set up.
func testConfig() config.BrickholeConfig {
	cfg := config.DefaultBrickholeConfig()
	cfg.PowerUps.SpawnChance = 0
	cfg.Gameplay.MessageChance = 0
	return cfg
}

func newPlaying(t *testing.T, cfg config.BrickholeConfig) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, 800, 460, 42)
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	if err := e.StartSession("classic"); err != nil {
		t.Fatalf("StartSession() error: %v", err)
	}
	return e
}

// clearField replaces the generated level with a single sturdy brick in the
// top-right corner, out of the way but keeping the level from clearing, and
// parks the zone in the top-left corner.
func clearField(e *Engine) {
	e.zone = Zone{X: 50, Y: 60, Radius: 25}
	e.bricks = []Brick{guardBrick()}
	e.powerUps = nil
	e.particles = nil
}

func guardBrick() Brick {
	return Brick{X: 700, Y: 40, W: 60, H: 20, Health: 4, MaxHealth: 4, Alive: true}
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// stepUntil steps until cond holds, collecting events; it fails after limit steps.
func stepUntil(t *testing.T, e *Engine, limit int, cond func() bool) []Event {
	t.Helper()
	var all []Event
	for range limit {
		all = append(all, e.Step()...)
		if cond() {
			return all
		}
	}
	t.Fatalf("condition not reached within %d steps (phase %s)", limit, e.Phase())
	return nil
}

func TestNewSessionLayout(t *testing.T) {
	e := newPlaying(t, testConfig())
	snap := e.Snapshot()

	if snap.Phase != PhasePlaying || snap.Level != 1 || snap.Score != 0 || snap.Lives != 3 {
		t.Fatalf("unexpected session start: %+v", snap)
	}
	if len(snap.Balls) != 1 || !snap.Balls[0].Attached {
		t.Fatalf("expected one attached ball, got %+v", snap.Balls)
	}
	b := snap.Balls[0]
	if b.DX != 0 || b.DY != 0 {
		t.Errorf("attached ball has velocity (%v, %v)", b.DX, b.DY)
	}
	if b.X != snap.Paddle.CenterX() || b.Y != snap.Paddle.Y-b.Radius {
		t.Errorf("attached ball at (%v, %v), expected on paddle center", b.X, b.Y)
	}
	if snap.Paddle.Width != 100 || snap.Paddle.CenterX() != 400 {
		t.Errorf("paddle = %+v, expected width 100 centered at 400", snap.Paddle)
	}
	if len(snap.Bricks) == 0 {
		t.Error("expected generated bricks")
	}
}

func TestStartSessionErrors(t *testing.T) {
	e, err := NewEngine(testConfig(), 800, 460, 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := e.StartSession("disco"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("StartSession(disco) = %v, expected ErrUnknownVariant", err)
	}
	if e.Phase() != PhaseMenu {
		t.Errorf("phase = %s after failed start, expected menu", e.Phase())
	}
	if err := e.StartSession("frost"); err != nil {
		t.Fatalf("StartSession(frost) error: %v", err)
	}
	if err := e.StartSession("frost"); !errors.Is(err, ErrSessionActive) {
		t.Errorf("second StartSession = %v, expected ErrSessionActive", err)
	}
	if e.Acknowledge() {
		t.Error("Acknowledge() while playing should do nothing")
	}
}

func TestNewEngineRejectsInvalid(t *testing.T) {
	cfg := testConfig()
	cfg.Bricks.Palette = nil
	if _, err := NewEngine(cfg, 800, 460, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty palette: %v, expected ErrInvalidConfig", err)
	}
	if _, err := NewEngine(testConfig(), -5, 460, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("negative arena: %v, expected ErrInvalidConfig", err)
	}
	if _, err := NewEngine(testConfig(), 800, 80, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("arena with no brick row: %v, expected ErrInvalidConfig", err)
	}
	cfg = testConfig()
	cfg.Paddle.BottomOffset = 400
	if _, err := NewEngine(cfg, 800, 460, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("paddle above zone: %v, expected ErrInvalidConfig", err)
	}
}

func TestPaddleHitAlwaysUpward(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	p := e.paddle

	for _, offset := range []float64{-50, -30, -5, 0, 5, 30, 50} {
		for _, dx := range []float64{-7, -1, 0, 2, 9} {
			for _, dy := range []float64{1, 4, 11} {
				b := Ball{
					X:      p.CenterX() + offset - dx,
					Y:      p.Y - 6 - dy + 0.5,
					DX:     dx,
					DY:     dy,
					Radius: 6,
					Alive:  true,
				}
				e.events = nil
				e.moveBall(&b)

				if !b.Alive {
					t.Fatalf("offset %v: ball lost on a paddle hit", offset)
				}
				if b.DY >= 0 {
					t.Fatalf("offset %v dx %v dy %v: outgoing dy = %v, expected upward", offset, dx, dy, b.DY)
				}
				if b.Speed() > e.cfg.Physics.MaxSpeed+1e-9 {
					t.Fatalf("speed %v exceeds cap", b.Speed())
				}
				if b.Y != p.Y-b.Radius {
					t.Fatalf("ball y = %v, expected resting on paddle top %v", b.Y, p.Y-b.Radius)
				}
				if countEvents(e.events, EventPaddleHit) != 1 {
					t.Fatalf("expected one paddle hit event, got %v", e.events)
				}
			}
		}
	}
}

func TestPaddleHitIgnoresIncomingSign(t *testing.T) {
	e := newPlaying(t, testConfig())
	b := Ball{X: e.paddle.CenterX() + 20, Y: e.paddle.Y, DX: 3, DY: -4, Radius: 6, Alive: true}
	e.hitPaddle(&b)
	if b.DY >= 0 {
		t.Errorf("dy = %v, expected upward", b.DY)
	}
	// Offset +20 of half-width 50 -> 0.4 * hit factor 5, then speed-up.
	if want := 0.4 * 5 * 1.03; math.Abs(b.DX-want) > 1e-9 {
		t.Errorf("dx = %v, expected %v", b.DX, want)
	}
}

func TestPaddleSpeedUpCapped(t *testing.T) {
	e := newPlaying(t, testConfig())
	b := Ball{X: e.paddle.CenterX(), Y: e.paddle.Y, DY: 11.9, Radius: 6, Alive: true}
	for range 50 {
		b.DY = math.Abs(b.DY)
		e.hitPaddle(&b)
	}
	if s := b.Speed(); s > e.cfg.Physics.MaxSpeed+1e-9 {
		t.Errorf("speed %v after repeated hits exceeds cap %v", s, e.cfg.Physics.MaxSpeed)
	}
}

func TestMissingPaddleLosesBall(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	b := Ball{X: 20, Y: e.paddle.Y - 7, DY: 3, Radius: 6, Alive: true}
	e.moveBall(&b)
	if b.Alive {
		t.Fatal("ball outside paddle span should be lost")
	}
	if countEvents(e.events, EventBallLost) != 1 {
		t.Errorf("expected ball lost event, got %v", e.events)
	}
}

func TestWallBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		x, dx  float64
		wantX  float64
		wantDX float64
	}{
		{"lands exactly on left wall", 7, -1, 6, 1},
		{"overshoots left wall", 6.5, -3, 6, 3},
		{"moving away from left wall", 6, 2, 8, 2},
		{"lands exactly on right wall", 793, 1, 794, -1},
		{"overshoots right wall", 793, 4, 794, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newPlaying(t, testConfig())
			clearField(e)
			b := Ball{X: tt.x, Y: 300, DX: tt.dx, DY: -0.5, Radius: 6, Alive: true}
			e.moveBall(&b)
			if b.X != tt.wantX || b.DX != tt.wantDX {
				t.Errorf("after move: x=%v dx=%v, expected x=%v dx=%v", b.X, b.DX, tt.wantX, tt.wantDX)
			}
			if b.X < b.Radius || b.X > e.arenaW-b.Radius {
				t.Errorf("ball left the arena: x=%v", b.X)
			}
		})
	}
}

func TestCeilingReflects(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	b := Ball{X: 400, Y: 8, DX: 1, DY: -4, Radius: 6, Alive: true}
	e.moveBall(&b)
	if b.Y != 6 || b.DY != 4 {
		t.Errorf("after ceiling: y=%v dy=%v, expected y=6 dy=4", b.Y, b.DY)
	}
}

func TestScenarioLaunchBreaksBrick(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	target := Brick{X: 370, Y: 200, W: 60, H: 20, Health: 1, MaxHealth: 1, Alive: true}
	e.bricks = append(e.bricks, target)

	e.Launch()
	events := stepUntil(t, e, 200, func() bool { return e.score > 0 })

	if e.score != e.cfg.Gameplay.BrickReward {
		t.Errorf("score = %d, expected %d", e.score, e.cfg.Gameplay.BrickReward)
	}
	if countEvents(events, EventBrickDestroyed) != 1 {
		t.Errorf("expected one brick destroyed event")
	}
	snap := e.Snapshot()
	if len(snap.Bricks) != 1 || snap.Bricks[0].X != guardBrick().X {
		t.Errorf("target brick still alive: %+v", snap.Bricks)
	}
	if len(snap.Particles) != e.cfg.Particles.Burst {
		t.Errorf("particles = %d, expected burst of %d", len(snap.Particles), e.cfg.Particles.Burst)
	}
	if snap.Balls[0].DX != 0 || snap.Balls[0].DY <= 0 {
		t.Errorf("ball velocity (%v, %v), expected straight down after the bounce", snap.Balls[0].DX, snap.Balls[0].DY)
	}
	if snap.Phase != PhasePlaying {
		t.Errorf("phase = %s, expected playing", snap.Phase)
	}
}

func TestBrickHealthMonotonic(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.bricks = append(e.bricks, Brick{X: 300, Y: 200, W: 60, H: 20, Health: 3, MaxHealth: 3, Alive: true})
	br := &e.bricks[1]

	prev := br.Health
	deaths := 0
	for range 6 {
		b := Ball{X: 330, Y: 210, DY: -5, Radius: 6, Alive: true}
		wasAlive := br.Alive
		e.events = nil
		e.collideBricks(&b)
		if br.Health > prev {
			t.Fatalf("health rose from %d to %d", prev, br.Health)
		}
		prev = br.Health
		if wasAlive && !br.Alive {
			deaths++
			if br.Health > 0 {
				t.Fatalf("brick died with health %d", br.Health)
			}
		}
		if br.Alive && br.Health <= 0 {
			t.Fatalf("brick alive with health %d", br.Health)
		}
		if !wasAlive && countEvents(e.events, EventBrickDestroyed) != 0 {
			t.Fatal("dead brick destroyed again")
		}
	}
	if deaths != 1 {
		t.Errorf("brick died %d times, expected exactly once", deaths)
	}
	if e.score != e.cfg.Gameplay.BrickReward {
		t.Errorf("score = %d, expected one reward", e.score)
	}
}

func TestIndestructibleBrick(t *testing.T) {
	solid := Brick{X: 300, Y: 200, W: 60, H: 20, Health: 1, MaxHealth: 1, Kind: BrickIndestructible, Alive: true}

	t.Run("absorbs normal hit", func(t *testing.T) {
		e := newPlaying(t, testConfig())
		clearField(e)
		e.bricks = append(e.bricks, solid)
		b := Ball{X: 330, Y: 210, DY: -5, Radius: 6, Alive: true}
		for range 10 {
			b.DY = -5
			e.collideBricks(&b)
			if b.DY != 5 {
				t.Fatalf("dy = %v, expected bounce", b.DY)
			}
		}
		if !e.bricks[1].Alive || e.bricks[1].Health != 1 {
			t.Errorf("indestructible brick damaged: %+v", e.bricks[1])
		}
		if e.score != 0 {
			t.Errorf("score = %d, expected 0", e.score)
		}
	})

	t.Run("cleared by penetrating ball", func(t *testing.T) {
		e := newPlaying(t, testConfig())
		clearField(e)
		e.bricks = append(e.bricks, solid)
		b := Ball{X: 330, Y: 210, DY: -5, Radius: 6, Alive: true, Penetrating: true}
		e.collideBricks(&b)
		if e.bricks[1].Alive {
			t.Error("penetrating ball should force-clear indestructible brick")
		}
		if b.DY != -5 {
			t.Errorf("penetrating ball bounced: dy = %v", b.DY)
		}
		if e.score != e.cfg.Gameplay.BrickReward {
			t.Errorf("score = %d, expected %d", e.score, e.cfg.Gameplay.BrickReward)
		}
	})
}

func TestPenetratingBallClearsStrongBrick(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.bricks = append(e.bricks, Brick{X: 300, Y: 200, W: 60, H: 20, Health: 4, MaxHealth: 4, Alive: true})
	b := Ball{X: 330, Y: 210, DY: -5, Radius: 6, Alive: true, Penetrating: true}
	e.collideBricks(&b)
	if e.bricks[1].Alive || e.bricks[1].Health != 0 {
		t.Errorf("brick = %+v, expected force-cleared", e.bricks[1])
	}
}

func TestOverlappingBricksHitInOneFrame(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.bricks = append(e.bricks,
		Brick{X: 300, Y: 200, W: 60, H: 20, Health: 1, MaxHealth: 1, Alive: true},
		Brick{X: 320, Y: 205, W: 60, H: 20, Health: 1, MaxHealth: 1, Alive: true},
	)
	b := Ball{X: 340, Y: 210, DY: -5, Radius: 6, Alive: true}
	e.collideBricks(&b)

	if e.bricks[1].Alive || e.bricks[2].Alive {
		t.Error("expected both overlapping bricks destroyed in one pass")
	}
	// Each hit flips the vertical velocity.
	if b.DY != -5 {
		t.Errorf("dy = %v, expected two flips back to -5", b.DY)
	}
}

func TestScenarioGameOver(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.lives = 1
	e.balls = []Ball{{X: 20, Y: e.paddle.Y - 20, DY: 5, Radius: 6, Alive: true}}

	events := stepUntil(t, e, 20, func() bool { return e.Phase() != PhasePlaying })

	if e.Phase() != PhaseGameOver {
		t.Fatalf("phase = %s, expected gameover", e.Phase())
	}
	if e.lives != 0 {
		t.Errorf("lives = %d, expected 0", e.lives)
	}
	if countEvents(events, EventBallLost) != 1 || countEvents(events, EventSessionOver) != 1 {
		t.Errorf("events = %v, expected ball lost and session over", events)
	}

	snap := e.Snapshot()
	before := snap.Hash()
	for range 30 {
		e.SetPaddleX(100)
		e.Launch()
		if evs := e.Step(); len(evs) != 0 {
			t.Fatalf("terminal step emitted %v", evs)
		}
	}
	after := e.Snapshot()
	if after.Hash() != before {
		t.Error("steps after gameover mutated the simulation")
	}
	if after.Lives != 0 {
		t.Errorf("lives = %d after extra steps", after.Lives)
	}
}

func TestLifeLossResetsRound(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.paddle.Sticky = true
	e.paddle.Width = 150
	e.powerUps = []PowerUp{{X: 100, Y: 50, VY: 2.5, Size: 16, Kind: PowerUpWiden, Alive: true}}
	e.applyPowerUp(PowerUpPenetrate)
	e.balls = []Ball{{X: 20, Y: e.paddle.Y - 8, DY: 5, Radius: 6, Alive: true}}

	e.Step()

	if e.Phase() != PhasePlaying || e.lives != 2 {
		t.Fatalf("phase %s lives %d, expected playing with 2 lives", e.Phase(), e.lives)
	}
	snap := e.Snapshot()
	if len(snap.Balls) != 1 || !snap.Balls[0].Attached || snap.Balls[0].Penetrating {
		t.Errorf("balls = %+v, expected one fresh attached ball", snap.Balls)
	}
	if len(snap.PowerUps) != 0 {
		t.Errorf("power-ups in flight = %d, expected cleared", len(snap.PowerUps))
	}
	if snap.Paddle.Sticky || snap.Paddle.Width != 100 {
		t.Errorf("paddle = %+v, expected level-start paddle", snap.Paddle)
	}
	if e.deferred.Len() != 0 {
		t.Errorf("deferred queue has %d entries, expected cleared", e.deferred.Len())
	}
}

func TestScenarioIndestructibleDoesNotBlockClear(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.bricks = []Brick{
		{X: 700, Y: 40, W: 60, H: 20, Health: 1, MaxHealth: 1, Kind: BrickIndestructible, Alive: true},
		{X: 370, Y: 200, W: 60, H: 20, Health: 1, MaxHealth: 1, Alive: true},
	}

	e.Launch()
	events := stepUntil(t, e, 200, func() bool { return e.Phase() != PhasePlaying })

	if e.Phase() != PhaseLevelTransition {
		t.Fatalf("phase = %s, expected level_transition", e.Phase())
	}
	if countEvents(events, EventLevelCleared) != 1 {
		t.Errorf("expected level cleared event, got %v", events)
	}
	last := events[len(events)-1]
	if last.Kind != EventLevelCleared || last.Level != 1 {
		t.Errorf("last event = %+v, expected level 1 cleared in the same step as the brick", last)
	}
}

func TestZoneEntryClearsLevel(t *testing.T) {
	cfg := testConfig()
	e := newPlaying(t, cfg)
	clearField(e)
	e.zone = Zone{X: 400, Y: 100, Radius: 25}

	e.Launch()
	events := stepUntil(t, e, 200, func() bool { return e.Phase() != PhasePlaying })
	if e.Phase() != PhaseLevelTransition {
		t.Fatalf("phase = %s, expected level_transition", e.Phase())
	}
	if countEvents(events, EventLevelCleared) != 1 {
		t.Fatalf("expected one level cleared event, got %v", events)
	}
	if len(e.bricks) != 1 {
		t.Errorf("remaining bricks = %d, zone entry should not need them cleared", len(e.bricks))
	}

	// Input is ignored during the interstitial.
	paddleX := e.paddle.X
	steps := 0
	for e.Phase() == PhaseLevelTransition {
		e.SetPaddleX(10)
		e.Launch()
		e.Step()
		steps++
		if e.Phase() == PhaseLevelTransition {
			if e.paddle.X != paddleX {
				t.Fatal("paddle moved during level transition")
			}
			if p := e.Snapshot().Transition; p <= 0 || p > 1 {
				t.Fatalf("transition progress %v outside (0, 1]", p)
			}
		}
		if steps > cfg.Gameplay.TransitionFrames+5 {
			t.Fatal("transition did not finish")
		}
	}
	if steps != cfg.Gameplay.TransitionFrames {
		t.Errorf("transition took %d steps, expected %d", steps, cfg.Gameplay.TransitionFrames)
	}

	snap := e.Snapshot()
	if snap.Phase != PhasePlaying || snap.Level != 2 || snap.Lives != 3 {
		t.Errorf("after transition: phase %s level %d lives %d", snap.Phase, snap.Level, snap.Lives)
	}
	if len(snap.Balls) != 1 || !snap.Balls[0].Attached {
		t.Errorf("expected a fresh attached ball on level 2")
	}
}

func TestWinAtMaxLevel(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.MaxLevel = 1
	e := newPlaying(t, cfg)
	clearField(e)
	e.zone = Zone{X: 400, Y: 100, Radius: 25}

	e.Launch()
	events := stepUntil(t, e, 400, func() bool { return e.Phase() == PhaseWon })
	if countEvents(events, EventSessionWon) != 1 {
		t.Errorf("expected one session won event, got %v", events)
	}
	if got := len(e.Snapshot().Particles); got != cfg.Particles.Confetti {
		t.Errorf("confetti = %d particles, expected %d", got, cfg.Particles.Confetti)
	}

	for range 10 {
		if evs := e.Step(); countEvents(evs, EventSessionWon) != 0 {
			t.Fatal("session won fired more than once")
		}
	}

	if !e.Acknowledge() || e.Phase() != PhaseMenu {
		t.Fatalf("Acknowledge() did not return to menu (phase %s)", e.Phase())
	}
	if snap := e.Snapshot(); len(snap.Bricks) != 0 || snap.Zone.Radius != 0 {
		t.Errorf("menu snapshot kept the finished level: %d bricks, zone %+v", len(snap.Bricks), snap.Zone)
	}
	if err := e.StartSession("ember"); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if e.score != 0 || e.level != 1 {
		t.Errorf("restart kept score %d level %d", e.score, e.level)
	}
}

func TestCommandsIgnoredOutsidePlaying(t *testing.T) {
	e, err := NewEngine(testConfig(), 800, 460, 9)
	if err != nil {
		t.Fatal(err)
	}
	before := e.Snapshot()
	e.SetPaddleX(10)
	e.Launch()
	if evs := e.Step(); len(evs) != 0 {
		t.Errorf("menu step emitted %v", evs)
	}
	after := e.Snapshot()
	if after.Hash() != before.Hash() {
		t.Error("commands in menu changed state")
	}

	// Commands issued in menu must not leak into the session.
	if err := e.StartSession("classic"); err != nil {
		t.Fatal(err)
	}
	e.Step()
	if b := e.Snapshot().Balls[0]; !b.Attached || e.paddle.CenterX() != 400 {
		t.Error("menu commands leaked into the session")
	}
}

func TestLaunchNoAttachedBallIsNoop(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.balls = []Ball{{X: 400, Y: 300, DX: 1, DY: -3, Radius: 6, Alive: true}}
	e.Launch()
	e.Step()
	b := e.balls[0]
	if b.DX != 1 || b.DY != -3 {
		t.Errorf("free ball velocity changed by launch: (%v, %v)", b.DX, b.DY)
	}
}

func TestSetPaddleXClamped(t *testing.T) {
	e := newPlaying(t, testConfig())
	e.SetPaddleX(-500)
	e.Step()
	if e.paddle.X != 0 {
		t.Errorf("paddle x = %v, expected clamped to 0", e.paddle.X)
	}
	e.SetPaddleX(5000)
	e.Step()
	if e.paddle.Right() != 800 {
		t.Errorf("paddle right = %v, expected clamped to 800", e.paddle.Right())
	}
	if b := e.balls[0]; b.X != e.paddle.CenterX() {
		t.Errorf("attached ball x = %v, expected to follow paddle to %v", b.X, e.paddle.CenterX())
	}
}

func TestSetPaddleXIgnoresNonFinite(t *testing.T) {
	e := newPlaying(t, testConfig())
	startX := e.paddle.X

	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		e.SetPaddleX(x)
		e.Step()
		if e.paddle.X != startX {
			t.Fatalf("SetPaddleX(%v) moved paddle to %v", x, e.paddle.X)
		}
	}

	e.SetPaddleX(math.NaN())
	e.Launch()
	e.Step()
	b := e.balls[0]
	for _, v := range []float64{b.X, b.Y, b.DX, b.DY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("ball left in a non-finite state: %+v", b)
		}
	}
	if b.Attached {
		t.Error("launch queued with a bad move should still launch")
	}
}

func TestStickyPaddle(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.paddle.Sticky = true
	e.balls = []Ball{{X: 420, Y: e.paddle.Y - 8, DX: 0, DY: 3, Radius: 6, Alive: true}}

	e.Step()
	b := e.balls[0]
	if !b.Attached || b.DX != 0 || b.DY != 0 {
		t.Fatalf("ball = %+v, expected attached with zero velocity", b)
	}
	if b.Offset != 20 {
		t.Errorf("offset = %v, expected 20", b.Offset)
	}

	e.SetPaddleX(300)
	e.Step()
	if b := e.balls[0]; b.X != 320 {
		t.Errorf("attached ball x = %v, expected to follow paddle to 320", b.X)
	}

	e.Launch()
	e.Step()
	b = e.balls[0]
	if b.Attached || b.DY >= 0 || b.DX <= 0 {
		t.Errorf("ball = %+v, expected launched up and to the right", b)
	}
	if !e.paddle.Sticky {
		t.Error("stickiness should persist until the round resets")
	}
}

func TestWidenTwiceClamped(t *testing.T) {
	cfg := testConfig()
	cfg.Paddle.WidenFactor = 3
	e := newPlaying(t, cfg)
	clearField(e)
	maxW := e.arenaW * cfg.Paddle.MaxFraction

	for i := range 2 {
		e.powerUps = []PowerUp{{X: 400, Y: e.paddle.Y - 10, VY: 2.5, Size: 16, Kind: PowerUpWiden, Alive: true}}
		events := e.Step()
		if countEvents(events, EventPowerUpCollected) != 1 {
			t.Fatalf("pickup %d not collected: %v", i+1, events)
		}
		if e.paddle.Width > maxW {
			t.Fatalf("paddle width %v exceeds max %v", e.paddle.Width, maxW)
		}
	}
	if e.paddle.Width != maxW {
		t.Errorf("paddle width = %v, expected clamped to %v", e.paddle.Width, maxW)
	}
	if e.paddle.X < 0 || e.paddle.Right() > e.arenaW {
		t.Errorf("widened paddle outside arena: %+v", e.paddle)
	}
}

func TestPowerUpClaimedOnce(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.powerUps = []PowerUp{{X: 400, Y: e.paddle.Y - 10, VY: 2.5, Size: 16, Kind: PowerUpSticky, Alive: true}}

	collected := 0
	for range 10 {
		collected += countEvents(e.Step(), EventPowerUpCollected)
	}
	if collected != 1 {
		t.Errorf("power-up collected %d times, expected once", collected)
	}
	if len(e.powerUps) != 0 {
		t.Errorf("claimed power-up still in play")
	}
	if !e.paddle.Sticky {
		t.Error("sticky effect not applied")
	}
}

func TestUnclaimedPowerUpDiscarded(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.powerUps = []PowerUp{{X: 20, Y: e.paddle.Y, VY: 2.5, Size: 16, Kind: PowerUpWiden, Alive: true}}
	width := e.paddle.Width

	for range 60 {
		if n := countEvents(e.Step(), EventPowerUpCollected); n != 0 {
			t.Fatal("power-up outside paddle span was collected")
		}
	}
	if len(e.powerUps) != 0 {
		t.Error("power-up below the arena should be discarded")
	}
	if e.paddle.Width != width {
		t.Error("discarded power-up had an effect")
	}
}

func TestExtraBalls(t *testing.T) {
	e := newPlaying(t, testConfig())
	clearField(e)
	e.balls = []Ball{{X: 300, Y: 250, DX: 2, DY: -4, Radius: 6, Alive: true}}

	e.applyPowerUp(PowerUpExtraBalls)
	if len(e.balls) != 3 {
		t.Fatalf("balls = %d, expected 3", len(e.balls))
	}
	for _, b := range e.balls[1:] {
		if b.X != 300 || b.Y != 250 {
			t.Errorf("extra ball at (%v, %v), expected at first ball", b.X, b.Y)
		}
		if b.DY >= 0 || b.Attached {
			t.Errorf("extra ball %+v, expected launched upward", b)
		}
	}

	e.applyPowerUp(PowerUpExtraBall)
	if len(e.balls) != 4 {
		t.Errorf("balls = %d, expected 4", len(e.balls))
	}
}

func TestPenetrationExpires(t *testing.T) {
	cfg := testConfig()
	e := newPlaying(t, cfg)
	clearField(e)
	frames := cfg.PowerUps.PenetrateFrames

	e.applyPowerUp(PowerUpPenetrate)
	if !e.balls[0].Penetrating {
		t.Fatal("penetrate not applied to live ball")
	}
	if left := e.Snapshot().PenetrateLeft; left != uint64(frames) {
		t.Errorf("PenetrateLeft = %d, expected %d", left, frames)
	}

	for range frames / 2 {
		e.Step()
	}
	// Re-arming replaces the pending expiry.
	e.applyPowerUp(PowerUpPenetrate)
	for range frames - 1 {
		e.Step()
	}
	if !e.balls[0].Penetrating {
		t.Fatal("penetration expired before the re-armed deadline")
	}
	e.Step()
	if e.balls[0].Penetrating {
		t.Error("penetration did not expire")
	}
	if e.Snapshot().PenetrateLeft != 0 {
		t.Error("PenetrateLeft should be 0 after expiry")
	}
}

func TestFlavorMessageExpires(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.MessageChance = 1
	e := newPlaying(t, cfg)
	clearField(e)
	e.bricks = append(e.bricks, Brick{X: 370, Y: 200, W: 60, H: 20, Health: 1, MaxHealth: 1, Alive: true})

	e.Launch()
	stepUntil(t, e, 200, func() bool { return e.score > 0 })
	if e.message == "" {
		t.Fatal("expected a flavor message")
	}
	found := false
	for _, m := range e.variant.Messages {
		found = found || m == e.message
	}
	if !found {
		t.Errorf("message %q not from variant %s", e.message, e.variant.ID)
	}

	for range cfg.Gameplay.MessageFrames {
		e.Step()
	}
	if e.message != "" {
		t.Errorf("message %q did not expire", e.message)
	}
}

func TestResizeClampsZoneAndPaddle(t *testing.T) {
	e := newPlaying(t, testConfig())
	e.zone = Zone{X: 750, Y: 60, Radius: 25}

	if err := e.Resize(500, 300); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}
	if e.zone.X > 500-25 {
		t.Errorf("zone x = %v, expected clamped inside 500", e.zone.X)
	}
	if e.paddle.Right() > 500 || e.paddle.Width > 250 {
		t.Errorf("paddle = %+v, expected inside 500 wide arena", e.paddle)
	}
	if e.paddle.Y != 300-30-12 {
		t.Errorf("paddle y = %v, expected %v", e.paddle.Y, 300-30-12)
	}
	if b := e.balls[0]; b.X != e.paddle.CenterX() || b.Y != e.paddle.Y-b.Radius {
		t.Errorf("attached ball not moved with paddle: %+v", b)
	}
	if len(e.bricks) == 0 {
		t.Fatal("resize dropped every brick")
	}
	for _, br := range e.bricks {
		if br.Box().Right() > 500 {
			t.Errorf("brick %+v left outside the 500 wide arena", br)
		}
	}

	if err := e.Resize(50, 50); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Resize(50, 50) = %v, expected ErrInvalidConfig", err)
	}
	if w, h := e.ArenaSize(); w != 500 || h != 300 {
		t.Errorf("arena = %vx%v after rejected resize, expected 500x300", w, h)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e := newPlaying(t, testConfig())
	snap := e.Snapshot()
	snap.Balls[0].X = -100
	snap.Bricks[0].Health = 99
	if e.balls[0].X == -100 || e.bricks[0].Health == 99 {
		t.Error("snapshot shares memory with the engine")
	}
}

func runAutopilot(t *testing.T, seed int64, frames int, check func(prev, cur Snapshot)) []uint64 {
	t.Helper()
	e, err := NewEngine(config.DefaultBrickholeConfig(), 800, 460, seed)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.StartSession("ember"); err != nil {
		t.Fatal(err)
	}
	pilot := Autopilot{Aim: 0.6}

	hashes := make([]uint64, 0, frames)
	prev := e.Snapshot()
	for range frames {
		x, launch := pilot.Decide(prev)
		e.SetPaddleX(x)
		if launch {
			e.Launch()
		}
		e.Step()
		cur := e.Snapshot()
		if check != nil {
			check(prev, cur)
		}
		hashes = append(hashes, cur.Hash())
		prev = cur
		if cur.Phase.Terminal() {
			break
		}
	}
	return hashes
}

func TestDeterministicReplay(t *testing.T) {
	a := runAutopilot(t, 1234, 3000, nil)
	b := runAutopilot(t, 1234, 3000, nil)
	if len(a) != len(b) {
		t.Fatalf("runs diverged in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("hash mismatch at frame %d", i)
		}
	}

	c := runAutopilot(t, 4321, 10, nil)
	if c[0] == a[0] {
		t.Error("different seeds produced identical state")
	}
}

func TestInvariantsUnderAutopilot(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		runAutopilot(t, seed, 6000, func(prev, cur Snapshot) {
			if cur.Score < prev.Score {
				t.Fatalf("seed %d: score decreased %d -> %d", seed, prev.Score, cur.Score)
			}
			if cur.Lives < 0 || cur.Lives > prev.Lives {
				t.Fatalf("seed %d: lives went %d -> %d", seed, prev.Lives, cur.Lives)
			}
			if cur.Paddle.X < 0 || cur.Paddle.Right() > cur.ArenaW+1e-9 {
				t.Fatalf("seed %d: paddle outside arena: %+v", seed, cur.Paddle)
			}
			if cur.Paddle.Width > cur.ArenaW*0.5+1e-9 {
				t.Fatalf("seed %d: paddle width %v over cap", seed, cur.Paddle.Width)
			}
			for _, b := range cur.Balls {
				if math.IsNaN(b.X) || math.IsNaN(b.Y) || math.IsNaN(b.DX) || math.IsNaN(b.DY) {
					t.Fatalf("seed %d: NaN ball %+v", seed, b)
				}
				if b.X < b.Radius-1e-9 || b.X > cur.ArenaW-b.Radius+1e-9 || b.Y < b.Radius-1e-9 {
					t.Fatalf("seed %d: ball outside arena %+v", seed, b)
				}
				moving := b.DX != 0 || b.DY != 0
				if b.Attached == moving {
					t.Fatalf("seed %d: attached=%v with velocity (%v, %v)", seed, b.Attached, b.DX, b.DY)
				}
				if b.Speed() > 12+1e-9 {
					t.Fatalf("seed %d: ball speed %v over cap", seed, b.Speed())
				}
			}
			for _, br := range cur.Bricks {
				if br.Kind == BrickNormal && (br.Health < 1 || br.Health > br.MaxHealth) {
					t.Fatalf("seed %d: live brick health %d/%d", seed, br.Health, br.MaxHealth)
				}
				if br.Kind == BrickIndestructible && br.Health <= 0 {
					t.Fatalf("seed %d: indestructible brick health %d", seed, br.Health)
				}
			}
			if cur.Zone.X < 0 || cur.Zone.X > cur.ArenaW || cur.Zone.Y < 0 || cur.Zone.Y > cur.ArenaH {
				t.Fatalf("seed %d: zone outside arena %+v", seed, cur.Zone)
			}
		})
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickhole/internal/config"
	"github.com/vovakirdan/brickhole/internal/core"
	"github.com/vovakirdan/brickhole/internal/games/brickhole"
	"github.com/vovakirdan/brickhole/internal/storage"
)

var (
	flagSimVariant string
	flagSimFrames  uint64
	flagSimAim     float64
	flagSimCols    int
	flagSimRows    int
	flagSimPaced   bool
	flagSimRecord  bool
	flagSimVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot session",
	Long: `Play one session without a terminal UI. An autopilot steers the paddle
and the run is logged as it goes. With the same seed, config and arena size
the final state hash is identical across runs.

Examples:
  brickhole sim --seed 42
  brickhole sim --variant frost --frames 60000 --record
  brickhole sim --paced --fps 120 --verbose`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimVariant, "variant", "classic", "Ball variant to play")
	simCmd.Flags().Uint64Var(&flagSimFrames, "frames", 36000, "Stop after this many frames (0 = until the session ends)")
	simCmd.Flags().Float64Var(&flagSimAim, "aim", 0.6, "Autopilot aim, 0 plays every ball back straight")
	simCmd.Flags().IntVar(&flagSimCols, "cols", 80, "Virtual terminal width")
	simCmd.Flags().IntVar(&flagSimRows, "rows", 24, "Virtual terminal height")
	simCmd.Flags().BoolVar(&flagSimPaced, "paced", false, "Pace frames at --fps instead of running flat out")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the run to the scores database")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log every event")
}

// simOptions describes one headless run.
type simOptions struct {
	Variant   string
	Seed      int64
	Cols      int
	Rows      int
	MaxFrames uint64
	TickRate  int
	Paced     bool
	Aim       float64
}

// simResult is the final state of a headless run.
type simResult struct {
	Outcome storage.Outcome
	Score   int
	Level   int
	Frames  uint64
	Hash    uint64
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger("brickhole-sim")
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := simOptions{
		Variant:   flagSimVariant,
		Seed:      seed,
		Cols:      flagSimCols,
		Rows:      flagSimRows,
		MaxFrames: flagSimFrames,
		TickRate:  flagFPS,
		Paced:     flagSimPaced,
		Aim:       flagSimAim,
	}
	res, err := simulate(ctx, cfg, opts, logger)
	if err != nil {
		return err
	}

	logger.Info("simulation finished",
		"outcome", res.Outcome,
		"score", res.Score,
		"level", res.Level,
		"frames", res.Frames,
		"seed", seed,
		"hash", fmt.Sprintf("%016x", res.Hash),
	)

	if flagSimRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
		if _, err := store.SaveRun(storage.Run{
			Variant: opts.Variant,
			Score:   res.Score,
			Level:   res.Level,
			Outcome: res.Outcome,
			Seed:    seed,
			Frames:  res.Frames,
		}); err != nil {
			return err
		}
		logger.Info("run recorded", "db", flagDBPath)
	}
	return nil
}

// simulate plays one session with the autopilot until it ends, the frame
// limit is hit, or ctx is cancelled. A run cut short is reported as abandoned.
func simulate(ctx context.Context, cfg config.BrickholeConfig, opts simOptions, logger *log.Logger) (simResult, error) {
	if opts.Cols < brickhole.MinScreenW || opts.Rows < brickhole.MinScreenH {
		return simResult{}, fmt.Errorf("arena %dx%d is smaller than %dx%d",
			opts.Cols, opts.Rows, brickhole.MinScreenW, brickhole.MinScreenH)
	}

	w, h := brickhole.ArenaFor(cfg.Arena, opts.Cols, opts.Rows)
	engine, err := brickhole.NewEngine(cfg, w, h, opts.Seed)
	if err != nil {
		return simResult{}, err
	}
	if err := engine.StartSession(opts.Variant); err != nil {
		return simResult{}, err
	}
	logger.Info("session started", "variant", opts.Variant, "seed", opts.Seed, "arena", fmt.Sprintf("%.0fx%.0f", w, h))

	pilot := brickhole.Autopilot{Aim: opts.Aim}
	sched := core.NewScheduler(opts.TickRate)

	step := func(frame uint64) bool {
		x, launch := pilot.Decide(engine.Snapshot())
		engine.SetPaddleX(x)
		if launch {
			engine.Launch()
		}

		for _, ev := range engine.Step() {
			switch ev.Kind {
			case brickhole.EventLevelCleared:
				logger.Info("level cleared", "level", ev.Level, "frame", frame)
			case brickhole.EventBallLost:
				logger.Debug("ball lost", "frame", frame)
			case brickhole.EventPowerUpCollected:
				logger.Debug("power-up collected", "kind", ev.PowerUp, "frame", frame)
			case brickhole.EventBrickDestroyed:
				logger.Debug("brick destroyed", "frame", frame)
			case brickhole.EventSessionWon:
				logger.Info("session won", "frame", frame)
			case brickhole.EventSessionOver:
				logger.Info("session over", "frame", frame)
			}
		}
		return !engine.Phase().Terminal()
	}

	if opts.Paced {
		runCtx := ctx
		if opts.MaxFrames > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, time.Duration(opts.MaxFrames)*sched.Interval())
			defer cancel()
		}
		err = sched.Run(runCtx, step)
	} else {
		err = sched.RunUnpaced(ctx, opts.MaxFrames, step)
	}
	if err != nil && ctx.Err() != nil {
		logger.Warn("simulation interrupted", "frames", sched.Frames())
	}
	if engineErr := engine.Err(); engineErr != nil {
		return simResult{}, fmt.Errorf("simulation failed: %w", engineErr)
	}

	snap := engine.Snapshot()
	res := simResult{
		Outcome: storage.OutcomeAbandoned,
		Score:   snap.Score,
		Level:   snap.Level,
		Frames:  sched.Frames(),
		Hash:    snap.Hash(),
	}
	switch snap.Phase {
	case brickhole.PhaseWon:
		res.Outcome = storage.OutcomeWon
	case brickhole.PhaseGameOver:
		res.Outcome = storage.OutcomeGameOver
	}
	return res, nil
}

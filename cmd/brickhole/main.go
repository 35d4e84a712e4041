// brickhole is a terminal brick-breaker: break bricks, then sink the ball in the hole.
//
// Usage:
//
//	brickhole play [variant]   - Play a session, optionally skipping the menu
//	brickhole menu             - Pick a ball variant interactively
//	brickhole serve            - Start SSH server for remote play
//	brickhole scores [variant] - Show high scores and recent runs
//	brickhole variants         - List ball variants
//	brickhole sim              - Run a headless autopilot session
//	brickhole config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible sessions
//	--db <path>           - Set database path (default: ~/.brickhole/scores.db)
//	--config <path>       - Load a custom brickhole.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickhole/internal/config"
	"github.com/vovakirdan/brickhole/internal/core"
	"github.com/vovakirdan/brickhole/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickhole",
	Short: "Brickhole - break bricks and sink the ball in your terminal",
	Long: `Brickhole is a terminal brick-breaker. Clear a path through the bricks
and send the ball into the target zone to finish each level.

Available commands:
  play      - Play a session directly
  menu      - Interactive ball picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores and recent runs
  variants  - List ball variants
  sim       - Run a headless autopilot session
  config    - Print the default configuration

Examples:
  brickhole play
  brickhole play ember --difficulty hard
  brickhole menu
  brickhole serve --ssh :2222
  brickhole sim --seed 42 --frames 20000`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.brickhole/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom brickhole.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger returns a stderr logger with the given prefix.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// loadConfig loads the game config and applies the difficulty preset.
func loadConfig() (config.BrickholeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.BrickholeConfig{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.BrickholeConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.BrickholeConfig{}, fmt.Errorf("difficulty %s: %w", preset, err)
	}
	return cfg, nil
}

// runtimeConfig sizes the session to the current terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStoreOrWarn opens the scores database. Sessions still run without one.
func openStoreOrWarn(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

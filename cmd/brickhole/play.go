package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickhole/internal/config"
	"github.com/vovakirdan/brickhole/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a session",
	Long: `Start playing straight away. Without a variant the first configured
ball is used. Leaving the session returns to the ball picker.

Controls:
  Mouse         - Move the paddle
  A/D, Arrows   - Nudge the paddle
  Space/Click   - Launch the ball
  Enter         - Play again (after the result screen)
  B/Esc         - Back to menu
  Ctrl+S        - Save a screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - More lives, wider paddle, slower ball
  normal - Start at 30% difficulty, progresses to max
  hard   - Fewer lives, narrower paddle, faster ball
  fixed  - No progression, stays at config's initial level

Examples:
  brickhole play
  brickhole play frost
  brickhole play ember --difficulty hard
  brickhole play --config ./my-brickhole.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a ball picker menu",
	Long: `Start brickhole in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a ball, Tab for the
scoreboard. After a session you return to the menu to play again.

Examples:
  brickhole menu
  brickhole menu --fps 30
  brickhole menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runSession("")
	},
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	variantID := cfg.Variants[0].ID
	if len(args) == 1 {
		variantID = args[0]
	}
	if _, ok := cfg.Variant(variantID); !ok {
		return fmt.Errorf("unknown variant %q (run 'brickhole variants' to list them)", variantID)
	}

	return runSessionWith(cfg, variantID)
}

func runSession(startVariant string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return runSessionWith(cfg, startVariant)
}

func runSessionWith(cfg config.BrickholeConfig, startVariant string) error {
	store := openStoreOrWarn(newLogger("brickhole"))
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, cfg, runtimeConfig(), startVariant); err != nil {
		return fmt.Errorf("running session: %w", err)
	}
	return nil
}

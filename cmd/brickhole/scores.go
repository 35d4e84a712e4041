package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickhole/internal/config"
	"github.com/vovakirdan/brickhole/internal/platform/tui"
	"github.com/vovakirdan/brickhole/internal/storage"
)

var (
	flagScoresLimit int
	flagRecentRuns  int
	flagBrowse      bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores and recent runs",
	Long: `Display the top scores for one variant, or for all variants when none
is given, followed by per-variant statistics and the most recent runs.

Examples:
  brickhole scores
  brickhole scores ember --limit 20
  brickhole scores --browse
  brickhole scores frost --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().IntVar(&flagRecentRuns, "runs", 5, "Number of recent runs to show (0 hides them)")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the scores and runs of the given variant")
}

func runScores(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	variantID := ""
	if len(args) == 1 {
		variantID = args[0]
		if _, ok := cfg.Variant(variantID); !ok {
			return fmt.Errorf("unknown variant %q (run 'brickhole variants' to list them)", variantID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if variantID == "" {
			return errors.New("--clear needs a variant")
		}
		if err := store.ClearScores(variantID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", variantID)
		return nil

	case flagBrowse:
		rt := runtimeConfig()
		return tui.RunScoreboard(store, cfg, rt.ScreenW, rt.ScreenH)
	}

	return printScores(store, cfg, variantID)
}

func printScores(store *storage.Store, cfg config.BrickholeConfig, variantID string) error {
	title := "all variants"
	if v, ok := cfg.Variant(variantID); ok {
		title = v.Name
	}

	scores, err := store.TopScores(variantID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'brickhole play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "Rank", "Score", "Variant", "Date")
	fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "----", "-----", "-------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-10s  %s\n", i+1, entry.Score, entry.Variant, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.AllVariantStats()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(stats))
	for id := range stats {
		if variantID == "" || id == variantID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > 0 {
		fmt.Println()
		fmt.Printf("  %-10s  %5s  %5s  %8s  %10s\n", "Variant", "Runs", "Wins", "Best lvl", "Avg score")
		for _, id := range ids {
			s := stats[id]
			fmt.Printf("  %-10s  %5d  %5d  %8d  %10.0f\n", id, s.Runs, s.Wins, s.BestLevel, s.AvgScore)
		}
	}

	if flagRecentRuns > 0 {
		runs, err := store.RecentRuns(flagRecentRuns)
		if err != nil {
			return err
		}
		if len(runs) > 0 {
			fmt.Println()
			fmt.Println("Recent runs:")
			for _, r := range runs {
				fmt.Printf("  %s  %-10s  %-9s  score %-6d  level %d\n",
					r.CreatedAt.Format("2006-01-02 15:04"), r.Variant, r.Outcome, r.Score, r.Level)
			}
		}
	}
	return nil
}

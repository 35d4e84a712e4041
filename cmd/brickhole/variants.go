package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickhole/internal/games/brickhole"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List ball variants",
	Long:  `Shows the ball variants defined in the active configuration.`,
	Args:  cobra.NoArgs,
	RunE:  runVariants,
}

func runVariants(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	variants := brickhole.VariantsFrom(cfg.Variants)

	fmt.Println("Available variants:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Name", "Ball")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "----", "----")
	for _, v := range variants {
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, v.ID, v.Name, v.BallColor)
	}

	fmt.Println()
	fmt.Println("Run 'brickhole play <id>' to play with a variant.")
	return nil
}

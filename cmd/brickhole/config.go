package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickhole/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in brickhole.yaml. Save it to
~/.brickhole/configs/brickhole.yaml or ./configs/brickhole.yaml and edit
the keys you want to change; missing keys keep their defaults.

Examples:
  brickhole config > ~/.brickhole/configs/brickhole.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}

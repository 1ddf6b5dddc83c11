package main

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "catmatchd",
	Short: "City Cat adoption rules engine",
	Long: `catmatchd serves the City Cat scoring, matching, and eligibility rules
engine over HTTP, and offers one-shot commands for scoring applications and
matching adopters to cats from fixture files.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, optional)")
}

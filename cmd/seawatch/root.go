package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seawatch",
	Short: "Maritime domain awareness toolkit",
	Long:  "SeaWatch scores naval sightings, detects formations, and projects vessel movement.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(replayCmd)
}

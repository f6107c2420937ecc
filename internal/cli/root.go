// Package cli implements the NoSmoke command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nosmoke",
	Short: "NoSmoke — smoking cessation tracking service",
	Long: `NoSmoke is the backend for the NoSmoke cessation tracker.
It stores an append-only event and trigger log per user and derives
progress metrics (streak, money saved, trends) on every read.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

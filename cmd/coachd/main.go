// Coachd generates weekly behavior coaching summaries from daily check-in
// records.
//
// The serve command starts the HTTP server; the generate command posts a
// generation request to a running server.
//
// Usage:
//
//	# Start server with defaults
//	coachd serve
//
//	# Configure via environment
//	SERVER_PORT=8085 GENERATOR_API_KEY=sk-... coachd serve
//
//	# Trigger a generation against a running server
//	coachd generate --email user@example.com --week 2026-W35
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "coachd",
	Short: "Weekly behavior coaching generation service",
	Long: `coachd turns a week of daily behavior check-ins into one coaching
summary: it classifies the week's pattern, derives the user's constraints,
scopes the underlying data, and drives an external text generator through
validation and bounded retry.`,
	Version: version,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("coachd by Fyrsmith Labs\n")
		fmt.Printf("Version:    %s\n", version)
		fmt.Printf("Commit:     %s\n", gitCommit)
		fmt.Printf("Build Date: %s\n", buildDate)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

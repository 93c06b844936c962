// Package main provides the legisnet CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "legisnet",
	Short: "Legislative collaboration network engine",
	Long: `legisnet ingests legislative co-sponsorship datasets and serves an
interactive collaboration network from them.

Core features:
  - Snapshot store for prepared network-data JSON documents (SQLite)
  - Filtered subgraphs gated by pair strength and policy area, sampled
    to a fixed edge cap
  - Deterministic state-ring layouts with three navigation levels
  - HTTP API serving the dataset and rendered visualizations
  - Static SVG/HTML export of any filtered view

All commands output JSON by default; pass --human for readable text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// verbose is a global flag for verbose output
	verbose bool
	// catalogPath overlays a YAML rule catalog on the built-in one
	catalogPath string
)

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "forge - Phaser scene improvement assistant",
	Long: `forge rewrites Phaser.js game-scene code from natural-language requests.

Features:
  - Rewrites from a text-generation model, with a built-in rule catalog fallback
  - Line diffs and heuristic CPU, memory and FPS impact estimates
  - Performance anti-pattern warnings
  - Learning-assistant lessons and example scenes
  - Local web dashboard with undo/redo history
  - MCP server for editor assistants`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "YAML rule catalog merged over the built-in rules")

	// Note: remaining commands register themselves in their own init()
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(lintCmd)
}

// flappy is a Flappy Bird style game for the terminal. One key flaps, pipes
// scroll at a fixed tick rate, and the best score survives restarts in a
// local database.
//
// Usage:
//
//	flappy               - Play in the current terminal
//	flappy stats         - Show persisted stats
//	flappy serve         - Serve the game over SSH
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.flappy/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-tui/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird in your terminal. Running without a subcommand starts
the game right away.

Controls:
  Space/Up/Click - Flap (also starts a run from the menu)
  Enter          - Start a run
  R              - Restart (after game over)
  Q/Ctrl+C       - Quit

Difficulty presets:
  classic - Fixed parameters for the whole run (default)
  easy    - Progression from lowest difficulty to max
  normal  - Progression from 30% difficulty to max
  hard    - Progression from 70% difficulty to max

Examples:
  flappy
  flappy --difficulty hard
  flappy --config ./my-flappy.yaml --seed 42
  flappy stats
  flappy serve --ssh :2222`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to stats database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: classic, easy, normal, hard")

	// Add subcommands
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

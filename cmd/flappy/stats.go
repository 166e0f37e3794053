package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-tui/internal/platform/tui"
	"github.com/vovakirdan/flappy-tui/internal/storage"
)

var flagPlainStats bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show persisted stats",
	Long: `Display the best score and games-played counters.

Opens an interactive view when stdout is a terminal; pipes and --plain get
plain text.

Examples:
  flappy stats
  flappy stats --plain
  flappy stats --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagPlainStats, "plain", false, "Print plain text instead of the interactive view")
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening stats database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlainStats || !term.IsTerminal(int(os.Stdout.Fd())) {
		printPlainStats(store)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunStats(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printPlainStats(store *storage.Store) {
	entries, err := store.Entries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stats: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No stats recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy' to set the first best score!")
		return
	}

	fmt.Printf("  %-20s  %-10s  %s\n", "Stat", "Value", "Updated")
	fmt.Printf("  %-20s  %-10s  %s\n", "----", "-----", "-------")
	for _, e := range entries {
		fmt.Printf("  %-20s  %-10s  %s\n", tui.StatLabel(e.Key), e.Value, e.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-tui/internal/config"
	"github.com/vovakirdan/flappy-tui/internal/core"
	"github.com/vovakirdan/flappy-tui/internal/flappy"
	"github.com/vovakirdan/flappy-tui/internal/platform/audio"
	"github.com/vovakirdan/flappy-tui/internal/platform/tui"
	"github.com/vovakirdan/flappy-tui/internal/storage"
)

var (
	flagMute   bool
	flagVolume float64
)

func init() {
	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	rootCmd.Flags().Float64Var(&flagVolume, "volume", 0.55, "Sound effect volume (0.0 to 1.0)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size early; resize events take over once running
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open stats database: %v\n", err)
		// Continue without storage - the best score just won't survive exit
		store = nil
	}

	var persister flappy.Persister
	if store != nil {
		persister = store
	}
	game := flappy.New(&gameCfg, persister)

	if !flagMute {
		engine, audioErr := audio.NewEngine()
		if audioErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", audioErr)
		} else {
			engine.SetVolume(flagVolume)
			game.SetSound(engine)
		}
	}

	runErr := tui.Run(game, rt)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadGameConfig loads the tunables file and applies the difficulty preset.
// Shared by the play and serve commands.
func loadGameConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, presetErr := config.ParsePreset(flagDifficulty)
		if presetErr != nil {
			return cfg, presetErr
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

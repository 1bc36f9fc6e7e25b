package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-idler/internal/platform/tui"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/sim"
	"github.com/vovakirdan/tui-idler/internal/storage"
	"github.com/vovakirdan/tui-idler/internal/world"
)

var playCmd = &cobra.Command{
	Use:   "play [name]",
	Short: "Play an interactive session",
	Long: `Start an interactive session. If a save exists for the character
name it is resumed, with offline progress credited for the time away.

Controls:
  F          - Start/stop fishing
  P          - Prestige (level 50+)
  Ctrl+S     - Save
  Q/Ctrl+C   - Save and quit

Examples:
  idler play
  idler play grizzle
  idler play --seed 42 --tick-ms 50`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	name := "wanderer"
	if len(args) > 0 {
		name = args[0]
	}

	cfg := loadBalance()
	engine := sim.New(cfg)

	// Open save storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - the session still works
		store = nil
	}

	w, report := resumeWorld(engine, store, name)

	src := rng.Live()
	if flagSeed != 0 {
		src = rng.Seeded(flagSeed)
	}

	model := tui.NewModel(engine, w, src, store, flagTickMS)
	if report != nil {
		model = model.WithOfflineReport(*report)
	}

	runErr := tui.Run(model)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}

// resumeWorld loads the newest save for the character, reconciling offline
// progress against the save timestamp. A fresh world is created on first
// play or storage failure.
func resumeWorld(engine *sim.Engine, store *storage.Store, name string) (*world.State, *sim.OfflineReport) {
	if store == nil {
		return world.New(name), nil
	}

	w, err := store.LoadLatest(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load save: %v\n", err)
		return world.New(name), nil
	}
	if w == nil {
		return world.New(name), nil
	}

	savedAt, err := store.LastSavedAt(name)
	if err != nil || savedAt.IsZero() {
		return w, nil
	}

	elapsed := int64(time.Now().UTC().Sub(savedAt).Seconds())
	report := engine.ReconcileWorld(w, elapsed)
	return w, &report
}

// termSize probes the terminal, falling back to a sane default.
func termSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

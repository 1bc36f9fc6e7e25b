package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-idler/internal/platform/tui"
	"github.com/vovakirdan/tui-idler/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List stored character saves",
	Long: `Display the most recent character saves in the database.

Examples:
  idler saves
  idler saves --db ./idler.db`,
	Run: runSaves,
}

func runSaves(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	saves, err := store.ListSaves(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving saves: %v\n", err)
		os.Exit(1)
	}

	if len(saves) == 0 {
		fmt.Println("No saves recorded yet.")
		fmt.Println()
		fmt.Println("Run 'idler play <name>' to start a character!")
		return
	}

	fmt.Printf("  %-14s  %-6s  %-5s  %-5s  %s\n", "Name", "Level", "Rank", "Zone", "Date")
	fmt.Printf("  %-14s  %-6s  %-5s  %-5s  %s\n", "----", "-----", "----", "----", "----")
	for _, s := range saves {
		fmt.Printf("  %-14s  %-6d  %-5d  %-5d  %s\n",
			s.Name, s.Level, s.PrestigeRank, s.Zone+1, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Browse saves and simulator runs interactively",
	Long: `Open an interactive browser over the database: character saves in
one tab, recorded simulator runs in the other.

Examples:
  idler stats`,
	Run: runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := termSize()
	if err := tui.RunStats(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running stats view: %v\n", err)
		os.Exit(1)
	}
}

// idler is a terminal idle RPG: your character grinds levels, loot, and
// prestige ranks on its own while you watch, fish, and clear dungeons.
//
// Usage:
//
//	idler play [name]        - Play (resumes the named character)
//	idler simulate           - Run the headless balance simulator
//	idler saves              - List stored character saves
//	idler stats              - Browse saves and simulator runs interactively
//	idler serve              - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>    - RNG seed (0 = time-based)
//	--db <path>       - Database path (default: ~/.idler/idler.db)
//	--tick-ms <ms>    - Tick interval in milliseconds (default: 100)
//	--config <path>   - Custom balance config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-idler/internal/balance"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagTickMS int
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "idler",
	Short: "Terminal idle RPG - your character grinds while you watch",
	Long: `idler is a terminal-based idle RPG. The character fights, levels,
loots, and prestiges on a fixed 100ms tick, whether you are watching or not.

Available commands:
  play      - Interactive session in the terminal
  simulate  - Headless balance simulator
  saves     - List stored character saves
  stats     - Browse saves and simulator runs interactively
  serve     - Start SSH server for remote play

Examples:
  idler play
  idler play grizzle
  idler simulate --ticks 100000 --seed 42
  idler serve --ssh :2222
  idler stats`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.idler/idler.db", "Path to database")
	rootCmd.PersistentFlags().IntVar(&flagTickMS, "tick-ms", 100, "Tick interval in milliseconds")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom balance config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadBalance loads the balance configuration, exiting on an unreadable
// explicit --config path.
func loadBalance() balance.Config {
	cfg, err := balance.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

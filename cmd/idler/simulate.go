package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/sim"
	"github.com/vovakirdan/tui-idler/internal/storage"
	"github.com/vovakirdan/tui-idler/internal/world"
)

var (
	flagSimTicks  int
	flagSimRuns   int
	flagSimRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the headless balance simulator",
	Long: `Run the simulation kernel without a UI for a fixed number of ticks
and print aggregate statistics. The same seed always produces the same run.

Ten ticks equal one second of play time, so --ticks 36000 simulates one
hour of unattended grinding.

Examples:
  idler simulate --ticks 100000
  idler simulate --ticks 100000 --seed 42
  idler simulate --runs 5    # five runs with consecutive seeds
  idler simulate --record    # store run summaries in the database`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 36000, "Number of ticks to simulate")
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs (consecutive seeds)")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Record run summaries in the database")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "idler-sim",
	})

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	runs := flagSimRuns
	if runs < 1 {
		runs = 1
	}

	cfg := loadBalance()

	var store *storage.Store
	if flagSimRecord {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Error("could not open database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	for i := 0; i < runs; i++ {
		seed := baseSeed + int64(i)
		engine := sim.New(cfg)
		w := world.New("simulant")

		logger.Info("starting run", "seed", seed, "ticks", flagSimTicks)
		start := time.Now()
		stats := sim.RunBatch(engine, w, rng.Seeded(seed), flagSimTicks)
		logger.Info("run finished", "elapsed", time.Since(start).Round(time.Millisecond))

		printStats(seed, stats)

		if store != nil {
			if _, err := store.RecordRun(seed, stats); err != nil {
				logger.Error("could not record run", "error", err)
				os.Exit(1)
			}
			logger.Info("run recorded", "db", flagDBPath)
		}
	}
}

// printStats renders the batch summary to stdout.
func printStats(seed int64, stats sim.BatchStats) {
	fmt.Printf("Simulation summary (seed %d)\n\n", seed)
	fmt.Printf("  %-16s %d (%s of play)\n", "ticks", stats.Ticks, playDuration(stats.Ticks))
	fmt.Printf("  %-16s %d\n", "final level", stats.FinalLevel)
	fmt.Printf("  %-16s %d\n", "prestige rank", stats.PrestigeRank)
	fmt.Printf("  %-16s %d\n", "zone reached", stats.ZoneReached+1)
	fmt.Printf("  %-16s %d\n", "kills", stats.Kills)
	fmt.Printf("  %-16s %d\n", "deaths", stats.Deaths)
	fmt.Printf("  %-16s %d\n", "items found", stats.EventCounts[event.KindItemDropped])
	fmt.Printf("  %-16s %d\n", "level-ups", stats.EventCounts[event.KindLevelUp])

	if len(stats.LevelSeries) > 0 {
		fmt.Printf("\n  level over time (every %d ticks):\n    ", sim.LevelSampleEvery)
		for i, lvl := range stats.LevelSeries {
			if i > 0 && i%20 == 0 {
				fmt.Print("\n    ")
			}
			fmt.Printf("%d ", lvl)
		}
		fmt.Println()
	}
}

// playDuration converts a tick count to wall-clock play time.
func playDuration(ticks int) time.Duration {
	return time.Duration(ticks/sim.TicksPerSecond) * time.Second
}

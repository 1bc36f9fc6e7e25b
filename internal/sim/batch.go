package sim

import (
	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/world"
)

// BatchStats aggregates one headless run. Everything here is derived from
// the returned tick results plus a final read of the world; the batch
// runner is a pure client of Advance and needs no kernel hooks.
type BatchStats struct {
	Ticks int

	FinalLevel   int
	PrestigeRank int
	ZoneReached  int

	Kills  int
	Deaths int

	EventCounts map[event.Kind]int

	// LevelSeries samples the character level every LevelSampleEvery
	// ticks, for time-series plots.
	LevelSeries []int
}

// LevelSampleEvery is the sampling interval for BatchStats.LevelSeries.
const LevelSampleEvery = 1000

// RunBatch drives the orchestrator for a fixed number of ticks and
// aggregates statistics. The interactive loop uses the identical Advance
// entry point; this function adds only counting.
func RunBatch(e *Engine, w *world.State, src rng.Source, ticks int) BatchStats {
	stats := BatchStats{
		Ticks:       ticks,
		EventCounts: make(map[event.Kind]int),
	}

	for i := 0; i < ticks; i++ {
		res := e.Advance(w, src)
		for _, ev := range res.Events {
			stats.EventCounts[ev.Kind]++
			switch ev.Kind {
			case event.KindEnemyDefeated:
				stats.Kills++
			case event.KindPlayerDefeated:
				stats.Deaths++
			}
		}
		if (i+1)%LevelSampleEvery == 0 {
			stats.LevelSeries = append(stats.LevelSeries, w.Character.Level)
		}
	}

	stats.FinalLevel = w.Character.Level
	stats.PrestigeRank = w.Character.PrestigeRank
	stats.ZoneReached = w.Character.Zone
	return stats
}

// Package fishing is the fishing adapter: a cast/wait/bite/reel state
// machine over the character's fishing slice. While a session is active the
// orchestrator skips combat entirely; fishing and combat never progress in
// the same tick.
package fishing

import (
	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/world"
)

const castTicks = 3

// Start begins a fishing session. No-op unless the character is idle.
func Start(c *world.Character) bool {
	if c.Activity != world.ActivityNone {
		return false
	}
	c.Activity = world.ActivityFishing
	c.Fishing = &world.FishingState{Phase: world.FishCast}
	return true
}

// Stop ends the session early. Returns the session-end event, or nil if
// no session was active.
func Stop(c *world.Character) []event.Event {
	if c.Fishing == nil {
		return nil
	}
	return endSession(c)
}

// Advance runs one tick of the phase machine.
func Advance(c *world.Character, src rng.Source, cfg balance.FishingConfig) []event.Event {
	fs := c.Fishing
	if fs == nil {
		return nil
	}

	fs.SessionTicks++
	if cfg.SessionMaxTicks > 0 && fs.SessionTicks >= cfg.SessionMaxTicks {
		return endSession(c)
	}

	switch fs.Phase {
	case world.FishCast:
		fs.PhaseTicks++
		if fs.PhaseTicks >= castTicks {
			fs.Phase = world.FishWait
			fs.PhaseTicks = 0
		}
		return nil

	case world.FishWait:
		if rng.Chance(src, cfg.BiteChance) {
			fs.Phase = world.FishBite
			return []event.Event{{Kind: event.KindFishBite}}
		}
		return nil

	case world.FishBite:
		fs.Phase = world.FishReel
		fs.PhaseTicks = 0
		return nil

	case world.FishReel:
		fs.PhaseTicks++
		if fs.PhaseTicks < cfg.ReelTicks {
			return nil
		}
		return resolveReel(c, src, cfg)

	default:
		// Malformed phase: restart the cast rather than failing the tick.
		fs.Phase = world.FishCast
		fs.PhaseTicks = 0
		return nil
	}
}

// resolveReel decides escape vs catch and handles rank-ups.
func resolveReel(c *world.Character, src rng.Source, cfg balance.FishingConfig) []event.Event {
	fs := c.Fishing
	name := fishName(src)

	escape := cfg.EscapeBase - cfg.EscapePerRank*float64(c.FishingRank)
	if escape < 0.05 {
		escape = 0.05
	}

	fs.Phase = world.FishCast
	fs.PhaseTicks = 0

	if rng.Chance(src, escape) {
		return []event.Event{{Kind: event.KindFishEscaped, Subject: name}}
	}

	fs.Catches++
	c.LifetimeCatches++
	events := []event.Event{{Kind: event.KindFishCaught, Subject: name}}

	if cfg.CatchesPerRank > 0 && c.LifetimeCatches%cfg.CatchesPerRank == 0 {
		c.FishingRank++
		events = append(events, event.Event{Kind: event.KindFishingRankUp, Amount: c.FishingRank})
	}
	return events
}

func endSession(c *world.Character) []event.Event {
	catches := c.Fishing.Catches
	c.Fishing = nil
	c.Activity = world.ActivityNone
	return []event.Event{{Kind: event.KindFishingEnded, Amount: catches}}
}

var fishNames = []string{
	"a Minnow", "a Perch", "a Carp", "a Pike", "a Catfish",
	"a Silver Trout", "an Eel", "a Moonfish", "a Stormscale", "a Leviathan Fry",
}

func fishName(src rng.Source) string {
	return fishNames[src.Intn(len(fishNames))]
}

// Package sim contains the tick orchestrator: the fixed-timestep kernel
// that advances the world by one tick through an eleven-stage pipeline and
// returns an event log instead of touching any presentation state.
//
// The pipeline is pure with respect to everything except the supplied
// world and randomness source. The interactive loop and the headless batch
// simulator share this single entry point; any divergence between them is
// a bug.
package sim

import (
	"github.com/vovakirdan/tui-idler/internal/achievements"
	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/progression"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/systems/challenge"
	"github.com/vovakirdan/tui-idler/internal/systems/combat"
	"github.com/vovakirdan/tui-idler/internal/systems/dungeon"
	"github.com/vovakirdan/tui-idler/internal/systems/fishing"
	"github.com/vovakirdan/tui-idler/internal/world"
)

// TicksPerSecond is the reference cadence: one tick per 100ms.
const TicksPerSecond = 10

// Engine orchestrates the tick pipeline. It owns no world state, only
// tuning, so one engine can drive any number of worlds.
type Engine struct {
	cfg    balance.Config
	tuning progression.Tuning
}

// New creates an engine with the given balance configuration.
func New(cfg balance.Config) *Engine {
	return &Engine{
		cfg:    cfg,
		tuning: progression.FromConfig(cfg.Progression),
	}
}

// Config returns the engine's balance configuration.
func (e *Engine) Config() balance.Config { return e.cfg }

// Tuning returns the engine's progression tuning.
func (e *Engine) Tuning() progression.Tuning { return e.tuning }

// Advance moves the world forward by exactly one tick. Stages run in a
// fixed order; later stages observe state mutated by earlier ones within
// the same tick. Fishing and combat never both progress in one tick:
// when the fishing stage runs, the combat and spawn stages are skipped.
func (e *Engine) Advance(w *world.State, src rng.Source) event.Result {
	c := &w.Character
	bonuses := w.Account.Bonuses()
	res := event.Result{}

	// Stage 1: active-minigame AI step.
	if c.Activity == world.ActivityMinigame {
		res.Events = append(res.Events, challenge.Advance(c, src, e.cfg.Challenge, e.tuning, bonuses)...)
	}

	// Stage 2: challenge discovery roll.
	if c.Activity == world.ActivityNone && c.PrestigeRank >= e.cfg.Challenge.MinRank {
		chance := e.cfg.Challenge.DiscoveryChance * (1 + bonuses.DiscoveryPct/100)
		if rng.Chance(src, chance) {
			res.Events = append(res.Events, e.discoverChallenge(c, src)...)
		}
	}

	// Stage 3: derived-stat resync, so the stages below never act on
	// stale cached stats.
	c.ResyncDerived(e.tuning)

	// Stage 4: dungeon exploration step.
	if c.Activity == world.ActivityDungeon {
		events := dungeon.Advance(c, src, e.cfg.Dungeon, e.tuning, bonuses)
		res.Events = append(res.Events, events...)
		for _, ev := range events {
			if ev.Kind == event.KindDungeonBossUnlocked {
				res.BossEncounter = true
			}
		}
	}

	// Stage 5: fishing step. If it runs, stages 6 and 7 are skipped
	// entirely for this tick (hard mutual exclusion, not an optimization).
	fished := false
	if c.Activity == world.ActivityFishing {
		fished = true
		res.Events = append(res.Events, fishing.Advance(c, src, e.cfg.Fishing)...)
	}

	if !fished {
		// Stage 6: combat resolution.
		if c.Activity == world.ActivityNone || c.Activity == world.ActivityFighting {
			res.Events = append(res.Events, combat.Advance(c, src, e.cfg.Combat, e.tuning, bonuses)...)
		}

		// Stage 7: enemy spawn.
		if c.Activity == world.ActivityNone {
			events := combat.Spawn(c, src, e.cfg.Combat)
			res.Events = append(res.Events, events...)
			if len(events) > 0 && c.Combat.Enemy != nil && c.Combat.Enemy.Boss {
				res.BossEncounter = true
			}
		}
	}

	// Stage 8: play-time accounting.
	c.PlayTicks++
	if c.PlayTicks%TicksPerSecond == 0 {
		c.PlaySeconds++
	}

	// Stage 9: achievement evaluation. Newly unlocked IDs queue on the
	// account so they survive a save inside the batching window.
	if unlocked := achievements.Evaluate(w, c.PlayTicks); len(unlocked) > 0 {
		res.AchievementsChanged = true
		w.Account.LastUnlockTick = c.PlayTicks
		for _, id := range unlocked {
			title := id
			if a, ok := achievements.Lookup(id); ok {
				title = a.Title
			}
			res.Events = append(res.Events, event.Event{Kind: event.KindAchievementUnlocked, Subject: title})
			w.Account.PendingUnlocks = append(w.Account.PendingUnlocks, id)
		}
	}

	// Stage 10: haven discovery roll. A separate draw from stage 2.
	if !w.Account.HavenUnlocked && c.Activity == world.ActivityNone && c.PrestigeRank >= e.cfg.Haven.MinRank {
		chance := e.cfg.Haven.DiscoveryChance * (1 + bonuses.DiscoveryPct/100)
		if rng.Chance(src, chance) {
			w.Account.HavenUnlocked = true
			res.HavenChanged = true
			res.Events = append(res.Events, event.Event{Kind: event.KindHavenDiscovered})
		}
	}

	// Stage 11: notification batching. Unlocks within a trailing window
	// are grouped into a single modal payload.
	if len(w.Account.PendingUnlocks) > 0 && c.PlayTicks-w.Account.LastUnlockTick >= uint64(e.cfg.Notify.BatchWindowTicks) {
		res.ReadyAchievements = w.Account.PendingUnlocks
		w.Account.PendingUnlocks = nil
	}

	return res
}

// discoverChallenge picks a weighted challenge kind and transitions into
// it. The "dungeon" kind enters a dungeon run instead of a minigame.
func (e *Engine) discoverChallenge(c *world.Character, src rng.Source) []event.Event {
	kind := challenge.PickKind(src, e.cfg.Challenge.Kinds)
	if kind == "" {
		return nil
	}

	events := []event.Event{{Kind: event.KindChallengeDiscovered, Subject: kind}}
	if kind == "dungeon" {
		dungeon.Start(c, src, e.cfg.Dungeon)
	} else {
		challenge.Start(c, src, kind, e.cfg.Challenge)
	}
	return events
}

// StartFishing begins a fishing session if the character is idle. The
// host calls this on player intent; it is not a pipeline stage.
func (e *Engine) StartFishing(w *world.State) bool {
	return fishing.Start(&w.Character)
}

// StopFishing ends an active fishing session.
func (e *Engine) StopFishing(w *world.State) []event.Event {
	return fishing.Stop(&w.Character)
}

// CanPrestige reports whether the character meets the prestige threshold.
func (e *Engine) CanPrestige(w *world.State) bool {
	return w.Character.Level >= e.cfg.Prestige.UnlockLevel
}

// Prestige performs the full reset if the character is eligible. The reset
// atomically touches only the character region; account state survives.
func (e *Engine) Prestige(w *world.State) []event.Event {
	if !e.CanPrestige(w) {
		return nil
	}
	w.Character.PrestigeReset(e.tuning, e.cfg.Prestige.KeepItems)
	w.Account.LifetimePrestiges++
	return []event.Event{{Kind: event.KindPrestige, Amount: w.Character.PrestigeRank}}
}

// RoomUpgradeCost is the experience price of the next tier of a haven
// room: a flat base scaled by the tier being bought.
func (e *Engine) RoomUpgradeCost(w *world.State, room string) float64 {
	return e.cfg.Haven.RoomUpgradeXPBase * float64(w.Account.HavenRooms[room]+1)
}

// UpgradeHavenRoom spends banked experience to raise a haven room by one
// tier. Returns nil when the haven is locked, the room is unknown or at
// max tier, or the character cannot afford the cost.
func (e *Engine) UpgradeHavenRoom(w *world.State, room string) []event.Event {
	if !w.Account.HavenUnlocked || !validHavenRoom(room) {
		return nil
	}
	tier := w.Account.HavenRooms[room]
	if e.cfg.Haven.MaxRoomTier > 0 && tier >= e.cfg.Haven.MaxRoomTier {
		return nil
	}
	cost := e.RoomUpgradeCost(w, room)
	if w.Character.XP < cost {
		return nil
	}
	w.Character.XP -= cost
	w.Account.HavenRooms[room] = tier + 1
	return []event.Event{{Kind: event.KindHavenRoomUpgraded, Subject: room, Amount: tier + 1}}
}

func validHavenRoom(room string) bool {
	for _, r := range world.HavenRoomNames {
		if r == room {
			return true
		}
	}
	return false
}

// PassiveXPPerTick is the character's current per-tick experience rate,
// used by offline reconciliation and the host's status display.
func (e *Engine) PassiveXPPerTick(w *world.State) float64 {
	c := &w.Character
	return e.tuning.PassiveXPPerTick(c.PrestigeRank, c.WisdomModifier(), c.CharismaModifier())
}

// Package challenge is the minigame adapter. A discovered challenge plays
// out as alternating moves against a simulated opponent that "thinks" for
// a few ticks per move; the match resolves on points once the moves run
// out. The actual rule engines and search AIs live outside the kernel —
// here a match is pacing plus a weighted outcome.
package challenge

import (
	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/progression"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/world"
)

// PickKind selects a weighted challenge kind from the discovery table.
// Returns "" if the table is empty.
func PickKind(src rng.Source, kinds []balance.ChallengeKind) string {
	if len(kinds) == 0 {
		return ""
	}
	weights := make([]int, len(kinds))
	for i, k := range kinds {
		weights[i] = k.Weight
	}
	return kinds[rng.WeightedIndex(src, weights)].Name
}

// Start begins a match of the given kind. No-op unless idle.
func Start(c *world.Character, src rng.Source, kind string, cfg balance.ChallengeConfig) bool {
	if c.Activity != world.ActivityNone || kind == "" {
		return false
	}
	c.Activity = world.ActivityMinigame
	c.Challenge = &world.ChallengeState{
		Kind:       kind,
		PlayerTurn: true,
		MovesLeft:  cfg.MovesPerMatch,
		ThinkTicks: rng.Between(src, cfg.ThinkTicksMin, cfg.ThinkTicksMax),
	}
	return true
}

// Advance runs one tick of the match. The player's avatar moves
// immediately on its turn; the opponent burns down its thinking timer
// first. When the last move is played the match resolves.
func Advance(c *world.Character, src rng.Source, cfg balance.ChallengeConfig, t progression.Tuning, b world.Bonuses) []event.Event {
	m := c.Challenge
	if m == nil {
		return nil
	}

	if m.PlayerTurn {
		// INT sharpens the avatar's play.
		intMod := progression.Modifier(c.Attributes.INT)
		score := src.Intn(4)
		if intMod > 0 && src.Intn(4) < intMod {
			score++
		}
		m.PlayerScore += score
		m.MovesLeft--
		m.PlayerTurn = false
		m.ThinkTicks = rng.Between(src, cfg.ThinkTicksMin, cfg.ThinkTicksMax)
		events := []event.Event{{Kind: event.KindChallengeMove, Subject: c.Name}}
		if m.MovesLeft <= 0 {
			events = append(events, resolve(c, src, cfg, t, b)...)
		}
		return events
	}

	m.ThinkTicks--
	if m.ThinkTicks > 0 {
		return nil
	}

	m.FoeScore += src.Intn(4)
	m.MovesLeft--
	m.PlayerTurn = true
	events := []event.Event{{Kind: event.KindChallengeMove, Subject: "the challenger"}}
	if m.MovesLeft <= 0 {
		events = append(events, resolve(c, src, cfg, t, b)...)
	}
	return events
}

// resolve ends the match, awarding XP on a win. Ties go to the challenger.
func resolve(c *world.Character, src rng.Source, cfg balance.ChallengeConfig, t progression.Tuning, b world.Bonuses) []event.Event {
	m := c.Challenge
	kind := m.Kind
	won := m.PlayerScore > m.FoeScore

	c.Challenge = nil
	c.Activity = world.ActivityNone

	if !won {
		return []event.Event{{Kind: event.KindChallengeLost, Subject: kind}}
	}

	c.ChallengesWon++
	perTick := t.PassiveXPPerTick(c.PrestigeRank, c.WisdomModifier(), c.CharismaModifier())
	xp := perTick * float64(cfg.WinXPTicks) * (1 + b.XPPct/100)
	c.XP += xp

	events := []event.Event{{Kind: event.KindChallengeWon, Subject: kind, Amount: int(xp)}}
	newLevel, remaining, gained := t.ResolveLevels(c.Level, c.XP)
	c.GainAttributePoints(t, newLevel-gained, gained)
	c.Level = newLevel
	c.XP = remaining
	for i := 0; i < gained; i++ {
		events = append(events, event.Event{Kind: event.KindLevelUp, Amount: newLevel - gained + i + 1})
	}
	return events
}

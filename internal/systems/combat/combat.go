// Package combat is the overworld combat adapter: it advances the attack
// cycle by one tick over the character's combat slice and reports what
// happened as events. It never touches fishing, dungeon, or minigame state.
package combat

import (
	"fmt"

	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/progression"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/world"
)

// Advance resolves one tick of the attack cycle. Attacker alternates each
// tick; the player's swings roll crit and double-strike, the enemy's swing
// is reduced by defense. Death on either side ends the fight.
func Advance(c *world.Character, src rng.Source, cfg balance.CombatConfig, t progression.Tuning, b world.Bonuses) []event.Event {
	if c.Combat.Enemy == nil {
		return nil
	}

	var events []event.Event
	enemy := c.Combat.Enemy

	if c.Combat.PlayerTurn {
		events = append(events, playerStrike(c, enemy, src, cfg)...)
		if enemy.HP <= 0 {
			events = append(events, handleKill(c, enemy, src, cfg, t, b)...)
			return events
		}
	} else {
		dmg := enemy.Damage - c.Derived.Defense
		if dmg < 1 {
			dmg = 1
		}
		c.HP -= dmg
		events = append(events, event.Event{Kind: event.KindDamageTaken, Subject: enemy.Name, Amount: dmg})
		if c.HP <= 0 {
			events = append(events, handleDefeat(c, enemy, cfg)...)
			return events
		}
	}

	c.Combat.PlayerTurn = !c.Combat.PlayerTurn
	return events
}

// playerStrike rolls one player attack, with a chance of a follow-up
// double strike.
func playerStrike(c *world.Character, enemy *world.Enemy, src rng.Source, cfg balance.CombatConfig) []event.Event {
	var events []event.Event

	swings := 1
	if rng.Chance(src, cfg.DoubleStrike) {
		swings = 2
	}

	dexMod := progression.Modifier(c.Attributes.DEX)
	critChance := cfg.BaseCritChance + float64(dexMod)*cfg.CritPerDexMod

	for i := 0; i < swings && enemy.HP > 0; i++ {
		dmg := c.Derived.Damage + src.Intn(3)
		crit := rng.Chance(src, critChance)
		if crit {
			dmg *= 2
		}
		enemy.HP -= dmg
		events = append(events, event.Event{Kind: event.KindAttack, Subject: enemy.Name, Amount: dmg, Crit: crit})
	}
	return events
}

// handleKill awards XP, rolls the drop, advances zone position, and clears
// the fight.
func handleKill(c *world.Character, enemy *world.Enemy, src rng.Source, cfg balance.CombatConfig, t progression.Tuning, b world.Bonuses) []event.Event {
	var events []event.Event

	perTick := t.PassiveXPPerTick(c.PrestigeRank, c.WisdomModifier(), c.CharismaModifier())
	xp := t.KillXP(src, perTick, b.XPPct)
	c.XP += xp
	events = append(events, event.Event{Kind: event.KindEnemyDefeated, Subject: enemy.Name, Amount: int(xp)})

	newLevel, remaining, gained := t.ResolveLevels(c.Level, c.XP)
	c.GainAttributePoints(t, newLevel-gained, gained)
	c.Level = newLevel
	c.XP = remaining
	for i := 0; i < gained; i++ {
		events = append(events, event.Event{Kind: event.KindLevelUp, Amount: newLevel - gained + i + 1})
	}

	dropChance := cfg.DropChance * (1 + b.DropPct/100)
	if enemy.Boss {
		dropChance *= 2
	}
	if rng.Chance(src, dropChance) {
		it := rollItem(c, src)
		events = append(events, event.Event{Kind: event.KindItemDropped, Subject: it.Name, Amount: it.Power})
		equipIfBetter(c, it)
	}

	c.Kills++
	c.TotalKills++
	if cfg.KillsPerSubzone > 0 && c.Kills >= cfg.KillsPerSubzone {
		c.Kills = 0
		c.Subzone++
		if cfg.SubzonesPerZone > 0 && c.Subzone >= cfg.SubzonesPerZone {
			c.Subzone = 0
			c.Zone++
		}
		events = append(events, event.Event{
			Kind:    event.KindZoneAdvanced,
			Subject: fmt.Sprintf("%s (%d)", ZoneName(c.Zone), c.Subzone+1),
		})
	}

	c.Combat.Enemy = nil
	c.Combat.RegenTicks = cfg.RegenWindowTicks
	c.Activity = world.ActivityNone
	return events
}

// handleDefeat respawns the player at the start of the subzone.
func handleDefeat(c *world.Character, enemy *world.Enemy, cfg balance.CombatConfig) []event.Event {
	c.Deaths++
	c.Kills = 0
	c.HP = c.Derived.MaxHP
	c.Combat.Enemy = nil
	c.Combat.RegenTicks = cfg.RegenWindowTicks * 2
	c.Activity = world.ActivityNone
	return []event.Event{{Kind: event.KindPlayerDefeated, Subject: enemy.Name}}
}

// equipIfBetter swaps the new item in when its slot is empty or weaker.
// An idle game equips for the player.
func equipIfBetter(c *world.Character, it *world.Item) {
	cur := c.Equipment[it.Slot]
	if cur == nil || cur.Power < it.Power {
		c.Equipment[it.Slot] = it
	}
}

// Package dungeon is the dungeon-exploration adapter: a room-by-room walk
// with key pickups, a locked boss door, and a self-contained boss fight.
// The run owns the character's exclusive activity until it ends.
package dungeon

import (
	"fmt"

	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/progression"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/world"
)

var bossNames = []string{
	"the Vault Warden", "the Pale King", "the Hollow Colossus",
	"the Grave Chanter", "the Chained Wyrm",
}

// Start begins a dungeon run sized by config. No-op unless idle.
func Start(c *world.Character, src rng.Source, cfg balance.DungeonConfig) bool {
	if c.Activity != world.ActivityNone {
		return false
	}
	c.Activity = world.ActivityDungeon
	c.Dungeon = &world.DungeonState{
		Rooms: rng.Between(src, cfg.MinRooms, cfg.MaxRooms),
	}
	return true
}

// Advance runs one tick of the dungeon: walking between rooms, picking up
// keys, unlocking the boss door, or fighting the boss. May end the run.
func Advance(c *world.Character, src rng.Source, cfg balance.DungeonConfig, t progression.Tuning, b world.Bonuses) []event.Event {
	d := c.Dungeon
	if d == nil {
		return nil
	}

	if d.Boss != nil {
		return bossFight(c, src, t, b)
	}

	d.RoomTicks++
	if d.RoomTicks < cfg.RoomTicks {
		return nil
	}
	d.RoomTicks = 0
	d.Room++

	var events []event.Event
	events = append(events, event.Event{Kind: event.KindDungeonRoom, Amount: d.Room})

	if rng.Chance(src, cfg.KeyChance) && d.Keys < cfg.KeysToBoss {
		d.Keys++
		events = append(events, event.Event{Kind: event.KindDungeonKey, Amount: d.Keys})
	}

	if d.Room >= d.Rooms {
		if d.Keys >= cfg.KeysToBoss {
			boss := spawnBoss(c, src)
			d.Boss = boss
			d.BossUnlocked = true
			events = append(events, event.Event{Kind: event.KindDungeonBossUnlocked, Subject: boss.Name})
		} else {
			// Out of rooms without enough keys: the run fizzles.
			events = append(events, exit(c)...)
		}
	}
	return events
}

func spawnBoss(c *world.Character, src rng.Source) *world.Enemy {
	level := c.Level + c.Zone + 3
	hp := 30 + level*6
	return &world.Enemy{
		Name:   bossNames[src.Intn(len(bossNames))],
		Level:  level,
		HP:     hp,
		MaxHP:  hp,
		Damage: 4 + level,
		Boss:   true,
	}
}

// bossFight is a compact exchange: the player strikes, then the boss
// strikes back, every tick until one side falls.
func bossFight(c *world.Character, src rng.Source, t progression.Tuning, b world.Bonuses) []event.Event {
	d := c.Dungeon
	boss := d.Boss
	var events []event.Event

	dmg := c.Derived.Damage + src.Intn(3)
	boss.HP -= dmg
	events = append(events, event.Event{Kind: event.KindAttack, Subject: boss.Name, Amount: dmg})

	if boss.HP <= 0 {
		perTick := t.PassiveXPPerTick(c.PrestigeRank, c.WisdomModifier(), c.CharismaModifier())
		xp := t.KillXP(src, perTick, b.XPPct) * 3
		c.XP += xp
		newLevel, remaining, gained := t.ResolveLevels(c.Level, c.XP)
		c.GainAttributePoints(t, newLevel-gained, gained)
		c.Level = newLevel
		c.XP = remaining

		c.DungeonsCleared++
		events = append(events, event.Event{Kind: event.KindDungeonCleared, Amount: int(xp)})
		for i := 0; i < gained; i++ {
			events = append(events, event.Event{Kind: event.KindLevelUp, Amount: newLevel - gained + i + 1})
		}
		c.Dungeon = nil
		c.Activity = world.ActivityNone
		return events
	}

	hit := boss.Damage - c.Derived.Defense
	if hit < 1 {
		hit = 1
	}
	c.HP -= hit
	events = append(events, event.Event{Kind: event.KindDamageTaken, Subject: boss.Name, Amount: hit})

	if c.HP <= 0 {
		c.Deaths++
		c.HP = c.Derived.MaxHP
		events = append(events, event.Event{Kind: event.KindPlayerDefeated, Subject: boss.Name})
		events = append(events, exit(c)...)
	}
	return events
}

func exit(c *world.Character) []event.Event {
	c.Dungeon = nil
	c.Activity = world.ActivityNone
	return []event.Event{{Kind: event.KindDungeonExited}}
}

// Describe summarizes run progress for the host's status line.
func Describe(d *world.DungeonState) string {
	if d == nil {
		return ""
	}
	if d.Boss != nil {
		return fmt.Sprintf("fighting %s", d.Boss.Name)
	}
	return fmt.Sprintf("room %d/%d, %d keys", d.Room, d.Rooms, d.Keys)
}

package combat

import (
	"fmt"

	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/world"
)

// Spawn fills an idle combat slot with a new opponent sized against the
// player's power and zone tier. During the post-kill regeneration window
// it only counts the window down.
func Spawn(c *world.Character, src rng.Source, cfg balance.CombatConfig) []event.Event {
	if c.Combat.Enemy != nil {
		return nil
	}
	if c.Combat.RegenTicks > 0 {
		c.Combat.RegenTicks--
		return nil
	}

	c.Combat.SpawnCount++
	boss := cfg.BossEveryNthSpawn > 0 && c.Combat.SpawnCount%cfg.BossEveryNthSpawn == 0

	level := c.Level + c.Zone + rng.Between(src, -cfg.EnemyLevelJitter, cfg.EnemyLevelJitter)
	if level < 1 {
		level = 1
	}

	name := enemyName(c.Zone, src)
	hp := 10 + level*4
	dmg := 2 + level + c.Zone
	if boss {
		name = fmt.Sprintf("%s %s", bossTitle(src), name)
		hp *= 3
		dmg = dmg*3/2 + 1
	}

	c.Combat.Enemy = &world.Enemy{
		Name:   name,
		Level:  level,
		HP:     hp,
		MaxHP:  hp,
		Damage: dmg,
		Boss:   boss,
	}
	c.Combat.PlayerTurn = true
	c.Activity = world.ActivityFighting

	return []event.Event{{Kind: event.KindEnemySpawned, Subject: name, Amount: level}}
}

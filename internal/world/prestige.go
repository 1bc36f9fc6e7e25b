package world

import (
	"sort"

	"github.com/vovakirdan/tui-idler/internal/progression"
)

// PrestigeReset performs a full character reset in exchange for one
// prestige rank. It operates on the character region only; account state
// is untouched by construction (the method never sees it). Up to
// keepItems equipped items, chosen by highest power, survive the wipe.
// The fishing career (rank, lifetime catches) also survives.
//
// The caller decides eligibility; this method assumes it.
func (c *Character) PrestigeReset(t progression.Tuning, keepItems int) {
	kept := c.bestItems(keepItems)

	c.Level = 1
	c.XP = 0
	c.Attributes = DefaultAttributes()
	c.PrestigeRank++

	c.Zone = 0
	c.Subzone = 0
	c.Kills = 0
	c.TotalKills = 0
	c.Deaths = 0

	c.Equipment = [SlotCount]*Item{}
	for _, it := range kept {
		c.Equipment[it.Slot] = it
	}

	c.Activity = ActivityNone
	c.Combat = CombatState{}
	c.Fishing = nil
	c.Dungeon = nil
	c.Challenge = nil

	c.DungeonsCleared = 0
	c.ChallengesWon = 0

	c.ResyncDerived(t)
	c.HP = c.Derived.MaxHP
}

// bestItems returns up to n equipped items with the highest power,
// at most one per slot (they were equipped, so that holds already).
func (c *Character) bestItems(n int) []*Item {
	if n <= 0 {
		return nil
	}
	var items []*Item
	for _, it := range c.Equipment {
		if it != nil {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Power != items[j].Power {
			return items[i].Power > items[j].Power
		}
		return items[i].Slot < items[j].Slot
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

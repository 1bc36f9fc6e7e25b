package combat

import (
	"fmt"

	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/world"
)

var zoneNames = []string{
	"Mossy Meadows",
	"Gloomwood",
	"Cinder Hills",
	"Saltmarsh",
	"Frozen Reach",
	"Ember Depths",
	"Starfall Plateau",
}

// enemy tables roughly match zone flavor; later zones wrap around.
var enemyNames = [][]string{
	{"Field Rat", "Meadow Wolf", "Thorn Sprite", "Mud Crab"},
	{"Gloom Spider", "Dire Bat", "Wood Wraith", "Feral Boar"},
	{"Ash Ghoul", "Cinder Imp", "Rock Golem", "Flame Jackal"},
	{"Marsh Lurker", "Bog Serpent", "Brine Hag", "Salt Strider"},
	{"Ice Revenant", "Frost Troll", "Snow Stalker", "Rime Elemental"},
	{"Magma Fiend", "Deep Horror", "Obsidian Beast", "Ember Drake"},
	{"Void Sentinel", "Star Husk", "Comet Spawn", "Astral Tyrant"},
}

var bossTitles = []string{"Elder", "Alpha", "Dread", "Ancient", "Corrupted"}

// ZoneName returns the display name for a zone index; zones past the
// authored list get a numbered suffix.
func ZoneName(zone int) string {
	if zone < 0 {
		zone = 0
	}
	if zone < len(zoneNames) {
		return zoneNames[zone]
	}
	return fmt.Sprintf("%s +%d", zoneNames[len(zoneNames)-1], zone-len(zoneNames)+1)
}

func enemyName(zone int, src rng.Source) string {
	if zone < 0 {
		zone = 0
	}
	table := enemyNames[zone%len(enemyNames)]
	return table[src.Intn(len(table))]
}

func bossTitle(src rng.Source) string {
	return bossTitles[src.Intn(len(bossTitles))]
}

var itemNames = map[world.Slot][]string{
	world.SlotWeapon: {"Sword", "Axe", "Mace", "Spear"},
	world.SlotShield: {"Buckler", "Kite Shield", "Tower Shield"},
	world.SlotHead:   {"Cap", "Helm", "Circlet"},
	world.SlotChest:  {"Tunic", "Mail Shirt", "Breastplate"},
	world.SlotLegs:   {"Trousers", "Greaves", "Legplates"},
	world.SlotHands:  {"Gloves", "Gauntlets"},
	world.SlotFeet:   {"Boots", "Sabatons"},
}

var itemPrefixes = []string{"Worn", "Sturdy", "Fine", "Gleaming", "Runed", "Mythic"}

// rollItem generates a drop scaled to the character's level and zone.
func rollItem(c *world.Character, src rng.Source) *world.Item {
	slot := world.Slot(src.Intn(world.SlotCount))
	names := itemNames[slot]
	base := names[src.Intn(len(names))]

	power := 1 + c.Zone + src.Intn(c.Level/5+2)
	tier := power * len(itemPrefixes) / (c.Level/2 + 10)
	if tier >= len(itemPrefixes) {
		tier = len(itemPrefixes) - 1
	}
	if tier < 0 {
		tier = 0
	}

	return &world.Item{
		Name:  fmt.Sprintf("%s %s", itemPrefixes[tier], base),
		Slot:  slot,
		Power: power,
	}
}

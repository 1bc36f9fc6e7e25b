// Package world defines the mutable aggregate the simulation advances:
// a per-character region (wiped by prestige) and an account-scoped region
// (survives prestige). Construction rules, not runtime checks, keep the
// cross-subsystem invariants: the exclusive activity is a single tagged
// field, and the prestige reset only ever sees the character region.
package world

import (
	"github.com/vovakirdan/tui-idler/internal/progression"
)

// Activity is the exclusive-activity marker. At most one mode is active
// because there is exactly one field of this type on the character.
type Activity int

const (
	ActivityNone Activity = iota
	ActivityFighting
	ActivityFishing
	ActivityDungeon
	ActivityMinigame
)

// String returns a human-readable name for the activity.
func (a Activity) String() string {
	switch a {
	case ActivityNone:
		return "idle"
	case ActivityFighting:
		return "fighting"
	case ActivityFishing:
		return "fishing"
	case ActivityDungeon:
		return "dungeon"
	case ActivityMinigame:
		return "minigame"
	default:
		return "unknown"
	}
}

// Attributes are the six core attribute values.
type Attributes struct {
	STR, DEX, CON, INT, WIS, CHA int
}

// DefaultAttributes returns a fresh character's attribute block.
func DefaultAttributes() Attributes {
	return Attributes{STR: 10, DEX: 10, CON: 10, INT: 10, WIS: 10, CHA: 10}
}

// ClampTo caps every attribute at the given maximum.
func (a *Attributes) ClampTo(cap int) {
	for _, v := range []*int{&a.STR, &a.DEX, &a.CON, &a.INT, &a.WIS, &a.CHA} {
		if *v > cap {
			*v = cap
		}
	}
}

// Slot identifies one of the seven equipment slots.
type Slot int

const (
	SlotWeapon Slot = iota
	SlotShield
	SlotHead
	SlotChest
	SlotLegs
	SlotHands
	SlotFeet

	SlotCount = 7
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotWeapon:
		return "weapon"
	case SlotShield:
		return "shield"
	case SlotHead:
		return "head"
	case SlotChest:
		return "chest"
	case SlotLegs:
		return "legs"
	case SlotHands:
		return "hands"
	case SlotFeet:
		return "feet"
	default:
		return "unknown"
	}
}

// Item is a piece of equipment. Power feeds the derived-stat resync.
type Item struct {
	Name  string
	Slot  Slot
	Power int
}

// Enemy is the current combat opponent.
type Enemy struct {
	Name   string
	Level  int
	HP     int
	MaxHP  int
	Damage int
	Boss   bool
}

// CombatState is the combat subsystem's slice of the character.
type CombatState struct {
	Enemy      *Enemy
	PlayerTurn bool
	RegenTicks int // post-kill window during which no enemy spawns
	SpawnCount int // lifetime spawns, drives periodic boss encounters
}

// FishPhase enumerates the fishing state machine phases.
type FishPhase int

const (
	FishCast FishPhase = iota
	FishWait
	FishBite
	FishReel
)

// FishingState is an in-progress fishing session.
type FishingState struct {
	Phase        FishPhase
	PhaseTicks   int
	SessionTicks int
	Catches      int // catches this session
}

// DungeonState is an in-progress dungeon run.
type DungeonState struct {
	Rooms        int
	Room         int
	RoomTicks    int
	Keys         int
	BossUnlocked bool
	Boss         *Enemy
}

// ChallengeState is an in-progress minigame match against a simulated
// opponent. The opponent "thinks" for a number of ticks per move.
type ChallengeState struct {
	Kind        string
	PlayerTurn  bool
	ThinkTicks  int
	MovesLeft   int
	PlayerScore int
	FoeScore    int
}

// Derived are stats recomputed every tick from attributes and equipment.
// They are cache, never source of truth.
type Derived struct {
	MaxHP   int
	Damage  int
	Defense int
}

// Character is the per-character region. Everything here is wiped or
// reset by prestige except the fishing career fields.
type Character struct {
	Name string

	Level int
	XP    float64

	Attributes   Attributes
	PrestigeRank int

	Zone    int
	Subzone int
	Kills   int // kills within the current subzone

	TotalKills int
	Deaths     int

	Equipment [SlotCount]*Item

	Activity  Activity
	Combat    CombatState
	Fishing   *FishingState
	Dungeon   *DungeonState
	Challenge *ChallengeState

	// Fishing career survives prestige.
	FishingRank     int
	LifetimeCatches int

	HP      int
	Derived Derived

	PlayTicks   uint64
	PlaySeconds uint64

	DungeonsCleared int
	ChallengesWon   int
}

// Bonuses are account-level percentage modifiers derived from haven room
// tiers. They are passed to subsystem adapters as explicit read-only
// parameters, never fetched from shared state.
type Bonuses struct {
	XPPct        float64
	DropPct      float64
	DiscoveryPct float64
	OfflinePct   float64
}

// HavenRoomNames lists the buildable haven rooms. Each room's tier feeds
// one account bonus percentage.
var HavenRoomNames = []string{"library", "forge", "watchtower", "dormitory"}

// Account is the account-scoped region. It survives prestige by
// construction: PrestigeReset never receives it.
type Account struct {
	HavenUnlocked     bool
	HavenRooms        map[string]int // room name -> tier
	Achievements      map[string]uint64
	LifetimePrestiges int

	// Notification batching state: unlock IDs awaiting one modal, and the
	// play tick of the most recent unlock. Lives on the world, not the
	// orchestrator, so a save inside the batching window keeps the queued
	// modal and engines can be reused across worlds.
	PendingUnlocks []string
	LastUnlockTick uint64
}

// Bonuses derives the account bonus percentages from haven room tiers.
func (a *Account) Bonuses() Bonuses {
	if !a.HavenUnlocked {
		return Bonuses{}
	}
	b := Bonuses{}
	b.XPPct = 5 * float64(a.HavenRooms["library"])
	b.DropPct = 5 * float64(a.HavenRooms["forge"])
	b.DiscoveryPct = 10 * float64(a.HavenRooms["watchtower"])
	b.OfflinePct = 10 * float64(a.HavenRooms["dormitory"])
	return b
}

// State is the single mutable aggregate passed into every tick.
type State struct {
	Character Character
	Account   Account
}

// New creates a fresh world for a level-1 character.
func New(name string) *State {
	w := &State{
		Character: Character{
			Name:       name,
			Level:      1,
			Attributes: DefaultAttributes(),
		},
		Account: Account{
			HavenRooms:   make(map[string]int),
			Achievements: make(map[string]uint64),
		},
	}
	w.Character.ResyncDerived(progression.DefaultTuning())
	w.Character.HP = w.Character.Derived.MaxHP
	return w
}

// EquipmentPower sums the power of all equipped items in the given slots.
// A nil slot filter sums everything.
func (c *Character) EquipmentPower(slots ...Slot) int {
	total := 0
	if len(slots) == 0 {
		for _, it := range c.Equipment {
			if it != nil {
				total += it.Power
			}
		}
		return total
	}
	for _, s := range slots {
		if s >= 0 && int(s) < SlotCount && c.Equipment[s] != nil {
			total += c.Equipment[s].Power
		}
	}
	return total
}

// ResyncDerived recomputes hit points and derived stats from current
// attributes and equipment. Runs every tick before combat so equipment or
// attribute changes never leave stale cached values. HP clamps to the new
// maximum but is otherwise preserved.
func (c *Character) ResyncDerived(t progression.Tuning) {
	level := c.Level
	if level < 1 {
		level = 1
	}
	conMod := progression.Modifier(c.Attributes.CON)
	strMod := progression.Modifier(c.Attributes.STR)
	dexMod := progression.Modifier(c.Attributes.DEX)

	maxHP := 20 + 5*level + conMod*level
	if maxHP < 1 {
		maxHP = 1
	}

	damage := 2 + strMod + c.EquipmentPower(SlotWeapon)
	if damage < 1 {
		damage = 1
	}

	defense := dexMod + c.EquipmentPower(SlotShield, SlotHead, SlotChest, SlotLegs, SlotHands, SlotFeet)/3
	if defense < 0 {
		defense = 0
	}

	c.Derived = Derived{
		MaxHP:   maxHP,
		Damage:  damage,
		Defense: defense,
	}
	if c.HP > maxHP {
		c.HP = maxHP
	}
	if c.HP < 0 {
		c.HP = 0
	}

	// Attributes respect the prestige cap even if an external grant
	// overshot it.
	c.Attributes.ClampTo(t.AttributeCap(c.PrestigeRank))
}

// GainAttributePoints grants one attribute point per level gained, cycling
// through the six attributes by level number so growth needs no randomness.
// Points respect the prestige attribute cap; overflow is discarded.
func (c *Character) GainAttributePoints(t progression.Tuning, fromLevel, gained int) {
	limit := t.AttributeCap(c.PrestigeRank)
	order := [...]*int{
		&c.Attributes.STR, &c.Attributes.DEX, &c.Attributes.CON,
		&c.Attributes.INT, &c.Attributes.WIS, &c.Attributes.CHA,
	}
	for lvl := fromLevel + 1; lvl <= fromLevel+gained; lvl++ {
		p := order[lvl%len(order)]
		if *p < limit {
			*p++
		}
	}
}

// WisdomModifier is a convenience accessor for the passive XP formula.
func (c *Character) WisdomModifier() int {
	return progression.Modifier(c.Attributes.WIS)
}

// CharismaModifier is a convenience accessor for the prestige multiplier.
func (c *Character) CharismaModifier() int {
	return progression.Modifier(c.Attributes.CHA)
}

// Package event defines the typed vocabulary the simulation emits instead
// of mutating any presentation state. Events are immutable values created
// and consumed within a single tick; the host turns them into log lines.
package event

import "fmt"

// Kind tags one event variant.
type Kind int

const (
	KindAttack Kind = iota
	KindDamageTaken
	KindEnemySpawned
	KindEnemyDefeated
	KindPlayerDefeated
	KindItemDropped
	KindLevelUp
	KindZoneAdvanced
	KindFishBite
	KindFishCaught
	KindFishEscaped
	KindFishingRankUp
	KindFishingEnded
	KindDungeonRoom
	KindDungeonKey
	KindDungeonBossUnlocked
	KindDungeonCleared
	KindDungeonExited
	KindChallengeDiscovered
	KindChallengeMove
	KindChallengeWon
	KindChallengeLost
	KindAchievementUnlocked
	KindHavenDiscovered
	KindHavenRoomUpgraded
	KindPrestige
)

// Event is one immutable tagged variant describing a single occurrence
// during a tick. Subject names the thing involved (enemy, fish, item,
// achievement), Amount carries the variant's number (damage, XP, level),
// and Crit marks critical strikes.
type Event struct {
	Kind    Kind
	Subject string
	Amount  int
	Crit    bool
}

// String renders the event as the host's log line. The batch simulator
// also compares rendered streams in determinism tests, so this must be a
// pure function of the event value.
func (e Event) String() string {
	switch e.Kind {
	case KindAttack:
		if e.Crit {
			return fmt.Sprintf("critical hit on %s for %d", e.Subject, e.Amount)
		}
		return fmt.Sprintf("hit %s for %d", e.Subject, e.Amount)
	case KindDamageTaken:
		return fmt.Sprintf("%s hits you for %d", e.Subject, e.Amount)
	case KindEnemySpawned:
		return fmt.Sprintf("a %s appears", e.Subject)
	case KindEnemyDefeated:
		return fmt.Sprintf("defeated %s (+%d xp)", e.Subject, e.Amount)
	case KindPlayerDefeated:
		return fmt.Sprintf("slain by %s", e.Subject)
	case KindItemDropped:
		return fmt.Sprintf("found %s (power %d)", e.Subject, e.Amount)
	case KindLevelUp:
		return fmt.Sprintf("reached level %d", e.Amount)
	case KindZoneAdvanced:
		return fmt.Sprintf("advanced to %s", e.Subject)
	case KindFishBite:
		return "something bites"
	case KindFishCaught:
		return fmt.Sprintf("caught %s", e.Subject)
	case KindFishEscaped:
		return fmt.Sprintf("%s got away", e.Subject)
	case KindFishingRankUp:
		return fmt.Sprintf("fishing rank %d", e.Amount)
	case KindFishingEnded:
		return fmt.Sprintf("fishing session over (%d catches)", e.Amount)
	case KindDungeonRoom:
		return fmt.Sprintf("entered room %d", e.Amount)
	case KindDungeonKey:
		return fmt.Sprintf("found a key (%d)", e.Amount)
	case KindDungeonBossUnlocked:
		return fmt.Sprintf("the boss door opens: %s", e.Subject)
	case KindDungeonCleared:
		return fmt.Sprintf("dungeon cleared (+%d xp)", e.Amount)
	case KindDungeonExited:
		return "left the dungeon"
	case KindChallengeDiscovered:
		return fmt.Sprintf("a challenger offers a game of %s", e.Subject)
	case KindChallengeMove:
		return fmt.Sprintf("%s makes a move", e.Subject)
	case KindChallengeWon:
		return fmt.Sprintf("won the %s match (+%d xp)", e.Subject, e.Amount)
	case KindChallengeLost:
		return fmt.Sprintf("lost the %s match", e.Subject)
	case KindAchievementUnlocked:
		return fmt.Sprintf("achievement unlocked: %s", e.Subject)
	case KindHavenDiscovered:
		return "you discover a hidden haven"
	case KindHavenRoomUpgraded:
		return fmt.Sprintf("haven %s raised to tier %d", e.Subject, e.Amount)
	case KindPrestige:
		return fmt.Sprintf("prestige %d", e.Amount)
	default:
		return "unknown event"
	}
}

// IsCombat reports whether the event comes from the combat or spawn
// stages. Used to verify fishing/combat mutual exclusion.
func (k Kind) IsCombat() bool {
	switch k {
	case KindAttack, KindDamageTaken, KindEnemySpawned, KindEnemyDefeated,
		KindPlayerDefeated, KindItemDropped:
		return true
	}
	return false
}

// IsFishing reports whether the event comes from the fishing stage.
func (k Kind) IsFishing() bool {
	switch k {
	case KindFishBite, KindFishCaught, KindFishEscaped, KindFishingRankUp,
		KindFishingEnded:
		return true
	}
	return false
}

// Result is the aggregate returned once per tick. The event order matches
// stage execution order and is the order the host renders. The caller may
// not mutate a Result; the orchestrator owns its slices exclusively until
// it hands them over.
type Result struct {
	Events []Event

	AchievementsChanged bool
	HavenChanged        bool
	BossEncounter       bool

	// ReadyAchievements lists achievement IDs whose batching window has
	// closed and which are ready for a single modal presentation.
	ReadyAchievements []string
}

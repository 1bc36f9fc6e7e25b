package balance

import (
	_ "embed"
)

//go:embed defaults/balance.yaml
var defaultBalanceYAML []byte

// Default returns the as-implemented reference tuning. The embedded YAML
// mirrors these values; this function is the fallback if the embed cannot
// be parsed.
func Default() Config {
	return Config{
		Progression: ProgressionConfig{
			XPBase:           100,
			XPExponent:       1.5,
			PrestigeFactor:   0.5,
			PrestigeExponent: 0.7,
			PassiveXPRate:    1.0,
			KillXPMinTicks:   20,
			KillXPMaxTicks:   40,
			BaseAttributeCap: 20,
			CapPerRank:       5,
		},
		Combat: CombatConfig{
			BaseCritChance:    0.05,
			CritPerDexMod:     0.01,
			DoubleStrike:      0.05,
			DropChance:        0.15,
			RegenWindowTicks:  15,
			KillsPerSubzone:   25,
			SubzonesPerZone:   4,
			EnemyLevelJitter:  2,
			BossEveryNthSpawn: 50,
		},
		Fishing: FishingConfig{
			BiteChance:      0.12,
			EscapeBase:      0.25,
			EscapePerRank:   0.02,
			CatchesPerRank:  10,
			SessionMaxTicks: 600,
			ReelTicks:       5,
		},
		Dungeon: DungeonConfig{
			MinRooms:   6,
			MaxRooms:   12,
			KeyChance:  0.35,
			KeysToBoss: 3,
			RoomTicks:  8,
		},
		Challenge: ChallengeConfig{
			DiscoveryChance: 0.002,
			MinRank:         1,
			ThinkTicksMin:   5,
			ThinkTicksMax:   15,
			MovesPerMatch:   9,
			WinXPTicks:      120,
			Kinds: []ChallengeKind{
				{Name: "tictactoe", Weight: 40},
				{Name: "checkers", Weight: 25},
				{Name: "battleship", Weight: 15},
				{Name: "dungeon", Weight: 20},
			},
		},
		Haven: HavenConfig{
			DiscoveryChance:   0.0005,
			MinRank:           10,
			RoomUpgradeXPBase: 500,
			MaxRoomTier:       5,
		},
		Offline: OfflineConfig{
			CapSeconds:     7 * 24 * 3600,
			SecondsPerKill: 5.0,
			Efficiency:     0.25,
		},
		Prestige: PrestigeConfig{
			UnlockLevel: 50,
			KeepItems:   1,
		},
		Notify: NotifyConfig{
			BatchWindowTicks: 30,
		},
	}
}

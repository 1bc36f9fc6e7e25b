// Package balance provides YAML-based tuning for the idle RPG simulation.
// Every numeric knob the tick pipeline depends on lives here so that the
// interactive game, the batch simulator, and the tests all run the same
// as-implemented values.
package balance

// Config is the complete tuning set for one simulation run.
type Config struct {
	Progression ProgressionConfig `yaml:"progression"`
	Combat      CombatConfig      `yaml:"combat"`
	Fishing     FishingConfig     `yaml:"fishing"`
	Dungeon     DungeonConfig     `yaml:"dungeon"`
	Challenge   ChallengeConfig   `yaml:"challenge"`
	Haven       HavenConfig       `yaml:"haven"`
	Offline     OfflineConfig     `yaml:"offline"`
	Prestige    PrestigeConfig    `yaml:"prestige"`
	Notify      NotifyConfig      `yaml:"notify"`
}

// ProgressionConfig tunes the pure progression formulas.
type ProgressionConfig struct {
	XPBase           float64 `yaml:"xp_base"`
	XPExponent       float64 `yaml:"xp_exponent"`
	PrestigeFactor   float64 `yaml:"prestige_factor"`
	PrestigeExponent float64 `yaml:"prestige_exponent"`
	PassiveXPRate    float64 `yaml:"passive_xp_rate"`
	KillXPMinTicks   int     `yaml:"kill_xp_min_ticks"`
	KillXPMaxTicks   int     `yaml:"kill_xp_max_ticks"`
	BaseAttributeCap int     `yaml:"base_attribute_cap"`
	CapPerRank       int     `yaml:"cap_per_rank"`
}

// CombatConfig tunes the attack cycle, spawning, and drops.
type CombatConfig struct {
	BaseCritChance    float64 `yaml:"base_crit_chance"`
	CritPerDexMod     float64 `yaml:"crit_per_dex_mod"`
	DoubleStrike      float64 `yaml:"double_strike_chance"`
	DropChance        float64 `yaml:"drop_chance"`
	RegenWindowTicks  int     `yaml:"regen_window_ticks"`
	KillsPerSubzone   int     `yaml:"kills_per_subzone"`
	SubzonesPerZone   int     `yaml:"subzones_per_zone"`
	EnemyLevelJitter  int     `yaml:"enemy_level_jitter"`
	BossEveryNthSpawn int     `yaml:"boss_every_nth_spawn"`
}

// FishingConfig tunes the cast/wait/reel state machine.
type FishingConfig struct {
	BiteChance      float64 `yaml:"bite_chance"`
	EscapeBase      float64 `yaml:"escape_base"`
	EscapePerRank   float64 `yaml:"escape_per_rank"`
	CatchesPerRank  int     `yaml:"catches_per_rank"`
	SessionMaxTicks int     `yaml:"session_max_ticks"`
	ReelTicks       int     `yaml:"reel_ticks"`
}

// DungeonConfig tunes dungeon exploration runs.
type DungeonConfig struct {
	MinRooms  int     `yaml:"min_rooms"`
	MaxRooms  int     `yaml:"max_rooms"`
	KeyChance float64 `yaml:"key_chance"`
	KeysToBoss int    `yaml:"keys_to_boss"`
	RoomTicks  int    `yaml:"room_ticks"`
}

// ChallengeKind is one weighted entry in the discovery table.
type ChallengeKind struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

// ChallengeConfig tunes challenge discovery and minigame pacing.
type ChallengeConfig struct {
	DiscoveryChance float64         `yaml:"discovery_chance"`
	MinRank         int             `yaml:"min_rank"`
	ThinkTicksMin   int             `yaml:"think_ticks_min"`
	ThinkTicksMax   int             `yaml:"think_ticks_max"`
	MovesPerMatch   int             `yaml:"moves_per_match"`
	WinXPTicks      int             `yaml:"win_xp_ticks"`
	Kinds           []ChallengeKind `yaml:"kinds"`
}

// HavenConfig tunes the account-level haven discovery roll and room
// upgrades.
type HavenConfig struct {
	DiscoveryChance   float64 `yaml:"discovery_chance"`
	MinRank           int     `yaml:"min_rank"`
	RoomUpgradeXPBase float64 `yaml:"room_upgrade_xp_base"`
	MaxRoomTier       int     `yaml:"max_room_tier"`
}

// OfflineConfig tunes offline reconciliation.
type OfflineConfig struct {
	CapSeconds     int64   `yaml:"cap_seconds"`
	SecondsPerKill float64 `yaml:"seconds_per_kill"`
	Efficiency     float64 `yaml:"efficiency"`
}

// PrestigeConfig tunes the prestige reset.
type PrestigeConfig struct {
	UnlockLevel int `yaml:"unlock_level"`
	KeepItems   int `yaml:"keep_items"`
}

// NotifyConfig tunes achievement notification batching.
type NotifyConfig struct {
	BatchWindowTicks int `yaml:"batch_window_ticks"`
}

// Package progression holds the pure numeric core of the idle RPG:
// experience curves, prestige scaling, attribute math, and level resolution.
// Every function here is total over valid inputs and referentially
// transparent; out-of-range inputs clamp to a safe floor.
package progression

import (
	"math"

	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/rng"
)

// Tuning bundles the formula constants. Zero values are not usable;
// construct via FromConfig or DefaultTuning.
type Tuning struct {
	XPBase           float64
	XPExponent       float64
	PrestigeFactor   float64
	PrestigeExponent float64
	PassiveXPRate    float64
	KillXPMinTicks   int
	KillXPMaxTicks   int
	BaseAttributeCap int
	CapPerRank       int
}

// FromConfig builds a Tuning from loaded balance values.
func FromConfig(cfg balance.ProgressionConfig) Tuning {
	return Tuning{
		XPBase:           cfg.XPBase,
		XPExponent:       cfg.XPExponent,
		PrestigeFactor:   cfg.PrestigeFactor,
		PrestigeExponent: cfg.PrestigeExponent,
		PassiveXPRate:    cfg.PassiveXPRate,
		KillXPMinTicks:   cfg.KillXPMinTicks,
		KillXPMaxTicks:   cfg.KillXPMaxTicks,
		BaseAttributeCap: cfg.BaseAttributeCap,
		CapPerRank:       cfg.CapPerRank,
	}
}

// DefaultTuning returns the reference tuning.
func DefaultTuning() Tuning {
	return FromConfig(balance.Default().Progression)
}

// Modifier converts an attribute value to its modifier: (value-10)/2,
// truncating toward zero. Shared by damage, defense, crit, regen, and
// multiplier formulas.
func Modifier(value int) int {
	return (value - 10) / 2
}

// XPForLevel returns the experience required to advance past the given
// level: base * L^exponent. Strictly increasing in L; levels below 1 clamp.
func (t Tuning) XPForLevel(level int) float64 {
	if level < 1 {
		level = 1
	}
	return t.XPBase * math.Pow(float64(level), t.XPExponent)
}

// PrestigeMultiplier returns the permanent XP multiplier for a prestige
// rank: 1 + factor*R^exp, plus a linear charisma bonus. Strictly increasing
// and sub-linear in R; never below 1.0. Negative ranks clamp to 0.
func (t Tuning) PrestigeMultiplier(rank, chaMod int) float64 {
	if rank < 0 {
		rank = 0
	}
	mult := 1.0 + t.PrestigeFactor*math.Pow(float64(rank), t.PrestigeExponent)
	if chaMod > 0 {
		mult += float64(chaMod) * 0.05
	}
	return mult
}

// AttributeCap returns the maximum attribute value at a prestige rank:
// 20 + 5*R. Never decreases as rank increases.
func (t Tuning) AttributeCap(rank int) int {
	if rank < 0 {
		rank = 0
	}
	return t.BaseAttributeCap + t.CapPerRank*rank
}

// PassiveXPPerTick returns the experience granted per simulated tick:
// base_rate * prestige_multiplier * (1 + wis_mod * 0.05), floored at zero.
func (t Tuning) PassiveXPPerTick(rank, wisMod, chaMod int) float64 {
	xp := t.PassiveXPRate * t.PrestigeMultiplier(rank, chaMod) * (1 + float64(wisMod)*0.05)
	if xp < 0 {
		return 0
	}
	return xp
}

// KillXP returns the experience for one kill: the passive per-tick rate
// times a uniformly sampled tick-equivalent, scaled by an external
// percentage bonus.
func (t Tuning) KillXP(src rng.Source, perTick, bonusPct float64) float64 {
	ticks := rng.Between(src, t.KillXPMinTicks, t.KillXPMaxTicks)
	return perTick * float64(ticks) * (1 + bonusPct/100)
}

// MidKillXP is the deterministic midpoint variant used by offline
// reconciliation, where sampling per estimated kill would be pointless.
func (t Tuning) MidKillXP(perTick, bonusPct float64) float64 {
	mid := float64(t.KillXPMinTicks+t.KillXPMaxTicks) / 2
	return perTick * mid * (1 + bonusPct/100)
}

// ResolveLevels applies pending experience to a level, consuming the XP
// curve as many times as it is satisfied. Returns the new level, the
// remaining experience, and the number of levels gained.
func (t Tuning) ResolveLevels(level int, xp float64) (newLevel int, remaining float64, gained int) {
	if level < 1 {
		level = 1
	}
	if xp < 0 {
		xp = 0
	}
	for xp >= t.XPForLevel(level) {
		xp -= t.XPForLevel(level)
		level++
		gained++
	}
	return level, xp, gained
}

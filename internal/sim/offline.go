package sim

import (
	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/progression"
	"github.com/vovakirdan/tui-idler/internal/world"
)

// OfflineReport summarizes the progress granted for time spent away.
// Computed once per session resume and consumed immediately by the host.
type OfflineReport struct {
	ElapsedSeconds int64 // after clamping to the cap
	EstimatedKills int
	XPGained       float64
	LevelsGained   int
	NewLevel       int
}

// Reconcile collapses elapsed wall-clock seconds into equivalent progress
// without replaying the tick pipeline. Elapsed time clamps to the cap;
// offline kills accrue at a deliberate fraction of active pace; XP per
// estimated kill uses the midpoint of the kill-XP tick range. The grant is
// run through normal level-up resolution so a long absence reports every
// level gained.
func Reconcile(elapsedSeconds int64, xpPerTick, havenBonusPct float64, level int, t progression.Tuning, cfg balance.OfflineConfig) OfflineReport {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	if cfg.CapSeconds > 0 && elapsedSeconds > cfg.CapSeconds {
		elapsedSeconds = cfg.CapSeconds
	}

	report := OfflineReport{ElapsedSeconds: elapsedSeconds, NewLevel: level}
	if elapsedSeconds == 0 || cfg.SecondsPerKill <= 0 {
		return report
	}

	kills := int(float64(elapsedSeconds) / cfg.SecondsPerKill * cfg.Efficiency)
	if kills <= 0 {
		return report
	}

	xp := float64(kills) * t.MidKillXP(xpPerTick, havenBonusPct)
	newLevel, _, gained := t.ResolveLevels(level, xp)

	report.EstimatedKills = kills
	report.XPGained = xp
	report.LevelsGained = gained
	report.NewLevel = newLevel
	return report
}

// ReconcileWorld applies offline reconciliation to a world at session
// resume, crediting the XP and resolving level-ups in place.
func (e *Engine) ReconcileWorld(w *world.State, elapsedSeconds int64) OfflineReport {
	c := &w.Character
	report := Reconcile(
		elapsedSeconds,
		e.PassiveXPPerTick(w),
		w.Account.Bonuses().OfflinePct,
		c.Level,
		e.tuning,
		e.cfg.Offline,
	)
	if report.XPGained > 0 {
		c.XP += report.XPGained
		newLevel, remaining, gained := e.tuning.ResolveLevels(c.Level, c.XP)
		c.GainAttributePoints(e.tuning, newLevel-gained, gained)
		c.Level = newLevel
		c.XP = remaining
		c.ResyncDerived(e.tuning)
	}
	return report
}

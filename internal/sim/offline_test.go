package sim

import (
	"testing"

	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/progression"
	"github.com/vovakirdan/tui-idler/internal/world"
)

func TestReconcileZeroElapsed(t *testing.T) {
	cfg := balance.Default().Offline
	tuning := progression.DefaultTuning()

	report := Reconcile(0, 1.0, 0, 1, tuning, cfg)
	if report.EstimatedKills != 0 || report.XPGained != 0 || report.LevelsGained != 0 {
		t.Errorf("zero elapsed should grant nothing, got %+v", report)
	}
}

func TestReconcileNegativeElapsedClamps(t *testing.T) {
	cfg := balance.Default().Offline
	tuning := progression.DefaultTuning()

	report := Reconcile(-500, 1.0, 0, 1, tuning, cfg)
	if report.ElapsedSeconds != 0 || report.XPGained != 0 {
		t.Errorf("negative elapsed should clamp to zero, got %+v", report)
	}
}

func TestReconcileCapped(t *testing.T) {
	cfg := balance.Default().Offline
	tuning := progression.DefaultTuning()

	atCap := Reconcile(cfg.CapSeconds, 1.0, 0, 1, tuning, cfg)
	beyond := Reconcile(1000000000, 1.0, 0, 1, tuning, cfg)

	if atCap != beyond {
		t.Errorf("beyond-cap reconcile must equal at-cap reconcile:\n%+v\nvs\n%+v", beyond, atCap)
	}
	if atCap.ElapsedSeconds != cfg.CapSeconds {
		t.Errorf("elapsed = %d, want cap %d", atCap.ElapsedSeconds, cfg.CapSeconds)
	}
}

func TestReconcileKillEstimate(t *testing.T) {
	cfg := balance.Default().Offline
	tuning := progression.DefaultTuning()

	// One hour: 3600/5 * 0.25 = 180 estimated kills.
	report := Reconcile(3600, 1.0, 0, 1, tuning, cfg)
	if report.EstimatedKills != 180 {
		t.Errorf("estimated kills for one hour = %d, want 180", report.EstimatedKills)
	}

	// XP per kill is the midpoint rate: 1.0 * 30 per kill.
	if want := 180.0 * 30.0; report.XPGained != want {
		t.Errorf("xp gained = %f, want %f", report.XPGained, want)
	}
	if report.LevelsGained == 0 || report.NewLevel <= 1 {
		t.Errorf("an hour away should level a fresh character, got %+v", report)
	}
}

func TestReconcileHavenBonus(t *testing.T) {
	cfg := balance.Default().Offline
	tuning := progression.DefaultTuning()

	plain := Reconcile(3600, 1.0, 0, 1, tuning, cfg)
	boosted := Reconcile(3600, 1.0, 50, 1, tuning, cfg)
	if boosted.XPGained != plain.XPGained*1.5 {
		t.Errorf("50%% haven bonus: xp = %f, want %f", boosted.XPGained, plain.XPGained*1.5)
	}
}

func TestReconcileWorldAppliesLevels(t *testing.T) {
	e := New(balance.Default())
	w := world.New("returning")

	report := e.ReconcileWorld(w, 24*3600)
	if report.EstimatedKills == 0 {
		t.Fatal("a day away should estimate kills")
	}
	if w.Character.Level != report.NewLevel {
		t.Errorf("world level %d does not match report %d", w.Character.Level, report.NewLevel)
	}
	if w.Character.Level <= 1 {
		t.Error("a day away should level the character")
	}
	if w.Character.HP > w.Character.Derived.MaxHP {
		t.Error("derived stats must be resynced after offline levels")
	}
}

package dungeon

import (
	"testing"

	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/progression"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/world"
)

func TestStartRequiresIdle(t *testing.T) {
	cfg := balance.Default().Dungeon
	w := world.New("delver")
	c := &w.Character

	if !Start(c, rng.Seeded(1), cfg) {
		t.Fatal("idle character should enter the dungeon")
	}
	if c.Activity != world.ActivityDungeon || c.Dungeon == nil {
		t.Fatal("start should set the dungeon activity and run state")
	}
	if c.Dungeon.Rooms < cfg.MinRooms || c.Dungeon.Rooms > cfg.MaxRooms {
		t.Errorf("room count %d outside [%d, %d]", c.Dungeon.Rooms, cfg.MinRooms, cfg.MaxRooms)
	}

	c2 := &world.New("busy").Character
	c2.Activity = world.ActivityFishing
	if Start(c2, rng.Seeded(1), cfg) {
		t.Error("fishing character must not enter a dungeon")
	}
}

func TestRunAlwaysTerminates(t *testing.T) {
	cfg := balance.Default().Dungeon
	tuning := progression.DefaultTuning()

	// Over several seeds the run must end either cleared or exited,
	// never hang, and always release the exclusive activity.
	for seed := int64(1); seed <= 10; seed++ {
		w := world.New("delver")
		c := &w.Character
		c.Level = 20 // strong enough that boss fights finish quickly
		c.ResyncDerived(tuning)
		c.HP = c.Derived.MaxHP
		src := rng.Seeded(seed)
		Start(c, src, cfg)

		var cleared, exited bool
		for i := 0; i < 5000 && c.Dungeon != nil; i++ {
			for _, e := range Advance(c, src, cfg, tuning, world.Bonuses{}) {
				switch e.Kind {
				case event.KindDungeonCleared:
					cleared = true
				case event.KindDungeonExited:
					exited = true
				}
			}
		}

		if c.Dungeon != nil {
			t.Fatalf("seed %d: run did not terminate", seed)
		}
		if !cleared && !exited {
			t.Fatalf("seed %d: run ended without a terminal event", seed)
		}
		if c.Activity != world.ActivityNone {
			t.Fatalf("seed %d: activity not released, got %v", seed, c.Activity)
		}
	}
}

func TestBossUnlockNeedsKeys(t *testing.T) {
	cfg := balance.Default().Dungeon
	cfg.KeyChance = 1 // every room has a key
	tuning := progression.DefaultTuning()
	w := world.New("delver")
	c := &w.Character
	src := rng.Seeded(7)
	Start(c, src, cfg)

	var unlocked bool
	for i := 0; i < 5000 && c.Dungeon != nil && c.Dungeon.Boss == nil; i++ {
		for _, e := range Advance(c, src, cfg, tuning, world.Bonuses{}) {
			if e.Kind == event.KindDungeonBossUnlocked {
				unlocked = true
			}
		}
	}
	if !unlocked {
		t.Fatal("guaranteed keys should always unlock the boss")
	}
	if c.Dungeon == nil || c.Dungeon.Keys < cfg.KeysToBoss {
		t.Error("boss unlock requires the full key count")
	}
}

func TestClearAwardsProgress(t *testing.T) {
	cfg := balance.Default().Dungeon
	cfg.KeyChance = 1
	tuning := progression.DefaultTuning()
	w := world.New("delver")
	c := &w.Character
	c.Level = 30
	c.Attributes = world.Attributes{STR: 20, DEX: 20, CON: 20, INT: 10, WIS: 10, CHA: 10}
	c.Equipment[world.SlotWeapon] = &world.Item{Name: "Doom Blade", Slot: world.SlotWeapon, Power: 60}
	c.ResyncDerived(tuning)
	c.HP = c.Derived.MaxHP
	src := rng.Seeded(2)
	Start(c, src, cfg)

	for i := 0; i < 5000 && c.Dungeon != nil; i++ {
		Advance(c, src, cfg, tuning, world.Bonuses{})
	}
	if c.DungeonsCleared != 1 {
		t.Errorf("dungeons cleared = %d, want 1", c.DungeonsCleared)
	}
}

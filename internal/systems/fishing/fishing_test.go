package fishing

import (
	"testing"

	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/event"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/world"
)

func TestStartRequiresIdle(t *testing.T) {
	w := world.New("angler")
	c := &w.Character

	if !Start(c) {
		t.Fatal("idle character should be able to start fishing")
	}
	if c.Activity != world.ActivityFishing || c.Fishing == nil {
		t.Fatal("start should set the fishing activity and session")
	}

	c2 := &world.New("busy").Character
	c2.Activity = world.ActivityFighting
	if Start(c2) {
		t.Error("fighting character must not start fishing")
	}
}

func TestSessionProducesCatches(t *testing.T) {
	cfg := balance.Default().Fishing
	w := world.New("angler")
	c := &w.Character
	src := rng.Seeded(11)

	Start(c)

	var caught, escaped int
	for i := 0; i < cfg.SessionMaxTicks+10 && c.Fishing != nil; i++ {
		for _, e := range Advance(c, src, cfg) {
			switch e.Kind {
			case event.KindFishCaught:
				caught++
			case event.KindFishEscaped:
				escaped++
			}
		}
	}

	if c.Fishing != nil {
		t.Fatal("session should end at the tick cap")
	}
	if c.Activity != world.ActivityNone {
		t.Errorf("activity after session = %v, want idle", c.Activity)
	}
	if caught == 0 {
		t.Error("a 600-tick session at 12% bite chance should catch something")
	}
	if c.LifetimeCatches != caught {
		t.Errorf("lifetime catches = %d, want %d", c.LifetimeCatches, caught)
	}
}

func TestRankUpEveryNCatches(t *testing.T) {
	cfg := balance.Default().Fishing
	cfg.EscapeBase = 0 // every reel lands
	cfg.BiteChance = 1 // every wait bites
	w := world.New("angler")
	c := &w.Character
	src := rng.Seeded(3)

	Start(c)
	for c.LifetimeCatches < cfg.CatchesPerRank && c.Fishing != nil {
		Advance(c, src, cfg)
	}

	if c.FishingRank != 1 {
		t.Errorf("fishing rank after %d catches = %d, want 1", cfg.CatchesPerRank, c.FishingRank)
	}
}

func TestStopEndsSession(t *testing.T) {
	w := world.New("angler")
	c := &w.Character

	if events := Stop(c); events != nil {
		t.Errorf("stop with no session should be silent, got %v", events)
	}

	Start(c)
	events := Stop(c)
	if len(events) != 1 || events[0].Kind != event.KindFishingEnded {
		t.Fatalf("expected session-end event, got %v", events)
	}
	if c.Fishing != nil || c.Activity != world.ActivityNone {
		t.Error("stop should clear the session")
	}
}

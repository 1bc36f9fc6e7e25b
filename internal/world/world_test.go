package world

import (
	"testing"

	"github.com/vovakirdan/tui-idler/internal/progression"
)

func TestNewWorld(t *testing.T) {
	w := New("tester")

	c := &w.Character
	if c.Level != 1 {
		t.Errorf("new character level = %d, want 1", c.Level)
	}
	if c.Attributes != DefaultAttributes() {
		t.Errorf("new character attributes = %+v, want all 10", c.Attributes)
	}
	if c.Activity != ActivityNone {
		t.Errorf("new character activity = %v, want idle", c.Activity)
	}
	if c.HP != c.Derived.MaxHP {
		t.Errorf("new character HP = %d, want full %d", c.HP, c.Derived.MaxHP)
	}
}

func TestResyncDerivedPicksUpEquipment(t *testing.T) {
	tuning := progression.DefaultTuning()
	w := New("tester")
	c := &w.Character

	before := c.Derived.Damage
	c.Equipment[SlotWeapon] = &Item{Name: "Rusty Sword", Slot: SlotWeapon, Power: 5}
	c.ResyncDerived(tuning)

	if c.Derived.Damage != before+5 {
		t.Errorf("damage after equipping power-5 weapon = %d, want %d", c.Derived.Damage, before+5)
	}
}

func TestResyncDerivedClampsAttributesToCap(t *testing.T) {
	tuning := progression.DefaultTuning()
	w := New("tester")
	c := &w.Character

	c.Attributes.STR = 99 // overshoots the rank-0 cap of 20
	c.ResyncDerived(tuning)

	if c.Attributes.STR != tuning.AttributeCap(0) {
		t.Errorf("STR after resync = %d, want cap %d", c.Attributes.STR, tuning.AttributeCap(0))
	}
}

func TestResyncDerivedClampsHP(t *testing.T) {
	tuning := progression.DefaultTuning()
	w := New("tester")
	c := &w.Character

	c.HP = 9999
	c.ResyncDerived(tuning)
	if c.HP != c.Derived.MaxHP {
		t.Errorf("HP clamped to %d, want MaxHP %d", c.HP, c.Derived.MaxHP)
	}

	c.HP = -3
	c.ResyncDerived(tuning)
	if c.HP != 0 {
		t.Errorf("negative HP clamped to %d, want 0", c.HP)
	}
}

func TestPrestigeReset(t *testing.T) {
	tuning := progression.DefaultTuning()
	w := New("tester")
	c := &w.Character

	// Build up a mid-game character.
	c.Level = 57
	c.XP = 1234
	c.Attributes = Attributes{STR: 18, DEX: 16, CON: 17, INT: 12, WIS: 14, CHA: 11}
	c.PrestigeRank = 2
	c.Zone = 4
	c.Subzone = 2
	c.Kills = 13
	c.TotalKills = 900
	c.Deaths = 7
	c.Equipment[SlotWeapon] = &Item{Name: "Great Axe", Slot: SlotWeapon, Power: 12}
	c.Equipment[SlotChest] = &Item{Name: "Mail Shirt", Slot: SlotChest, Power: 7}
	c.Activity = ActivityFighting
	c.Combat.Enemy = &Enemy{Name: "Wolf", HP: 10}
	c.FishingRank = 3
	c.LifetimeCatches = 42
	w.Account.HavenUnlocked = true
	w.Account.Achievements["first-kill"] = 1

	c.PrestigeReset(tuning, 1)

	if c.Level != 1 || c.XP != 0 {
		t.Errorf("after prestige: level=%d xp=%f, want 1/0", c.Level, c.XP)
	}
	if c.Attributes != DefaultAttributes() {
		t.Errorf("after prestige: attributes = %+v, want all 10", c.Attributes)
	}
	if c.PrestigeRank != 3 {
		t.Errorf("after prestige: rank = %d, want 3", c.PrestigeRank)
	}
	if c.Zone != 0 || c.Subzone != 0 || c.Kills != 0 {
		t.Errorf("after prestige: position = %d/%d/%d, want 0/0/0", c.Zone, c.Subzone, c.Kills)
	}
	if c.Activity != ActivityNone || c.Combat.Enemy != nil {
		t.Error("after prestige: activity should be idle with no enemy")
	}

	// Exactly the single best item survives.
	if c.Equipment[SlotWeapon] == nil || c.Equipment[SlotWeapon].Name != "Great Axe" {
		t.Error("after prestige: highest-power item should be kept")
	}
	if c.Equipment[SlotChest] != nil {
		t.Error("after prestige: lower-power item should be wiped")
	}

	// Fishing career and account state are untouched.
	if c.FishingRank != 3 || c.LifetimeCatches != 42 {
		t.Errorf("after prestige: fishing career = %d/%d, want 3/42", c.FishingRank, c.LifetimeCatches)
	}
	if !w.Account.HavenUnlocked || len(w.Account.Achievements) != 1 {
		t.Error("after prestige: account region must be unchanged")
	}

	if c.HP != c.Derived.MaxHP {
		t.Errorf("after prestige: HP = %d, want full %d", c.HP, c.Derived.MaxHP)
	}
}

func TestPrestigeResetKeepZero(t *testing.T) {
	tuning := progression.DefaultTuning()
	w := New("tester")
	c := &w.Character
	c.Equipment[SlotWeapon] = &Item{Name: "Dagger", Slot: SlotWeapon, Power: 3}

	c.PrestigeReset(tuning, 0)

	for slot, it := range c.Equipment {
		if it != nil {
			t.Errorf("slot %v should be empty after keep-0 prestige", Slot(slot))
		}
	}
}

func TestGainAttributePointsCyclesAttributes(t *testing.T) {
	tuning := progression.DefaultTuning()
	w := New("tester")
	c := &w.Character

	// Six levels gained touches each attribute exactly once.
	c.GainAttributePoints(tuning, 1, 6)

	want := Attributes{STR: 11, DEX: 11, CON: 11, INT: 11, WIS: 11, CHA: 11}
	if c.Attributes != want {
		t.Errorf("attributes after six levels = %+v, want %+v", c.Attributes, want)
	}

	// Three more levels (8..10) touch the next three in the cycle only.
	c.GainAttributePoints(tuning, 7, 3)
	if c.Attributes.CON != 12 || c.Attributes.INT != 12 || c.Attributes.WIS != 12 {
		t.Errorf("attributes after nine levels = %+v, want CON/INT/WIS at 12", c.Attributes)
	}
	if c.Attributes.STR != 11 || c.Attributes.DEX != 11 || c.Attributes.CHA != 11 {
		t.Errorf("attributes after nine levels = %+v, want STR/DEX/CHA still 11", c.Attributes)
	}
}

func TestGainAttributePointsRespectsCap(t *testing.T) {
	tuning := progression.DefaultTuning()
	w := New("tester")
	c := &w.Character
	cap := tuning.AttributeCap(0)

	c.Attributes.STR = cap
	// Level 6 lands on STR in the cycle; the point is discarded at cap.
	c.GainAttributePoints(tuning, 5, 1)

	if c.Attributes.STR != cap {
		t.Errorf("STR at cap after grant = %d, want %d", c.Attributes.STR, cap)
	}
}

func TestAccountBonusesRequireHaven(t *testing.T) {
	a := Account{HavenRooms: map[string]int{"library": 2}}

	if b := a.Bonuses(); b != (Bonuses{}) {
		t.Errorf("locked haven should grant no bonuses, got %+v", b)
	}

	a.HavenUnlocked = true
	if b := a.Bonuses(); b.XPPct != 10 {
		t.Errorf("library tier 2 should grant 10%% XP, got %f", b.XPPct)
	}
}

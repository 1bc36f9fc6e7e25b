package achievements

import "github.com/vovakirdan/tui-idler/internal/world"

func init() {
	Register(Achievement{
		ID:    "first-blood",
		Title: "First Blood",
		Unlocked: func(w *world.State) bool {
			return w.Character.TotalKills >= 1
		},
	})
	Register(Achievement{
		ID:    "hundred-kills",
		Title: "Centurion",
		Unlocked: func(w *world.State) bool {
			return w.Character.TotalKills >= 100
		},
	})
	Register(Achievement{
		ID:    "thousand-kills",
		Title: "Reaper",
		Unlocked: func(w *world.State) bool {
			return w.Character.TotalKills >= 1000
		},
	})
	Register(Achievement{
		ID:    "level-10",
		Title: "Apprentice",
		Unlocked: func(w *world.State) bool {
			return w.Character.Level >= 10
		},
	})
	Register(Achievement{
		ID:    "level-50",
		Title: "Veteran",
		Unlocked: func(w *world.State) bool {
			return w.Character.Level >= 50
		},
	})
	Register(Achievement{
		ID:    "first-prestige",
		Title: "Reborn",
		Unlocked: func(w *world.State) bool {
			return w.Character.PrestigeRank >= 1
		},
	})
	Register(Achievement{
		ID:    "prestige-10",
		Title: "Eternal",
		Unlocked: func(w *world.State) bool {
			return w.Character.PrestigeRank >= 10
		},
	})
	Register(Achievement{
		ID:    "first-catch",
		Title: "Gone Fishing",
		Unlocked: func(w *world.State) bool {
			return w.Character.LifetimeCatches >= 1
		},
	})
	Register(Achievement{
		ID:    "master-angler",
		Title: "Master Angler",
		Unlocked: func(w *world.State) bool {
			return w.Character.FishingRank >= 5
		},
	})
	Register(Achievement{
		ID:    "dungeon-clear",
		Title: "Delver",
		Unlocked: func(w *world.State) bool {
			return w.Character.DungeonsCleared >= 1
		},
	})
	Register(Achievement{
		ID:    "challenger",
		Title: "Challenger",
		Unlocked: func(w *world.State) bool {
			return w.Character.ChallengesWon >= 1
		},
	})
	Register(Achievement{
		ID:    "haven-found",
		Title: "Homestead",
		Unlocked: func(w *world.State) bool {
			return w.Account.HavenUnlocked
		},
	})
	Register(Achievement{
		ID:    "marathon",
		Title: "Marathon",
		Unlocked: func(w *world.State) bool {
			return w.Character.PlaySeconds >= 3600
		},
	})
	Register(Achievement{
		ID:    "zone-3",
		Title: "Wanderer",
		Unlocked: func(w *world.State) bool {
			return w.Character.Zone >= 2
		},
	})
}

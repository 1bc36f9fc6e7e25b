// Package achievements provides a global registry of unlock predicates.
// Achievements register themselves in init() functions, allowing the
// simulation to evaluate the full set without hardcoded dependencies.
package achievements

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-idler/internal/world"
)

// Achievement couples an identifier with its unlock predicate. Predicates
// must be pure reads of world state; unlock records live on the account.
type Achievement struct {
	ID       string
	Title    string
	Unlocked func(w *world.State) bool
}

var (
	registry = make(map[string]Achievement)
	mu       sync.RWMutex
)

// Register adds an achievement to the registry.
// Typically called from an init() function.
// Panics if the ID is already taken.
func Register(a Achievement) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[a.ID]; exists {
		panic(fmt.Sprintf("achievements: %q already registered", a.ID))
	}
	registry[a.ID] = a
}

// All returns every registered achievement, sorted by ID so that
// evaluation order (and therefore event order) is deterministic.
func All() []Achievement {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Achievement, 0, len(registry))
	for _, a := range registry {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns an achievement by ID.
func Lookup(id string) (Achievement, bool) {
	mu.RLock()
	defer mu.RUnlock()

	a, ok := registry[id]
	return a, ok
}

// Evaluate checks every registered predicate against the world and records
// new unlocks on the account at the given tick. Returns newly unlocked IDs
// in registry order.
func Evaluate(w *world.State, tick uint64) []string {
	var unlocked []string
	for _, a := range All() {
		if _, done := w.Account.Achievements[a.ID]; done {
			continue
		}
		if a.Unlocked(w) {
			w.Account.Achievements[a.ID] = tick
			unlocked = append(unlocked, a.ID)
		}
	}
	return unlocked
}

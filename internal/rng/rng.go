// Package rng abstracts the source of randomness used by the simulation.
// Every stochastic decision in the tick pipeline draws from a Source, so the
// same pipeline can run live (time-seeded) or fully reproducibly (fixed seed)
// for tests and the batch simulator.
package rng

import (
	"math/rand"
	"time"
)

// Source is the minimal randomness capability the simulation depends on.
// *rand.Rand satisfies it directly; tests may supply scripted sources.
type Source interface {
	// Intn returns a uniform int in [0, n). Panics if n <= 0, matching math/rand.
	Intn(n int) int

	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64
}

// Seeded returns a reproducible Source. Identical seeds yield identical
// draw sequences, which is what makes tick-for-tick determinism possible.
func Seeded(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Live returns a non-reproducible Source seeded from the wall clock.
func Live() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Between returns a uniform int in [min, max] inclusive.
// If max <= min it returns min.
func Between(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}

// Chance returns true with probability p. Values outside [0, 1] clamp.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// WeightedIndex picks an index proportionally to weights. Non-positive
// weights are ignored; if no weight is positive it returns 0.
func WeightedIndex(src Source, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	roll := src.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if roll < w {
			return i
		}
		roll -= w
	}
	return 0
}

// Package ranking assigns dense ranks to actors and builds ranked category
// tables from raw provider records.
package ranking

import (
	"math"
	"sort"
)

// Order is the direction in which values are ranked.
type Order int

const (
	// Descending ranks the largest value first.
	Descending Order = iota
	// Ascending ranks the smallest value first.
	Ascending
)

// DenseRank ranks items by value, largest first. Exactly equal values share a
// rank and the next distinct value gets the previous rank plus one. Equal
// values are visited in ascending key order.
func DenseRank[T any](items []T, valueOf func(T) float64, keyOf func(T) string) map[string]int {
	return DenseRankWith(items, valueOf, keyOf, Descending, 0)
}

// DenseRankWith is DenseRank with an explicit order and tie tolerance. Two
// consecutive values closer than epsilon are a tie.
func DenseRankWith[T any](items []T, valueOf func(T) float64, keyOf func(T) string, order Order, epsilon float64) map[string]int {
	ranks := make(map[string]int, len(items))
	if len(items) == 0 {
		return ranks
	}

	type entry struct {
		key   string
		value float64
	}
	entries := make([]entry, len(items))
	for i, item := range items {
		entries[i] = entry{key: keyOf(item), value: valueOf(item)}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !tied(a.value, b.value, epsilon) {
			if order == Ascending {
				return a.value < b.value
			}
			return a.value > b.value
		}
		return a.key < b.key
	})

	rank := 1
	for i, e := range entries {
		if i > 0 && !tied(e.value, entries[i-1].value, epsilon) {
			rank++
		}
		if _, seen := ranks[e.key]; !seen {
			ranks[e.key] = rank
		}
	}
	return ranks
}

func tied(a, b, epsilon float64) bool {
	if epsilon <= 0 {
		return a == b
	}
	return math.Abs(a-b) < epsilon
}

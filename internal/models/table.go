package models

import "sort"

// RankedCategoryTable maps normalized actor names to ranked records for one
// category. It is immutable once built and safe for concurrent reads.
type RankedCategoryTable struct {
	category   Category
	byKey      map[string]ActorRecord
	ordered    []ActorRecord
	duplicates int
}

// NewRankedCategoryTable builds a table from ranked records. When two records
// share a key the better-ranked one is kept and the other counted as a
// duplicate.
func NewRankedCategoryTable(category Category, records []ActorRecord) *RankedCategoryTable {
	sorted := make([]ActorRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank < sorted[j].Rank
		}
		return sorted[i].Key < sorted[j].Key
	})

	t := &RankedCategoryTable{
		category: category,
		byKey:    make(map[string]ActorRecord, len(sorted)),
		ordered:  make([]ActorRecord, 0, len(sorted)),
	}
	for _, rec := range sorted {
		if rec.Key == "" {
			continue
		}
		if _, exists := t.byKey[rec.Key]; exists {
			t.duplicates++
			continue
		}
		rec.Category = category
		t.byKey[rec.Key] = rec
		t.ordered = append(t.ordered, rec)
	}
	return t
}

// EmptyTable returns a table with no entries. Every lookup misses.
func EmptyTable(category Category) *RankedCategoryTable {
	return NewRankedCategoryTable(category, nil)
}

// Category returns the table's category
func (t *RankedCategoryTable) Category() Category {
	return t.category
}

// Lookup returns the record stored under a normalized key.
func (t *RankedCategoryTable) Lookup(key string) (ActorRecord, bool) {
	if t == nil {
		return ActorRecord{}, false
	}
	rec, ok := t.byKey[key]
	return rec, ok
}

// Records returns a copy of all records in rank order.
func (t *RankedCategoryTable) Records() []ActorRecord {
	if t == nil {
		return nil
	}
	out := make([]ActorRecord, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Len returns the number of distinct actors.
func (t *RankedCategoryTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ordered)
}

// Duplicates returns how many input records collapsed onto an existing key.
func (t *RankedCategoryTable) Duplicates() int {
	if t == nil {
		return 0
	}
	return t.duplicates
}

// MaxRank returns the worst rank in the table, 0 when empty.
func (t *RankedCategoryTable) MaxRank() int {
	if t.Len() == 0 {
		return 0
	}
	return t.ordered[len(t.ordered)-1].Rank
}

// TableSet holds one ranked table per category.
type TableSet map[Category]*RankedCategoryTable

// Get returns the table for a category, or an empty table when missing.
func (ts TableSet) Get(c Category) *RankedCategoryTable {
	if t, ok := ts[c]; ok && t != nil {
		return t
	}
	return EmptyTable(c)
}

package models

import (
	"fmt"
	"strings"
)

// Category identifies one of the ranked actor populations.
type Category string

const (
	CategoryHorse   Category = "horse"
	CategoryJockey  Category = "jockey"
	CategoryTrainer Category = "trainer"
	CategoryBreeder Category = "breeder"
	CategoryOwner   Category = "owner"
)

// sourceKeys maps each category to the key used by the published data files.
var sourceKeys = map[Category]string{
	CategoryHorse:   "chevaux",
	CategoryJockey:  "jockeys",
	CategoryTrainer: "entraineurs",
	CategoryBreeder: "eleveurs",
	CategoryOwner:   "proprietaires",
}

// AllCategories returns every category in scoring order.
func AllCategories() []Category {
	return []Category{CategoryHorse, CategoryJockey, CategoryTrainer, CategoryBreeder, CategoryOwner}
}

// Valid checks if the category is known
func (c Category) Valid() bool {
	_, ok := sourceKeys[c]
	return ok
}

// MultiValued reports whether a participant field for this category may hold
// several names (co-breeders, partnership owners).
func (c Category) MultiValued() bool {
	return c == CategoryBreeder || c == CategoryOwner
}

// SourceKey returns the data file key, e.g. "chevaux" for horses.
func (c Category) SourceKey() string {
	return sourceKeys[c]
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory accepts either the English name or the data file key.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for cat, key := range sourceKeys {
		if s == string(cat) || s == key {
			return cat, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

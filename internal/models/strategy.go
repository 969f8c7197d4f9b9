package models

import (
	"fmt"
	"strings"
)

// Strategy selects the stake allocation algorithm.
type Strategy string

const (
	StrategyDutch    Strategy = "dutch"
	StrategyEV       Strategy = "ev"
	StrategyMidRange Strategy = "mid_range"
)

// ParseStrategy converts user input into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dutch":
		return StrategyDutch, nil
	case "ev":
		return StrategyEV, nil
	case "mid_range", "mid-range", "midrange":
		return StrategyMidRange, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// SearchState tracks the stake allocator through one calculation.
type SearchState int

const (
	StateIdle SearchState = iota
	StateValidating
	StateSearching
	StateFound
	StateExhausted
)

func (s SearchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSearching:
		return "searching"
	case StateFound:
		return "found"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// CanTransition reports whether the allocator may move from s to next.
func (s SearchState) CanTransition(next SearchState) bool {
	switch s {
	case StateIdle:
		return next == StateValidating
	case StateValidating:
		return next == StateSearching || next == StateIdle
	case StateSearching:
		return next == StateFound || next == StateExhausted
	default:
		return false
	}
}

// Terminal reports whether no further transition is possible.
func (s SearchState) Terminal() bool {
	return s == StateFound || s == StateExhausted
}

package staking

import "math"

const floatTolerance = 1e-9

// StepFor returns the stake increment used for n entrants.
func StepFor(n int) float64 {
	switch {
	case n <= 2:
		return 0.5
	case n == 3:
		return 1
	default:
		return 2
	}
}

// bounds are the branch-and-bound limits for one EV search.
type bounds struct {
	budget   float64 // total to spread, fully staked
	minStake float64 // floor for every entrant
	maxStake float64 // cap for every entrant
	step     float64
	limit    int // iteration budget
}

// searchResult is the best assignment an EV search found.
type searchResult struct {
	stakes     []float64
	mean       float64
	found      bool
	iterations int
	capReached bool
}

type evSearch struct {
	odds    []float64
	b       bounds
	current []float64
	result  searchResult
}

// searchEV enumerates stake assignments on a grid of b.step, starting at
// b.minStake, with the last entrant taking whatever budget remains. An
// assignment counts only when every entrant's net gain is strictly positive;
// the one with the highest mean net gain wins, earliest first on ties.
func searchEV(odds []float64, b bounds) searchResult {
	s := &evSearch{
		odds:    odds,
		b:       b,
		current: make([]float64, len(odds)),
	}
	if len(odds) == 0 || b.budget < b.minStake*float64(len(odds))-floatTolerance {
		return s.result
	}
	s.visit(0, b.budget)
	return s.result
}

func (s *evSearch) visit(idx int, remaining float64) {
	if s.result.capReached {
		return
	}
	if s.result.iterations >= s.b.limit {
		s.result.capReached = true
		return
	}
	s.result.iterations++

	rest := len(s.odds) - idx - 1
	if rest == 0 {
		if remaining > s.b.maxStake+floatTolerance || remaining < s.b.minStake-floatTolerance {
			return
		}
		if !s.profitable(idx, remaining) {
			return
		}
		s.current[idx] = remaining
		s.evaluate()
		return
	}

	upper := math.Min(remaining-s.b.minStake*float64(rest), s.b.maxStake)
	if upper < s.b.minStake-floatTolerance {
		return
	}
	steps := int(math.Floor((upper-s.b.minStake)/s.b.step + floatTolerance))
	for k := 0; k <= steps; k++ {
		stake := s.b.minStake + float64(k)*s.b.step
		// Remaining entrants cannot absorb the rest under the cap.
		if remaining-stake > s.b.maxStake*float64(rest)+floatTolerance {
			continue
		}
		if !s.profitable(idx, stake) {
			continue
		}
		s.current[idx] = stake
		s.visit(idx+1, remaining-stake)
		if s.result.capReached {
			return
		}
	}
}

func (s *evSearch) profitable(idx int, stake float64) bool {
	return stake*s.odds[idx]-s.b.budget > floatTolerance
}

func (s *evSearch) evaluate() {
	var payout float64
	for i, stake := range s.current {
		payout += stake * s.odds[i]
	}
	mean := payout/float64(len(s.odds)) - s.b.budget
	if !s.result.found || mean > s.result.mean+floatTolerance {
		s.result.found = true
		s.result.mean = mean
		s.result.stakes = append(s.result.stakes[:0], s.current...)
	}
}

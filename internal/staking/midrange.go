package staking

import (
	"github.com/yourusername/hippique/internal/models"
)

// FilterMidRange drops the excludeLow shortest-priced and excludeHigh
// longest-priced entrants. At least two must remain.
func FilterMidRange(entries []models.BetEntry, excludeLow, excludeHigh int) ([]models.BetEntry, error) {
	sorted := sortByOdds(entries)
	remaining := len(sorted) - excludeLow - excludeHigh
	if remaining < 2 {
		if remaining < 0 {
			remaining = 0
		}
		return nil, &models.InsufficientEntrantsError{
			Remaining:   remaining,
			ExcludeLow:  excludeLow,
			ExcludeHigh: excludeHigh,
		}
	}
	return sorted[excludeLow : len(sorted)-excludeHigh], nil
}

// midRange runs the EV search on the filtered field for each subset size
// (the n shortest-priced remaining entrants) and keeps the best profitable
// plan by mean net gain. Without explicit sizes the whole filtered field is
// used.
func (a *Allocator) midRange(req models.StakeRequest) (*models.StakePlan, error) {
	filtered, err := FilterMidRange(req.Entries, req.ExcludeLow, req.ExcludeHigh)
	if err != nil {
		return nil, err
	}

	sizes := req.SubsetSizes
	if len(sizes) == 0 {
		sizes = []int{len(filtered)}
	}

	limit := a.budgetFor(req)
	var best *models.StakePlan
	iterations := 0
	capReached := false
	for _, size := range sizes {
		if size < 2 || size > len(filtered) {
			continue
		}
		plan := a.ev(filtered[:size], req.TotalBudget, req.MaxPerEntrant, limit)
		iterations += plan.Iterations
		capReached = capReached || plan.CapReached
		if !plan.Profitable {
			continue
		}
		if best == nil || plan.AvgNetGain > best.AvgNetGain+floatTolerance {
			best = plan
		}
	}

	if best == nil {
		best = &models.StakePlan{Entries: []models.StakeLine{}}
	}
	best.Strategy = models.StrategyMidRange
	best.Iterations = iterations
	best.CapReached = capReached
	return best, nil
}

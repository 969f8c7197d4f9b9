package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinOdds is the smallest decimal odds accepted for a bet entry.
const MinOdds = 1.01

// BetEntry is a selected runner with its (user-editable) decimal odds.
type BetEntry struct {
	HorseName string  `json:"horse_name" validate:"required"`
	Odds      float64 `json:"odds" validate:"gte=1.01"`
}

// StakeRequest is the input to a stake calculation.
type StakeRequest struct {
	Entries         []BetEntry `json:"entries" validate:"min=2,dive"`
	TotalBudget     float64    `json:"total_budget" validate:"gt=0"`
	MaxPerEntrant   float64    `json:"max_per_entrant" validate:"gt=0"`
	Strategy        Strategy   `json:"strategy" validate:"required,oneof=dutch ev mid_range"`
	ExcludeLow      int        `json:"exclude_low" validate:"gte=0"`
	ExcludeHigh     int        `json:"exclude_high" validate:"gte=0"`
	SubsetSizes     []int      `json:"subset_sizes,omitempty" validate:"dive,gte=2"`
	IterationBudget int        `json:"iteration_budget,omitempty" validate:"gte=0"`
}

// StakeLine is the stake placed on one entrant and its outcome if it wins.
type StakeLine struct {
	HorseName   string  `json:"horse_name"`
	Odds        float64 `json:"odds"`
	Stake       float64 `json:"stake"`
	GrossPayout float64 `json:"gross_payout"`
	NetGain     float64 `json:"net_gain"`
}

// StakePlan is the result of one calculation. Amounts are unrounded; use
// Display for two-decimal presentation. CapReached is set when the search
// stopped at its iteration budget; the plan is then the best one seen.
type StakePlan struct {
	ID         uuid.UUID   `json:"id"`
	Strategy   Strategy    `json:"strategy"`
	Entries    []StakeLine `json:"entries"`
	TotalStake float64     `json:"total_stake"`
	MinNetGain float64     `json:"min_net_gain"`
	AvgNetGain float64     `json:"avg_net_gain"`
	MaxNetGain float64     `json:"max_net_gain"`
	Profitable bool        `json:"profitable"`
	State      SearchState `json:"-"`
	CapReached bool        `json:"cap_reached"`
	Iterations int         `json:"iterations"`
	SubsetSize int         `json:"subset_size"`
}

// DisplayLine is a StakeLine rounded for presentation.
type DisplayLine struct {
	HorseName   string          `json:"horse_name"`
	Odds        decimal.Decimal `json:"odds"`
	Stake       decimal.Decimal `json:"stake"`
	GrossPayout decimal.Decimal `json:"gross_payout"`
	NetGain     decimal.Decimal `json:"net_gain"`
}

// DisplayPlan is a StakePlan with every amount rounded to two decimals.
type DisplayPlan struct {
	Strategy   Strategy        `json:"strategy"`
	Entries    []DisplayLine   `json:"entries"`
	TotalStake decimal.Decimal `json:"total_stake"`
	MinNetGain decimal.Decimal `json:"min_net_gain"`
	AvgNetGain decimal.Decimal `json:"avg_net_gain"`
	MaxNetGain decimal.Decimal `json:"max_net_gain"`
	Profitable bool            `json:"profitable"`
	CapReached bool            `json:"cap_reached"`
}

// Money rounds an amount to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Display rounds the plan for presentation.
func (p *StakePlan) Display() DisplayPlan {
	out := DisplayPlan{
		Strategy:   p.Strategy,
		Entries:    make([]DisplayLine, 0, len(p.Entries)),
		TotalStake: Money(p.TotalStake),
		MinNetGain: Money(p.MinNetGain),
		AvgNetGain: Money(p.AvgNetGain),
		MaxNetGain: Money(p.MaxNetGain),
		Profitable: p.Profitable,
		CapReached: p.CapReached,
	}
	for _, line := range p.Entries {
		out.Entries = append(out.Entries, DisplayLine{
			HorseName:   line.HorseName,
			Odds:        Money(line.Odds),
			Stake:       Money(line.Stake),
			GrossPayout: Money(line.GrossPayout),
			NetGain:     Money(line.NetGain),
		})
	}
	return out
}

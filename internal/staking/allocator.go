// Package staking spreads a betting budget over selected entrants.
package staking

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/yourusername/hippique/internal/logger"
	"github.com/yourusername/hippique/internal/metrics"
	"github.com/yourusername/hippique/internal/models"
)

// Defaults for Config.
const (
	DefaultMinStake        = 1.0
	DefaultIterationBudget = 100000
)

// DefaultSubsetSizes are the entrant counts tried by ComputeAcrossSizes.
var DefaultSubsetSizes = []int{2, 3, 4, 5}

// Config tunes the allocator.
type Config struct {
	MinStake        float64 `mapstructure:"min_stake" validate:"gt=0"`
	IterationBudget int     `mapstructure:"iteration_budget" validate:"gt=0"`
	SubsetSizes     []int   `mapstructure:"subset_sizes" validate:"dive,gte=2"`
}

// DefaultConfig returns the standard allocator settings.
func DefaultConfig() Config {
	return Config{
		MinStake:        DefaultMinStake,
		IterationBudget: DefaultIterationBudget,
		SubsetSizes:     append([]int(nil), DefaultSubsetSizes...),
	}
}

// Allocator computes stake plans. It holds no per-calculation state and is
// safe for concurrent use.
type Allocator struct {
	cfg      Config
	validate *validator.Validate
	log      *logger.StakeLogger
}

// NewAllocator creates an Allocator. Zero values in cfg take the defaults.
func NewAllocator(cfg Config, log *logger.StakeLogger) *Allocator {
	if cfg.MinStake <= 0 {
		cfg.MinStake = DefaultMinStake
	}
	if cfg.IterationBudget <= 0 {
		cfg.IterationBudget = DefaultIterationBudget
	}
	if len(cfg.SubsetSizes) == 0 {
		cfg.SubsetSizes = append([]int(nil), DefaultSubsetSizes...)
	}
	if log == nil {
		log = logger.NewStakeLogger(nil)
	}
	return &Allocator{cfg: cfg, validate: validator.New(), log: log}
}

// calculation tracks one run through the allocator state machine.
type calculation struct {
	id    uuid.UUID
	state models.SearchState
	log   *logger.StakeLogger
}

func (c *calculation) transition(next models.SearchState) error {
	if !c.state.CanTransition(next) {
		return fmt.Errorf("invalid stake state transition %s -> %s", c.state, next)
	}
	c.log.LogStateTransition(c.id.String(), c.state.String(), next.String())
	c.state = next
	return nil
}

// Compute validates req and runs its strategy. Bad input returns a
// *models.ValidationError; the mid-range filter may return a
// *models.InsufficientEntrantsError. An unprofitable outcome is not an error.
func (a *Allocator) Compute(req models.StakeRequest) (*models.StakePlan, error) {
	calc := &calculation{id: uuid.New(), state: models.StateIdle, log: a.log}
	if err := calc.transition(models.StateValidating); err != nil {
		return nil, err
	}
	if err := a.validateRequest(req); err != nil {
		a.log.LogValidationFailure(calc.id.String(), err)
		metrics.RecordStakeCalculation(string(req.Strategy), "invalid")
		return nil, err
	}
	if err := calc.transition(models.StateSearching); err != nil {
		return nil, err
	}

	var plan *models.StakePlan
	switch req.Strategy {
	case models.StrategyDutch:
		plan = Dutch(req.Entries, req.TotalBudget)
	case models.StrategyEV:
		plan = a.ev(req.Entries, req.TotalBudget, req.MaxPerEntrant, a.budgetFor(req))
	case models.StrategyMidRange:
		var err error
		plan, err = a.midRange(req)
		if err != nil {
			metrics.RecordStakeCalculation(string(req.Strategy), "invalid")
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownStrategy, req.Strategy)
	}

	return a.finish(calc, plan), nil
}

// ComputeAcrossSizes runs req once per subset size, each time on the n
// shortest-priced entrants. Sizes larger than the field are skipped. The
// mid-range strategy already searches across sizes and returns one plan.
func (a *Allocator) ComputeAcrossSizes(req models.StakeRequest) ([]*models.StakePlan, error) {
	if req.Strategy == models.StrategyMidRange {
		plan, err := a.Compute(req)
		if err != nil {
			return nil, err
		}
		return []*models.StakePlan{plan}, nil
	}

	sorted := sortByOdds(req.Entries)
	plans := make([]*models.StakePlan, 0, len(a.sizesFor(req)))
	for _, size := range a.sizesFor(req) {
		if size > len(sorted) {
			continue
		}
		sub := req
		sub.Entries = sorted[:size]
		plan, err := a.Compute(sub)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if len(plans) == 0 {
		return nil, models.NewValidationError("subset_sizes", fmt.Sprintf("no size fits %d entrants", len(sorted)))
	}
	return plans, nil
}

func (a *Allocator) finish(calc *calculation, plan *models.StakePlan) *models.StakePlan {
	plan.ID = calc.id
	next := models.StateFound
	if !plan.Profitable {
		next = models.StateExhausted
	}
	// Searching always allows Found and Exhausted.
	_ = calc.transition(next)
	plan.State = calc.state

	if plan.CapReached {
		a.log.LogSearchExhausted(calc.id.String(), plan.Iterations)
	}
	a.log.LogCalculation(calc.id.String(), string(plan.Strategy), len(plan.Entries), plan.Iterations,
		plan.Profitable, plan.CapReached, plan.AvgNetGain)

	outcome := "unprofitable"
	if plan.Profitable {
		outcome = "profitable"
	}
	metrics.RecordStakeCalculation(string(plan.Strategy), outcome)
	return plan
}

// Dutch spreads budget in proportion to implied probability so that every
// entrant returns the same net gain. The gain may be negative when the
// implied probabilities sum to 1 or more.
func Dutch(entries []models.BetEntry, budget float64) *models.StakePlan {
	inverse := lo.SumBy(entries, func(e models.BetEntry) float64 { return 1 / e.Odds })
	stakes := lo.Map(entries, func(e models.BetEntry, _ int) float64 {
		return (1 / e.Odds) / inverse * budget
	})
	return buildPlan(models.StrategyDutch, entries, stakes)
}

func (a *Allocator) ev(entries []models.BetEntry, budget, maxPer float64, limit int) *models.StakePlan {
	odds := lo.Map(entries, func(e models.BetEntry, _ int) float64 { return e.Odds })
	res := searchEV(odds, bounds{
		budget:   budget,
		minStake: a.cfg.MinStake,
		maxStake: maxPer,
		step:     StepFor(len(entries)),
		limit:    limit,
	})
	metrics.RecordStakeSearch(string(models.StrategyEV), res.iterations, res.capReached)

	var plan *models.StakePlan
	if res.found {
		plan = buildPlan(models.StrategyEV, entries, res.stakes)
	} else {
		plan = &models.StakePlan{Strategy: models.StrategyEV, Entries: []models.StakeLine{}}
	}
	plan.Iterations = res.iterations
	plan.CapReached = res.capReached
	plan.SubsetSize = len(entries)
	return plan
}

func (a *Allocator) budgetFor(req models.StakeRequest) int {
	if req.IterationBudget > 0 {
		return req.IterationBudget
	}
	return a.cfg.IterationBudget
}

func (a *Allocator) sizesFor(req models.StakeRequest) []int {
	if len(req.SubsetSizes) > 0 {
		return req.SubsetSizes
	}
	return a.cfg.SubsetSizes
}

// buildPlan fills payouts and summary figures for the given stakes. A plan
// is profitable when every net gain is strictly positive.
func buildPlan(strategy models.Strategy, entries []models.BetEntry, stakes []float64) *models.StakePlan {
	plan := &models.StakePlan{
		Strategy:   strategy,
		Entries:    make([]models.StakeLine, len(entries)),
		SubsetSize: len(entries),
	}
	for i, e := range entries {
		plan.TotalStake += stakes[i]
		plan.Entries[i] = models.StakeLine{HorseName: e.HorseName, Odds: e.Odds, Stake: stakes[i]}
	}
	for i := range plan.Entries {
		line := &plan.Entries[i]
		line.GrossPayout = line.Stake * line.Odds
		line.NetGain = line.GrossPayout - plan.TotalStake
	}

	gains := lo.Map(plan.Entries, func(l models.StakeLine, _ int) float64 { return l.NetGain })
	plan.MinNetGain = lo.Min(gains)
	plan.MaxNetGain = lo.Max(gains)
	plan.AvgNetGain = lo.Sum(gains) / float64(len(gains))
	plan.Profitable = len(gains) > 0 && plan.MinNetGain > 0
	return plan
}

// sortByOdds returns a copy of entries ordered by ascending odds, then name.
func sortByOdds(entries []models.BetEntry) []models.BetEntry {
	out := make([]models.BetEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Odds != out[j].Odds {
			return out[i].Odds < out[j].Odds
		}
		return out[i].HorseName < out[j].HorseName
	})
	return out
}

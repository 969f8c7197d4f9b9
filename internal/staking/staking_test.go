package staking

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hippique/internal/models"
)

func entries(odds ...float64) []models.BetEntry {
	names := []string{"H1", "H2", "H3", "H4", "H5", "H6", "H7"}
	out := make([]models.BetEntry, len(odds))
	for i, o := range odds {
		out[i] = models.BetEntry{HorseName: names[i], Odds: o}
	}
	return out
}

func stakesOf(plan *models.StakePlan) []float64 {
	out := make([]float64, len(plan.Entries))
	for i, e := range plan.Entries {
		out[i] = e.Stake
	}
	return out
}

func TestDutchTwoRunners(t *testing.T) {
	plan, err := NewAllocator(DefaultConfig(), nil).Compute(models.StakeRequest{
		Entries:       entries(2.0, 3.0),
		TotalBudget:   50,
		MaxPerEntrant: 50,
		Strategy:      models.StrategyDutch,
	})
	require.NoError(t, err)

	require.Len(t, plan.Entries, 2)
	assert.InDelta(t, 30, plan.Entries[0].Stake, 1e-9)
	assert.InDelta(t, 20, plan.Entries[1].Stake, 1e-9)
	assert.InDelta(t, 10, plan.MinNetGain, 1e-9)
	assert.InDelta(t, 10, plan.MaxNetGain, 1e-9)
	assert.True(t, plan.Profitable)
	assert.Equal(t, models.StateFound, plan.State)
	assert.NotEqual(t, uuid.Nil, plan.ID)
	assert.Equal(t, "30", plan.Display().Entries[0].Stake.String())
}

func TestDutchEqualPayout(t *testing.T) {
	cases := [][]float64{
		{2.0, 3.0},
		{1.8, 4.5, 9.0},
		{3.2, 5.5, 7.0, 12.0, 25.0},
		{1.2, 1.3},
	}
	for _, odds := range cases {
		plan := Dutch(entries(odds...), 100)
		var sum float64
		for _, line := range plan.Entries {
			sum += line.Stake
			assert.InDelta(t, plan.Entries[0].NetGain, line.NetGain, 1e-6)
		}
		assert.InDelta(t, 100, sum, 1e-6)
	}
}

func TestDutchUnprofitableIsReported(t *testing.T) {
	plan, err := NewAllocator(DefaultConfig(), nil).Compute(models.StakeRequest{
		Entries:       entries(1.2, 1.3),
		TotalBudget:   100,
		MaxPerEntrant: 100,
		Strategy:      models.StrategyDutch,
	})
	require.NoError(t, err)
	assert.False(t, plan.Profitable)
	assert.Less(t, plan.AvgNetGain, 0.0)
	assert.Equal(t, models.StateExhausted, plan.State)
}

func TestEVMaximizesMeanNetGain(t *testing.T) {
	plan, err := NewAllocator(DefaultConfig(), nil).Compute(models.StakeRequest{
		Entries:       entries(2.0, 4.0),
		TotalBudget:   10,
		MaxPerEntrant: 10,
		Strategy:      models.StrategyEV,
	})
	require.NoError(t, err)

	require.True(t, plan.Profitable)
	assert.Equal(t, []float64{5.5, 4.5}, stakesOf(plan))
	assert.InDelta(t, 4.5, plan.AvgNetGain, 1e-9)
	assert.False(t, plan.CapReached)
	assert.Positive(t, plan.Iterations)
}

func TestEVRespectsPerEntrantCap(t *testing.T) {
	alloc := NewAllocator(DefaultConfig(), nil)
	req := models.StakeRequest{
		Entries:       entries(4.0, 4.0),
		TotalBudget:   10,
		MaxPerEntrant: 10,
		Strategy:      models.StrategyEV,
	}

	uncapped, err := alloc.Compute(req)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, stakesOf(uncapped))

	req.MaxPerEntrant = 6
	capped, err := alloc.Compute(req)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, stakesOf(capped))
}

func TestEVProfitabilityGuarantee(t *testing.T) {
	cases := [][]float64{
		{2.0, 4.0},
		{3.0, 5.0, 8.0},
		{5.0, 6.0, 7.0, 9.0},
		{1.5, 1.5},
		{1.1, 2.0, 2.5},
	}
	alloc := NewAllocator(DefaultConfig(), nil)
	for _, odds := range cases {
		plan, err := alloc.Compute(models.StakeRequest{
			Entries:       entries(odds...),
			TotalBudget:   30,
			MaxPerEntrant: 30,
			Strategy:      models.StrategyEV,
		})
		require.NoError(t, err)
		if plan.Profitable {
			for _, line := range plan.Entries {
				assert.Greater(t, line.NetGain, 0.0, "odds %v", odds)
			}
			continue
		}
		assert.Empty(t, plan.Entries, "odds %v", odds)
	}
}

func TestEVNoProfitableAllocation(t *testing.T) {
	plan, err := NewAllocator(DefaultConfig(), nil).Compute(models.StakeRequest{
		Entries:       entries(1.5, 1.5),
		TotalBudget:   10,
		MaxPerEntrant: 10,
		Strategy:      models.StrategyEV,
	})
	require.NoError(t, err)
	assert.False(t, plan.Profitable)
	assert.Empty(t, plan.Entries)
	assert.Equal(t, models.StateExhausted, plan.State)
}

func TestEVStopsAtIterationBudget(t *testing.T) {
	plan, err := NewAllocator(DefaultConfig(), nil).Compute(models.StakeRequest{
		Entries:         entries(5, 5, 5, 5),
		TotalBudget:     100,
		MaxPerEntrant:   100,
		Strategy:        models.StrategyEV,
		IterationBudget: 10,
	})
	require.NoError(t, err)

	assert.True(t, plan.CapReached)
	assert.Equal(t, 10, plan.Iterations)
	require.True(t, plan.Profitable)
	assert.Equal(t, []float64{21, 21, 21, 37}, stakesOf(plan))
}

func TestStepFor(t *testing.T) {
	assert.Equal(t, 0.5, StepFor(2))
	assert.Equal(t, 1.0, StepFor(3))
	assert.Equal(t, 2.0, StepFor(4))
	assert.Equal(t, 2.0, StepFor(7))
}

func TestMidRangePicksBestSubset(t *testing.T) {
	plan, err := NewAllocator(DefaultConfig(), nil).Compute(models.StakeRequest{
		Entries:       entries(8, 1.5, 20, 3, 5),
		TotalBudget:   20,
		MaxPerEntrant: 20,
		Strategy:      models.StrategyMidRange,
		ExcludeLow:    1,
		ExcludeHigh:   1,
		SubsetSizes:   []int{2, 3},
	})
	require.NoError(t, err)

	require.True(t, plan.Profitable)
	assert.Equal(t, models.StrategyMidRange, plan.Strategy)
	assert.Equal(t, 2, plan.SubsetSize)
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, "H4", plan.Entries[0].HorseName)
	assert.Equal(t, "H5", plan.Entries[1].HorseName)
	assert.Equal(t, []float64{7, 13}, stakesOf(plan))
	assert.InDelta(t, 23, plan.AvgNetGain, 1e-9)
}

func TestMidRangeInsufficientEntrants(t *testing.T) {
	_, err := NewAllocator(DefaultConfig(), nil).Compute(models.StakeRequest{
		Entries:       entries(1.5, 3, 5, 8, 20),
		TotalBudget:   20,
		MaxPerEntrant: 20,
		Strategy:      models.StrategyMidRange,
		ExcludeLow:    2,
		ExcludeHigh:   2,
	})

	var insufficient *models.InsufficientEntrantsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 1, insufficient.Remaining)
}

func TestComputeAcrossSizes(t *testing.T) {
	plans, err := NewAllocator(DefaultConfig(), nil).ComputeAcrossSizes(models.StakeRequest{
		Entries:       entries(6, 2, 4),
		TotalBudget:   30,
		MaxPerEntrant: 30,
		Strategy:      models.StrategyDutch,
	})
	require.NoError(t, err)

	require.Len(t, plans, 2)
	assert.Equal(t, 2, plans[0].SubsetSize)
	assert.Equal(t, "H2", plans[0].Entries[0].HorseName)
	assert.Equal(t, 3, plans[1].SubsetSize)
	assert.NotEqual(t, plans[0].ID, plans[1].ID)
}

func TestComputeValidation(t *testing.T) {
	valid := func() models.StakeRequest {
		return models.StakeRequest{
			Entries:       entries(2.0, 3.0),
			TotalBudget:   50,
			MaxPerEntrant: 50,
			Strategy:      models.StrategyDutch,
		}
	}
	tests := []struct {
		name   string
		mutate func(r *models.StakeRequest)
		field  string
	}{
		{"single entrant", func(r *models.StakeRequest) { r.Entries = r.Entries[:1] }, "entries"},
		{"odds below minimum", func(r *models.StakeRequest) { r.Entries[1].Odds = 1.0 }, "Entries[1].Odds"},
		{"zero budget", func(r *models.StakeRequest) { r.TotalBudget = 0 }, "TotalBudget"},
		{"negative cap", func(r *models.StakeRequest) { r.MaxPerEntrant = -5 }, "MaxPerEntrant"},
		{"unknown strategy", func(r *models.StakeRequest) { r.Strategy = "martingale" }, "Strategy"},
		{"missing name", func(r *models.StakeRequest) { r.Entries[0].HorseName = "" }, "Entries[0].HorseName"},
	}
	alloc := NewAllocator(DefaultConfig(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			plan, err := alloc.Compute(req)

			assert.Nil(t, plan)
			var ve *models.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

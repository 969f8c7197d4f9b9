package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hippique/internal/models"
	"github.com/yourusername/hippique/internal/normalize"
)

type scored struct {
	name  string
	value float64
}

func value(s scored) float64 { return s.value }
func name(s scored) string    { return s.name }

func TestDenseRankTiesShareRank(t *testing.T) {
	items := []scored{{"C", 3}, {"B", 5}, {"A", 5}}

	ranks := DenseRank(items, value, name)

	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 2}, ranks)
}

func TestDenseRankIsGapFree(t *testing.T) {
	items := []scored{
		{"a", 9}, {"b", 9}, {"c", 9}, {"d", 7}, {"e", 7}, {"f", 1}, {"g", 0},
	}

	ranks := DenseRank(items, value, name)

	seen := map[int]bool{}
	maxRank := 0
	for _, r := range ranks {
		seen[r] = true
		if r > maxRank {
			maxRank = r
		}
	}
	for r := 1; r <= maxRank; r++ {
		assert.True(t, seen[r], "rank %d missing", r)
	}
	assert.Equal(t, 4, maxRank)
}

func TestDenseRankEmpty(t *testing.T) {
	ranks := DenseRank([]scored{}, value, name)
	assert.Empty(t, ranks)
}

func TestDenseRankWithAscendingEpsilon(t *testing.T) {
	items := []scored{{"x", 1.5}, {"y", 1.5004}, {"z", 2.0}}

	ranks := DenseRankWith(items, value, name, Ascending, DefaultTieEpsilon)

	assert.Equal(t, 1, ranks["x"])
	assert.Equal(t, 1, ranks["y"])
	assert.Equal(t, 2, ranks["z"])
}

func actor(key string, wins, starts, placings int) models.ActorRecord {
	m := models.Metrics{Wins: wins, Starts: starts, Placings: placings}
	return models.ActorRecord{Key: key, Name: key, Metrics: m, Rates: m.Rates()}
}

func TestCompositeScorerPerfectRecordWeights(t *testing.T) {
	records := []models.ActorRecord{
		actor("A", 10, 20, 5),
		actor("B", 3, 3, 0),
		actor("C", 2, 20, 10),
	}

	ranked := NewDefaultCompositeScorer().Rank(records)
	require.Len(t, ranked, 3)

	byKey := map[string]models.ActorRecord{}
	for _, r := range ranked {
		byKey[r.Key] = r
	}

	assert.InDelta(t, 1.5, byKey["A"].Composite, 1e-9)
	// B is unbeaten without placings: 0.7*2 + 0.3*1 rather than 0.5*2 + 0.3*1 + 0.2*3
	assert.InDelta(t, 1.7, byKey["B"].Composite, 1e-9)
	assert.InDelta(t, 2.6, byKey["C"].Composite, 1e-9)

	assert.Equal(t, []string{"A", "B", "C"}, []string{ranked[0].Key, ranked[1].Key, ranked[2].Key})
	assert.Equal(t, 1, byKey["A"].Rank)
	assert.Equal(t, 2, byKey["B"].Rank)
	assert.Equal(t, 3, byKey["C"].Rank)
}

func TestCompositeScorerEqualRecordsTie(t *testing.T) {
	records := []models.ActorRecord{
		actor("Y", 4, 10, 2),
		actor("X", 4, 10, 2),
		actor("Z", 1, 10, 1),
	}

	ranked := NewDefaultCompositeScorer().Rank(records)

	assert.Equal(t, "X", ranked[0].Key)
	assert.Equal(t, "Y", ranked[1].Key)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 1, ranked[1].Rank)
	assert.Equal(t, 2, ranked[2].Rank)
}

func TestCompositeScorerDoesNotMutateInput(t *testing.T) {
	records := []models.ActorRecord{actor("A", 1, 2, 0), actor("B", 2, 2, 0)}

	NewDefaultCompositeScorer().Rank(records)

	assert.Zero(t, records[0].Rank)
	assert.Zero(t, records[1].Composite)
}

func TestBuilderRanksRawRecords(t *testing.T) {
	b := NewBuilder(normalize.New(normalize.Config{}), nil, nil)

	table := b.Build(models.CategoryJockey, []models.SourceRecord{
		{Name: "M. Jean Dupont", Metrics: models.Metrics{Wins: 10, Starts: 40, Placings: 12}},
		{Name: "Paul Martin", Metrics: models.Metrics{Wins: 2, Starts: 30, Placings: 4}},
		{Name: "MR JEAN DUPONT", Metrics: models.Metrics{Wins: 1, Starts: 5, Placings: 1}},
		{Name: "", Metrics: models.Metrics{Wins: 50, Starts: 50}},
	})

	assert.Equal(t, 2, table.Len())
	rec, ok := table.Lookup("MR JEAN DUPONT")
	require.True(t, ok)
	assert.Equal(t, 1, rec.Rank)
	assert.Equal(t, 40, rec.Metrics.Starts)
	assert.InDelta(t, 25.0, rec.Rates.WinRate, 1e-9)
	assert.Equal(t, models.CategoryJockey, rec.Category)

	rec, ok = table.Lookup("PAUL MARTIN")
	require.True(t, ok)
	assert.Equal(t, 2, rec.Rank)
}

func TestBuilderKeepsPreRankedRecords(t *testing.T) {
	b := NewBuilder(normalize.New(normalize.Config{}), nil, nil)

	table := b.Build(models.CategoryHorse, []models.SourceRecord{
		{Name: "SLOW HORSE", PreRanked: true, Rank: 1, Metrics: models.Metrics{Wins: 0, Starts: 10}},
		{Name: "FAST HORSE", PreRanked: true, Rank: 7, Metrics: models.Metrics{Wins: 9, Starts: 10}, Rates: models.DerivedRates{WinRate: 90}},
	})

	slow, ok := table.Lookup("SLOW HORSE")
	require.True(t, ok)
	assert.Equal(t, 1, slow.Rank)

	fast, ok := table.Lookup("FAST HORSE")
	require.True(t, ok)
	assert.Equal(t, 7, fast.Rank)
	assert.InDelta(t, 90.0, fast.Rates.WinRate, 1e-9)
	assert.Equal(t, 7, table.MaxRank())
}

func TestBuilderEmptyInput(t *testing.T) {
	b := NewBuilder(normalize.New(normalize.Config{}), nil, nil)

	table := b.Build(models.CategoryOwner, nil)

	assert.Equal(t, 0, table.Len())
	_, ok := table.Lookup("ANYONE")
	assert.False(t, ok)
}

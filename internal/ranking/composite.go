package ranking

import (
	"sort"

	"github.com/yourusername/hippique/internal/models"
)

// DefaultTieEpsilon is the tolerance under which two composite scores tie.
const DefaultTieEpsilon = 0.001

// CompositeWeights weight the three metric ranks. They should sum to 1.
type CompositeWeights struct {
	Wins      float64 `mapstructure:"wins"`
	WinRate   float64 `mapstructure:"win_rate"`
	PlaceRate float64 `mapstructure:"place_rate"`
}

// Sum returns the total weight.
func (w CompositeWeights) Sum() float64 {
	return w.Wins + w.WinRate + w.PlaceRate
}

var (
	// DefaultWeights apply to most actors.
	DefaultWeights = CompositeWeights{Wins: 0.5, WinRate: 0.3, PlaceRate: 0.2}
	// PerfectRecordWeights apply to unbeaten actors without placings, whose
	// place rate of zero would otherwise drag them down.
	PerfectRecordWeights = CompositeWeights{Wins: 0.7, WinRate: 0.3, PlaceRate: 0}
)

// CompositeScorer combines win count, win rate and place rate ranks into a
// single dense rank.
type CompositeScorer struct {
	weights CompositeWeights
	perfect CompositeWeights
	epsilon float64
}

// NewCompositeScorer creates a scorer. A non-positive epsilon falls back to
// DefaultTieEpsilon.
func NewCompositeScorer(weights, perfect CompositeWeights, epsilon float64) *CompositeScorer {
	if epsilon <= 0 {
		epsilon = DefaultTieEpsilon
	}
	return &CompositeScorer{weights: weights, perfect: perfect, epsilon: epsilon}
}

// NewDefaultCompositeScorer uses the standard weights and epsilon.
func NewDefaultCompositeScorer() *CompositeScorer {
	return NewCompositeScorer(DefaultWeights, PerfectRecordWeights, DefaultTieEpsilon)
}

// Rank returns a new slice ordered by composite score with Composite and Rank
// set. Keys must be unique. Lower composite is better.
func (s *CompositeScorer) Rank(records []models.ActorRecord) []models.ActorRecord {
	if len(records) == 0 {
		return nil
	}

	key := func(r models.ActorRecord) string { return r.Key }
	winRanks := DenseRank(records, func(r models.ActorRecord) float64 { return float64(r.Metrics.Wins) }, key)
	winRateRanks := DenseRank(records, func(r models.ActorRecord) float64 { return r.Rates.WinRate }, key)
	placeRateRanks := DenseRank(records, func(r models.ActorRecord) float64 { return r.Rates.PlaceRate }, key)

	out := make([]models.ActorRecord, len(records))
	for i, rec := range records {
		w := s.weights
		if rec.Metrics.PerfectRecord() {
			w = s.perfect
		}
		rec.Composite = w.Wins*float64(winRanks[rec.Key]) +
			w.WinRate*float64(winRateRanks[rec.Key]) +
			w.PlaceRate*float64(placeRateRanks[rec.Key])
		out[i] = rec
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !tied(out[i].Composite, out[j].Composite, s.epsilon) {
			return out[i].Composite < out[j].Composite
		}
		return out[i].Name < out[j].Name
	})

	final := DenseRankWith(out, func(r models.ActorRecord) float64 { return r.Composite }, key, Ascending, s.epsilon)
	for i := range out {
		out[i].Rank = final[out[i].Key]
	}
	return out
}

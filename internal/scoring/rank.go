package scoring

import (
	"math"
	"sort"

	"github.com/yourusername/hippique/internal/models"
	"github.com/yourusername/hippique/internal/ranking"
)

// RankParticipants orders breakdowns by total score descending. Scores within
// ranking.DefaultTieEpsilon share a position; positions are dense.
func RankParticipants(scores []models.ScoreBreakdown) []models.RankedParticipant {
	sorted := make([]models.ScoreBreakdown, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Total != sorted[j].Total {
			return sorted[i].Total > sorted[j].Total
		}
		return sorted[i].Number < sorted[j].Number
	})

	out := make([]models.RankedParticipant, 0, len(sorted))
	position := 0
	for i, s := range sorted {
		if i == 0 || math.Abs(sorted[i-1].Total-s.Total) > ranking.DefaultTieEpsilon {
			position++
		}
		out = append(out, models.RankedParticipant{Position: position, Breakdown: s})
	}
	return out
}

// Odds estimate bounds: a score of 100 maps to EstimateMinOdds, 0 to
// EstimateMaxOdds.
const (
	EstimateMinOdds = 1.5
	EstimateMaxOdds = 20.0
)

// EstimateOdds derives indicative decimal odds from a predictive score,
// rounded to one decimal.
func EstimateOdds(score float64) float64 {
	clamped := math.Min(100, math.Max(0, score))
	raw := EstimateMinOdds + (1-clamped/100)*(EstimateMaxOdds-EstimateMinOdds)
	return math.Round(raw*10) / 10
}

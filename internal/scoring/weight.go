package scoring

import (
	"fmt"

	"github.com/yourusername/hippique/internal/models"
)

// WeightConfig holds the carried-weight adjustment per bucket and the
// distance multipliers applied to it.
type WeightConfig struct {
	Adjustments map[string]float64
	Multipliers map[DistanceBucket]float64
}

// DefaultWeightConfig returns the standard carried-weight tables.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		Adjustments: map[string]float64{
			"heavy_minus": 0.02,
			"light_minus": 0.01,
			"neutral":     0,
			"light_plus":  -0.01,
			"heavy_plus":  -0.02,
		},
		Multipliers: map[DistanceBucket]float64{
			BucketSprint:  0.7,
			BucketMile:    1.0,
			BucketMiddle:  1.0,
			BucketStaying: 1.3,
		},
	}
}

// WeightAdjuster rewards runners carrying less than the field average.
type WeightAdjuster struct {
	cfg WeightConfig
}

// NewWeightAdjuster creates a carried-weight adjuster.
func NewWeightAdjuster(cfg WeightConfig) *WeightAdjuster {
	return &WeightAdjuster{cfg: cfg}
}

// WeightBucket classifies the difference to the field average in kg.
func WeightBucket(weight, fieldAvg float64) string {
	if weight <= 0 || fieldAvg <= 0 {
		return "neutral"
	}
	diff := weight - fieldAvg
	switch {
	case diff <= -2:
		return "heavy_minus"
	case diff <= -1:
		return "light_minus"
	case diff >= 2:
		return "heavy_plus"
	case diff >= 1:
		return "light_plus"
	default:
		return "neutral"
	}
}

// Adjust computes the delta on the 0-100 score scale.
func (w *WeightAdjuster) Adjust(p models.Participant, rc models.RaceContext) models.WeightAdjustment {
	bucket := WeightBucket(p.WeightCarried, rc.FieldAvgWeight)
	distance := BucketForDistance(rc.DistanceMeters)
	multiplier, ok := w.cfg.Multipliers[distance]
	if !ok {
		multiplier = 1.0
	}
	delta := w.cfg.Adjustments[bucket] * multiplier * 100

	return models.WeightAdjustment{
		Weight:      p.WeightCarried,
		FieldAvg:    rc.FieldAvgWeight,
		Bucket:      bucket,
		Multiplier:  multiplier,
		Delta:       delta,
		Explanation: fmt.Sprintf("Weight %.1fkg vs field %.1fkg: %s", p.WeightCarried, rc.FieldAvgWeight, bucket),
	}
}

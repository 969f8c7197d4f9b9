// Package scoring computes predictive scores for race participants from
// their actors' category ranks.
package scoring

import (
	"math"

	"github.com/yourusername/hippique/internal/logger"
	"github.com/yourusername/hippique/internal/metrics"
	"github.com/yourusername/hippique/internal/models"
	"github.com/yourusername/hippique/internal/resolver"
)

// DefaultUnresolvedScore is the category score used when an actor cannot be
// matched to its ranking table.
const DefaultUnresolvedScore = 30.0

// CategoryWeights weight each category in the final score.
type CategoryWeights map[models.Category]float64

// DefaultCategoryWeights returns the standard flat-racing weights.
func DefaultCategoryWeights() CategoryWeights {
	return CategoryWeights{
		models.CategoryHorse:   0.55,
		models.CategoryJockey:  0.15,
		models.CategoryTrainer: 0.12,
		models.CategoryBreeder: 0.10,
		models.CategoryOwner:   0.08,
	}
}

// Sum returns the total weight.
func (w CategoryWeights) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// CordeAdjust computes a post-position adjustment.
type CordeAdjust interface {
	Adjust(rawPost string, rc models.RaceContext) models.CordeAdjustment
}

// WeightAdjust computes a carried-weight adjustment.
type WeightAdjust interface {
	Adjust(p models.Participant, rc models.RaceContext) models.WeightAdjustment
}

// CalculatorConfig tunes a Calculator.
type CalculatorConfig struct {
	Weights         CategoryWeights
	UnresolvedScore float64
}

// DefaultCalculatorConfig returns the standard configuration.
func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		Weights:         DefaultCategoryWeights(),
		UnresolvedScore: DefaultUnresolvedScore,
	}
}

// Calculator scores participants. The adjusters are optional; nil disables
// them.
type Calculator struct {
	resolver *resolver.Resolver
	cfg      CalculatorConfig
	corde    CordeAdjust
	weight   WeightAdjust
	log      *logger.RankingLogger
}

// NewCalculator creates a Calculator.
func NewCalculator(res *resolver.Resolver, cfg CalculatorConfig, corde CordeAdjust, weight WeightAdjust, log *logger.RankingLogger) *Calculator {
	if cfg.Weights == nil {
		cfg.Weights = DefaultCategoryWeights()
	}
	if log == nil {
		log = logger.NewRankingLogger(nil)
	}
	return &Calculator{resolver: res, cfg: cfg, corde: corde, weight: weight, log: log}
}

// CategoryScore converts a rank into a 0-100 score: 100 - rank, floored at 0.
func CategoryScore(rank int) float64 {
	return math.Max(0, 100-float64(rank))
}

// Score computes the predictive score of p against the ranked tables.
func (c *Calculator) Score(p models.Participant, tables models.TableSet, rc models.RaceContext) models.ScoreBreakdown {
	out := models.ScoreBreakdown{
		Number:      p.Number,
		HorseName:   p.HorseName,
		PerCategory: make(map[models.Category]models.CategoryScore, len(models.AllCategories())),
	}

	unresolved := 0
	for _, category := range models.AllCategories() {
		res := c.resolver.ResolveAll(tables.Get(category), namesFor(p, category))
		cs := models.CategoryScore{Category: category, Score: c.cfg.UnresolvedScore}
		if res.Found {
			cs.Rank = res.Rank
			cs.Resolved = true
			cs.Score = CategoryScore(res.Rank)
			cs.MatchedName = res.MatchedName
		} else {
			unresolved++
		}
		out.PerCategory[category] = cs
		out.Total += c.cfg.Weights[category] * cs.Score
	}

	if c.corde != nil {
		adj := c.corde.Adjust(p.PostPosition, rc)
		if !adj.Parsed {
			c.log.LogCordeUnparsed(p.HorseName, p.PostPosition)
		}
		out.Corde = &adj
		out.Total += adj.Delta
	}

	if c.weight != nil && p.WeightCarried > 0 && rc.FieldAvgWeight > 0 {
		adj := c.weight.Adjust(p, rc)
		out.Weight = &adj
		out.Total += adj.Delta
	}

	c.log.LogParticipantScored(p.HorseName, out.Total, unresolved)
	metrics.RecordParticipantScored()
	return out
}

// ScoreCourse scores every participant of a course with the field's average
// carried weight filled in.
func (c *Calculator) ScoreCourse(course models.Course, tables models.TableSet) []models.ScoreBreakdown {
	rc := course.Context
	if rc.FieldAvgWeight == 0 {
		rc.FieldAvgWeight = course.AverageWeight()
	}
	out := make([]models.ScoreBreakdown, 0, len(course.Participants))
	for _, p := range course.Participants {
		out = append(out, c.Score(p, tables, rc))
	}
	return out
}

func namesFor(p models.Participant, category models.Category) []string {
	switch category {
	case models.CategoryHorse:
		return []string{p.HorseName}
	case models.CategoryJockey:
		return []string{p.JockeyName}
	case models.CategoryTrainer:
		return []string{p.TrainerName}
	case models.CategoryOwner:
		return []string{p.OwnerName}
	case models.CategoryBreeder:
		return p.BreederNames
	default:
		return nil
	}
}

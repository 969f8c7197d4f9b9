package config

import (
	"strconv"
	"strings"

	"github.com/yourusername/hippique/internal/models"
	"github.com/yourusername/hippique/internal/normalize"
	"github.com/yourusername/hippique/internal/ranking"
	"github.com/yourusername/hippique/internal/scoring"
	"github.com/yourusername/hippique/internal/staking"
)

// NormalizerConfig builds the name normalizer settings, seeded with the
// built-in correspondences.
func (c *Config) NormalizerConfig() normalize.Config {
	return normalize.Config{
		Manual:        normalize.DefaultCorrespondences(),
		DiscoveredTTL: c.Cache.DiscoveredTTL(),
	}
}

// CompositeScorer builds the composite scorer. Unbeaten actors get the place
// rate weight folded into the win count weight.
func (s ScoringConfig) CompositeScorer() *ranking.CompositeScorer {
	weights := ranking.CompositeWeights{
		Wins:      s.Composite.Wins,
		WinRate:   s.Composite.WinRate,
		PlaceRate: s.Composite.PlaceRate,
	}
	perfect := ranking.CompositeWeights{
		Wins:    weights.Wins + weights.PlaceRate,
		WinRate: weights.WinRate,
	}
	return ranking.NewCompositeScorer(weights, perfect, s.TieEpsilon)
}

// CalculatorConfig builds the participant score settings.
func (s ScoringConfig) CalculatorConfig() scoring.CalculatorConfig {
	weights := make(scoring.CategoryWeights, len(s.CategoryWeights))
	for name, w := range s.CategoryWeights {
		category, err := models.ParseCategory(name)
		if err != nil {
			continue
		}
		weights[category] = w
	}
	return scoring.CalculatorConfig{Weights: weights, UnresolvedScore: s.UnresolvedScore}
}

// CordeAdjusterConfig merges configured impacts and hippodrome tables over
// the built-in ones.
func (c CordeConfig) CordeAdjusterConfig() scoring.CordeConfig {
	out := scoring.DefaultCordeConfig()
	for bucket, impact := range c.Impact {
		out.Impact[scoring.DistanceBucket(strings.ToLower(bucket))] = impact
	}
	for name, table := range c.Hippodromes {
		posts := make(map[int]float64, len(table))
		for post, advantage := range table {
			n, err := parsePost(post)
			if err != nil {
				continue
			}
			posts[n] = advantage
		}
		out.Hippodromes[strings.ToUpper(name)] = posts
	}
	return out
}

// AllocatorConfig builds the stake allocator settings.
func (s StakingConfig) AllocatorConfig() staking.Config {
	return staking.Config{
		MinStake:        s.MinStake,
		IterationBudget: s.IterationBudget,
		SubsetSizes:     s.SubsetSizes,
	}
}

// ExportCategories returns the categories to export, all of them when none
// are configured.
func (e ExportConfig) ExportCategories() []models.Category {
	if len(e.Categories) == 0 {
		return models.AllCategories()
	}
	out := make([]models.Category, 0, len(e.Categories))
	for _, name := range e.Categories {
		if category, err := models.ParseCategory(name); err == nil {
			out = append(out, category)
		}
	}
	return out
}

func parsePost(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

package ranking

import (
	"github.com/samber/lo"

	"github.com/yourusername/hippique/internal/logger"
	"github.com/yourusername/hippique/internal/models"
	"github.com/yourusername/hippique/internal/normalize"
)

// Builder turns provider records into ranked category tables.
type Builder struct {
	normalizer *normalize.Normalizer
	scorer     *CompositeScorer
	log        *logger.RankingLogger
}

// NewBuilder creates a table builder. A nil scorer uses the default weights.
func NewBuilder(normalizer *normalize.Normalizer, scorer *CompositeScorer, log *logger.RankingLogger) *Builder {
	if scorer == nil {
		scorer = NewDefaultCompositeScorer()
	}
	if log == nil {
		log = logger.NewRankingLogger(nil)
	}
	return &Builder{normalizer: normalizer, scorer: scorer, log: log}
}

// Build ranks records into a table. When every record is pre-ranked the
// source ranks are used as-is; otherwise the whole table is ranked locally.
func (b *Builder) Build(category models.Category, records []models.SourceRecord) *models.RankedCategoryTable {
	preRanked := len(records) > 0 && lo.EveryBy(records, func(r models.SourceRecord) bool { return r.PreRanked })

	actors, duplicates := b.dedupe(category, records)
	if !preRanked {
		actors = b.scorer.Rank(actors)
	}

	table := models.NewRankedCategoryTable(category, actors)
	b.log.LogTableBuilt(category.String(), table.Len(), duplicates+table.Duplicates(), preRanked)
	return table
}

// dedupe normalizes names and collapses records sharing a key. For raw
// records the one with most starts wins; for pre-ranked ones the best rank.
func (b *Builder) dedupe(category models.Category, records []models.SourceRecord) ([]models.ActorRecord, int) {
	byKey := make(map[string]int, len(records))
	actors := make([]models.ActorRecord, 0, len(records))
	duplicates := 0

	for _, rec := range records {
		key := b.normalizer.Normalize(rec.Name)
		if key == "" {
			continue
		}
		rates := rec.Rates
		if !rec.PreRanked {
			rates = rec.Metrics.Rates()
		}
		actor := models.ActorRecord{
			Key:      key,
			Name:     rec.Name,
			Category: category,
			Metrics:  rec.Metrics,
			Rates:    rates,
			Rank:     rec.Rank,
		}

		if idx, seen := byKey[key]; seen {
			duplicates++
			if better(actor, actors[idx], rec.PreRanked) {
				actors[idx] = actor
			}
			continue
		}
		byKey[key] = len(actors)
		actors = append(actors, actor)
	}
	return actors, duplicates
}

func better(candidate, current models.ActorRecord, preRanked bool) bool {
	if preRanked {
		return candidate.Rank > 0 && (current.Rank <= 0 || candidate.Rank < current.Rank)
	}
	return candidate.Metrics.Starts > current.Metrics.Starts
}

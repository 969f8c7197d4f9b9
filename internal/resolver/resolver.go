// Package resolver finds the ranked record that a race-card name refers to.
package resolver

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/yourusername/hippique/internal/logger"
	"github.com/yourusername/hippique/internal/metrics"
	"github.com/yourusername/hippique/internal/models"
	"github.com/yourusername/hippique/internal/normalize"
)

// Method records how a name was matched.
type Method string

const (
	MethodExact      Method = "exact"
	MethodInitials   Method = "initials"
	MethodSimilarity Method = "similarity"
	MethodNone       Method = "none"
)

// Resolution is the outcome of resolving one name against one table.
type Resolution struct {
	Rank        int
	Found       bool
	MatchedName string
	Method      Method
	Score       int
}

var (
	// Co-owners and co-breeders are listed with these separators.
	partSeparator = regexp.MustCompile(`\s*[,&/+]\s*|\s+(?i:ET|AND)\s+`)
	// "[honorific] X. SURNAME", also "JP. SURNAME" for hyphenated first names.
	initialPattern = regexp.MustCompile(`^(?:(?:MR|MME|MLLE)\s+)?(\p{L}{1,3})\.\s*(\S.*)$`)
	honorifics     = []string{"MR", "MME", "MLLE", "M"}
)

// Resolver maps raw names onto ranked tables.
type Resolver struct {
	normalizer *normalize.Normalizer
	log        *logger.RankingLogger
}

// New creates a Resolver.
func New(normalizer *normalize.Normalizer, log *logger.RankingLogger) *Resolver {
	if log == nil {
		log = logger.NewRankingLogger(nil)
	}
	return &Resolver{normalizer: normalizer, log: log}
}

// Resolve finds the rank of raw in table. For breeder and owner tables the
// name may list several actors; the best rank among them is returned.
func (r *Resolver) Resolve(table *models.RankedCategoryTable, raw string) Resolution {
	return r.ResolveAll(table, []string{raw})
}

// ResolveAll resolves several names and keeps the best-ranked match.
func (r *Resolver) ResolveAll(table *models.RankedCategoryTable, raws []string) Resolution {
	category := table.Category()
	best := Resolution{Method: MethodNone}

	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		res := r.resolveName(table, raw)
		if res.Found && (!best.Found || res.Rank < best.Rank) {
			best = res
		}
	}

	if best.Found {
		r.log.LogResolution(category.String(), strings.Join(raws, " | "), best.MatchedName, string(best.Method), best.Rank)
	} else {
		r.log.LogResolutionMiss(category.String(), strings.Join(raws, " | "))
	}
	metrics.RecordResolution(category.String(), string(best.Method))
	return best
}

func (r *Resolver) resolveName(table *models.RankedCategoryTable, raw string) Resolution {
	category := table.Category()
	if !category.MultiValued() {
		return r.resolveSingle(table, raw)
	}

	// The full string may itself be a partnership listed in the table.
	if res := r.exact(table, raw); res.Found {
		return res
	}

	parts := lo.Filter(partSeparator.Split(raw, -1), func(p string, _ int) bool {
		return strings.TrimSpace(p) != ""
	})
	best := Resolution{Method: MethodNone}
	for _, part := range parts {
		res := r.resolveSingle(table, part)
		if res.Found && (!best.Found || res.Rank < best.Rank) {
			best = res
		}
	}
	return best
}

func (r *Resolver) resolveSingle(table *models.RankedCategoryTable, raw string) Resolution {
	if res := r.exact(table, raw); res.Found {
		return res
	}
	scope := table.Category().String()
	key := r.normalizer.NormalizeIn(scope, raw)
	if key == "" {
		return Resolution{Method: MethodNone}
	}

	if table.Category().MultiValued() {
		if res, ok := matchInitials(table, key); ok {
			r.normalizer.Remember(scope, raw, res.MatchedName)
			return res
		}
	}

	res := bestSimilar(table, key)
	if res.Found && res.Score >= scoreRemember {
		r.normalizer.Remember(scope, raw, res.MatchedName)
	}
	return res
}

func (r *Resolver) exact(table *models.RankedCategoryTable, raw string) Resolution {
	key := r.normalizer.NormalizeIn(table.Category().String(), raw)
	if key == "" {
		return Resolution{Method: MethodNone}
	}
	if rec, ok := table.Lookup(key); ok {
		return Resolution{Rank: rec.Rank, Found: true, MatchedName: rec.Key, Method: MethodExact, Score: scoreExact}
	}
	return Resolution{Method: MethodNone}
}

// matchInitials handles "X. SURNAME" forms. Candidates are scanned in rank
// order so the first match is also the best ranked.
func matchInitials(table *models.RankedCategoryTable, key string) (Resolution, bool) {
	m := initialPattern.FindStringSubmatch(key)
	if m == nil {
		return Resolution{}, false
	}
	initials, surname := m[1], strings.TrimSpace(m[2])

	for _, rec := range table.Records() {
		first, rest, ok := splitPersonName(rec.Key)
		if !ok || !initialsMatch(initials, first) {
			continue
		}
		if strings.Contains(rest, surname) || strings.Contains(surname, rest) {
			return Resolution{Rank: rec.Rank, Found: true, MatchedName: rec.Key, Method: MethodInitials}, true
		}
	}
	return Resolution{}, false
}

// splitPersonName drops a leading honorific and returns the first name and
// the remaining tokens.
func splitPersonName(key string) (string, string, bool) {
	tokens := strings.Fields(key)
	if len(tokens) > 0 && lo.Contains(honorifics, tokens[0]) {
		tokens = tokens[1:]
	}
	if len(tokens) < 2 {
		return "", "", false
	}
	return tokens[0], strings.Join(tokens[1:], " "), true
}

// initialsMatch checks "J" against "JEAN" and "JP" against "JEAN-PAUL".
func initialsMatch(initials, firstName string) bool {
	letters := []rune(initials)
	if len(letters) == 1 {
		return strings.HasPrefix(firstName, initials)
	}
	parts := strings.Split(firstName, "-")
	if len(parts) < len(letters) {
		return false
	}
	for i, l := range letters {
		if !strings.HasPrefix(parts[i], string(l)) {
			return false
		}
	}
	return true
}

// bestSimilar returns the highest scoring record above the threshold; on
// equal scores the first encountered (best ranked) wins.
func bestSimilar(table *models.RankedCategoryTable, key string) Resolution {
	best := Resolution{Method: MethodNone}
	for _, rec := range table.Records() {
		score := Similarity(key, rec.Key)
		if score <= scoreThreshold || score <= best.Score {
			continue
		}
		best = Resolution{Rank: rec.Rank, Found: true, MatchedName: rec.Key, Method: MethodSimilarity, Score: score}
		if score == scoreExact {
			break
		}
	}
	return best
}

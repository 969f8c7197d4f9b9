package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hippique/internal/config"
	"github.com/yourusername/hippique/internal/datasource"
	"github.com/yourusername/hippique/internal/logger"
	"github.com/yourusername/hippique/internal/metrics"
	"github.com/yourusername/hippique/internal/models"
	"github.com/yourusername/hippique/internal/normalize"
	"github.com/yourusername/hippique/internal/ranking"
	"github.com/yourusername/hippique/internal/resolver"
	"github.com/yourusername/hippique/internal/scoring"
	"github.com/yourusername/hippique/internal/staking"
)

// Options wires a Session. Zero values fall back to the package defaults;
// nil adjusters are disabled.
type Options struct {
	Normalizer *normalize.Normalizer
	Scorer     *ranking.CompositeScorer
	Calculator scoring.CalculatorConfig
	Corde      scoring.CordeAdjust
	Weight     scoring.WeightAdjust
	Staking    staking.Config
	Logger     *logrus.Logger
}

// Session memoizes ranked tables for one analysis session. Tables are loaded
// once per category and kept until Invalidate. Stake plans are never cached.
type Session struct {
	provider   datasource.DataProvider
	normalizer *normalize.Normalizer
	builder    *ranking.Builder
	calculator *scoring.Calculator
	allocator  *staking.Allocator

	tables *cache.Cache
	loadMu sync.Mutex

	rankLog  *logger.RankingLogger
	auditLog *logger.AuditLogger
}

// NewSession creates a session reading from provider.
func NewSession(provider datasource.DataProvider, opts Options) *Session {
	if opts.Normalizer == nil {
		opts.Normalizer = normalize.NewDefault()
	}
	if opts.Calculator.Weights == nil {
		opts.Calculator = scoring.DefaultCalculatorConfig()
	}

	rankLog := logger.NewRankingLogger(opts.Logger)
	res := resolver.New(opts.Normalizer, rankLog)

	return &Session{
		provider:   provider,
		normalizer: opts.Normalizer,
		builder:    ranking.NewBuilder(opts.Normalizer, opts.Scorer, rankLog),
		calculator: scoring.NewCalculator(res, opts.Calculator, opts.Corde, opts.Weight, rankLog),
		allocator:  staking.NewAllocator(opts.Staking, logger.NewStakeLogger(opts.Logger)),
		tables:     cache.New(cache.NoExpiration, 0),
		rankLog:    rankLog,
		auditLog:   logger.NewAuditLogger(opts.Logger),
	}
}

// NewSessionFromConfig builds a session from the loaded configuration.
func NewSessionFromConfig(cfg *config.Config, provider datasource.DataProvider, log *logrus.Logger) *Session {
	opts := Options{
		Normalizer: normalize.New(cfg.NormalizerConfig()),
		Scorer:     cfg.Scoring.CompositeScorer(),
		Calculator: cfg.Scoring.CalculatorConfig(),
		Staking:    cfg.Staking.AllocatorConfig(),
		Logger:     log,
	}
	if cfg.Corde.Enabled {
		opts.Corde = scoring.NewCordeAdjuster(cfg.Corde.CordeAdjusterConfig())
	}
	if cfg.Weight.Enabled {
		opts.Weight = scoring.NewWeightAdjuster(scoring.DefaultWeightConfig())
	}
	return NewSession(provider, opts)
}

// GetRankedTable returns the ranked table for category, loading it on first
// use. A load failure yields an empty table so scoring can go on with every
// actor of that category unresolved; the empty table is cached like any
// other until Invalidate.
func (s *Session) GetRankedTable(ctx context.Context, category models.Category) (*models.RankedCategoryTable, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownCategory, category)
	}
	if table, ok := s.cachedTable(category); ok {
		metrics.RecordTableCacheHit()
		return table, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// Another caller may have loaded it while we waited
	if table, ok := s.cachedTable(category); ok {
		metrics.RecordTableCacheHit()
		return table, nil
	}
	metrics.RecordTableCacheMiss()

	records, err := s.provider.LoadCategoryTable(ctx, category)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.rankLog.LogTableUnavailable(category.String(), err)
		metrics.RecordTableLoad(category.String(), "unavailable", 0)
		table := models.EmptyTable(category)
		s.tables.SetDefault(category.String(), table)
		return table, nil
	}

	table := s.builder.Build(category, records)
	metrics.RecordTableLoad(category.String(), "loaded", table.Len())
	s.tables.SetDefault(category.String(), table)
	return table, nil
}

func (s *Session) cachedTable(category models.Category) (*models.RankedCategoryTable, bool) {
	v, ok := s.tables.Get(category.String())
	if !ok {
		return nil, false
	}
	return v.(*models.RankedCategoryTable), true
}

// Tables returns the ranked tables of every category.
func (s *Session) Tables(ctx context.Context) (models.TableSet, error) {
	set := make(models.TableSet, len(models.AllCategories()))
	for _, category := range models.AllCategories() {
		table, err := s.GetRankedTable(ctx, category)
		if err != nil {
			return nil, err
		}
		set[category] = table
	}
	return set, nil
}

// Invalidate drops every cached table and learned name match.
// The next lookup reloads from the provider.
func (s *Session) Invalidate() {
	cached := make([]string, 0, s.tables.ItemCount())
	for key := range s.tables.Items() {
		cached = append(cached, key)
	}
	sort.Strings(cached)

	s.tables.Flush()
	s.normalizer.Forget()
	s.auditLog.LogCacheInvalidated(cached)
}

// ComputeParticipantScore scores one participant against the session tables.
func (s *Session) ComputeParticipantScore(ctx context.Context, p models.Participant, rc models.RaceContext) (models.ScoreBreakdown, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return models.ScoreBreakdown{}, err
	}
	return s.calculator.Score(p, tables, rc), nil
}

// RankParticipants scores every runner of course and returns them in
// predicted finishing order. Runners without race card odds get an estimate
// derived from their score.
func (s *Session) RankParticipants(ctx context.Context, course models.Course) ([]models.RankedParticipant, error) {
	if len(course.Participants) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoParticipants, course.Name)
	}
	tables, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}

	ranked := scoring.RankParticipants(s.calculator.ScoreCourse(course, tables))

	odds := make(map[runnerKey]float64, len(course.Participants))
	for _, p := range course.Participants {
		odds[runnerKey{p.Number, p.HorseName}] = p.Odds
	}
	for i := range ranked {
		b := ranked[i].Breakdown
		if o := odds[runnerKey{b.Number, b.HorseName}]; o > 0 {
			ranked[i].Odds = o
			continue
		}
		ranked[i].Odds = scoring.EstimateOdds(ranked[i].Breakdown.Total)
		ranked[i].OddsEstimated = true
	}
	return ranked, nil
}

type runnerKey struct {
	number int
	horse  string
}

// CourseRanking is the predicted order of one course.
type CourseRanking struct {
	Course       string                     `json:"course"`
	Context      models.RaceContext         `json:"context"`
	Participants []models.RankedParticipant `json:"participants"`
}

// RankRaceDay loads the race card for date and hippodrome and ranks its
// courses. A non-empty courseName restricts the result to that course.
func (s *Session) RankRaceDay(ctx context.Context, date, hippodrome, courseName string) ([]CourseRanking, error) {
	day, err := s.provider.LoadRaceParticipants(ctx, date, hippodrome)
	if err != nil {
		return nil, fmt.Errorf("failed to load race card: %w", err)
	}

	courses := day.Courses
	if courseName != "" {
		course, ok := day.FindCourse(courseName)
		if !ok {
			return nil, fmt.Errorf("%w: %q at %s on %s", models.ErrCourseNotFound, courseName, day.Hippodrome, day.Date)
		}
		courses = []models.Course{*course}
	}

	out := make([]CourseRanking, 0, len(courses))
	for _, course := range courses {
		ranked, err := s.RankParticipants(ctx, course)
		if err != nil {
			return nil, err
		}
		rc := course.Context
		rc.FieldAvgWeight = course.AverageWeight()
		out = append(out, CourseRanking{Course: course.Name, Context: rc, Participants: ranked})
	}
	return out, nil
}

// ComputeStakePlan runs the stake allocator. Every call is a new calculation
// with its own plan and id.
func (s *Session) ComputeStakePlan(req models.StakeRequest) (*models.StakePlan, error) {
	return s.allocator.Compute(req)
}

// CompareSubsetSizes runs the request once per configured subset size on the
// shortest-priced entrants and returns every plan.
func (s *Session) CompareSubsetSizes(req models.StakeRequest) ([]*models.StakePlan, error) {
	return s.allocator.ComputeAcrossSizes(req)
}

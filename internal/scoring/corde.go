package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/hippique/internal/models"
)

// DistanceBucket classifies a race by distance.
type DistanceBucket string

const (
	BucketSprint  DistanceBucket = "sprint"
	BucketMile    DistanceBucket = "mile"
	BucketMiddle  DistanceBucket = "middle"
	BucketStaying DistanceBucket = "staying"
)

// BucketForDistance maps meters to a bucket. Unknown distances count as mile.
func BucketForDistance(meters int) DistanceBucket {
	switch {
	case meters <= 0:
		return BucketMile
	case meters < 1400:
		return BucketSprint
	case meters < 1900:
		return BucketMile
	case meters < 2400:
		return BucketMiddle
	default:
		return BucketStaying
	}
}

// clampPosition is the post used for any position beyond a table's range.
const clampPosition = 20

// clampFallback is the advantage when the table has no entry for clampPosition.
const clampFallback = -3.0

var (
	cordeParenPattern = regexp.MustCompile(`(?i)\(Corde:(\d+)\)`)
	cordeWordPattern  = regexp.MustCompile(`(?i)Corde\s*:?\s*(\d+)`)
	cordeBarePattern  = regexp.MustCompile(`^(\d+)$`)
)

// ParsePostPosition extracts the post number from "(Corde:04)", "Corde 4",
// "Corde: 4" or "4", tried in that order.
func ParsePostPosition(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for _, re := range []*regexp.Regexp{cordeParenPattern, cordeWordPattern, cordeBarePattern} {
		if m := re.FindStringSubmatch(raw); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 {
				return 0, false
			}
			return n, true
		}
	}
	return 0, false
}

// CordeConfig holds impact factors per bucket and advantage tables per
// hippodrome. Hippodrome keys are compared with non-letters removed.
type CordeConfig struct {
	Impact      map[DistanceBucket]float64
	Default     map[int]float64
	Hippodromes map[string]map[int]float64
}

// DefaultCordeConfig returns the standard impact factors and tables.
func DefaultCordeConfig() CordeConfig {
	return CordeConfig{
		Impact: map[DistanceBucket]float64{
			BucketSprint:  0.08,
			BucketMile:    0.05,
			BucketMiddle:  0.03,
			BucketStaying: 0.01,
		},
		Default: map[int]float64{
			1: 3.0, 2: 2.0, 3: 1.0, 4: 0, 5: 0,
			6: -0.5, 7: -0.5, 8: -1.0, 9: -1.0, 10: -1.5,
			11: -1.5, 12: -2.0, 13: -2.0, 14: -2.5, 15: -2.5,
			16: -3.0, 17: -3.0, 18: -3.0, 19: -3.0, 20: -3.0,
		},
		Hippodromes: map[string]map[int]float64{
			"PARISLONGCHAMP": {
				1: 3.5, 2: 2.5, 3: 1.5, 4: 0.5, 5: 0,
				6: -0.5, 7: -1.0, 8: -1.5, 9: -2.0, 10: -2.5,
				11: -3.0, 12: -3.0,
			},
		},
	}
}

// CordeAdjuster turns a post position into a score delta.
type CordeAdjuster struct {
	cfg         CordeConfig
	hippodromes map[string]map[int]float64
}

// NewCordeAdjuster creates an adjuster from cfg.
func NewCordeAdjuster(cfg CordeConfig) *CordeAdjuster {
	a := &CordeAdjuster{cfg: cfg, hippodromes: make(map[string]map[int]float64, len(cfg.Hippodromes))}
	for name, table := range cfg.Hippodromes {
		a.hippodromes[hippodromeKey(name)] = table
	}
	return a
}

// Adjust computes the post-position delta. A missing or unparseable post
// yields a zero delta with Parsed false.
func (a *CordeAdjuster) Adjust(rawPost string, rc models.RaceContext) models.CordeAdjustment {
	bucket := BucketForDistance(rc.DistanceMeters)
	impact, ok := a.cfg.Impact[bucket]
	if !ok {
		impact = a.cfg.Impact[BucketMile]
	}

	post, parsed := ParsePostPosition(rawPost)
	if !parsed {
		return models.CordeAdjustment{
			Bucket:      string(bucket),
			Impact:      impact,
			Explanation: "Post unknown, no impact",
		}
	}

	advantage := a.advantage(post, rc.Hippodrome)
	delta := advantage * impact
	return models.CordeAdjustment{
		PostPosition: post,
		Parsed:       true,
		Bucket:       string(bucket),
		Advantage:    advantage,
		Impact:       impact,
		Delta:        delta,
		Explanation:  explain(post, advantage, impact, delta),
	}
}

func (a *CordeAdjuster) advantage(post int, hippodrome string) float64 {
	table, ok := a.hippodromes[hippodromeKey(hippodrome)]
	if !ok {
		table = a.cfg.Default
	}
	if v, ok := table[post]; ok {
		return v
	}
	if post > maxPosition(table) {
		if v, ok := table[clampPosition]; ok {
			return v
		}
		return clampFallback
	}
	return 0
}

func maxPosition(table map[int]float64) int {
	m := 0
	for p := range table {
		if p > m {
			m = p
		}
	}
	return m
}

func explain(post int, advantage, impact, delta float64) string {
	pct := impact * 100
	switch {
	case delta > 0:
		return fmt.Sprintf("Post %d advantageous (+%.1f points, impact %.0f%%)", post, advantage, pct)
	case delta < 0:
		return fmt.Sprintf("Post %d disadvantageous (%.1f points, impact %.0f%%)", post, advantage, pct)
	default:
		return fmt.Sprintf("Post %d neutral (impact %.0f%%)", post, pct)
	}
}

func hippodromeKey(name string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, strings.ToUpper(name))
}

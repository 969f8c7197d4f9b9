package resolver

import (
	"strings"

	"github.com/samber/lo"
)

const (
	scoreExact     = 100
	scoreContains  = 90
	scoreWordsCap  = 80
	scoreThreshold = 50
	// Approximate matches at or above this score are remembered.
	scoreRemember = 80
)

// Similarity scores two normalized names in [0, 100]: 100 when equal, 90 when
// one contains the other, otherwise the share of common words capped at 80.
func Similarity(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return scoreExact
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return scoreContains
	}

	wa := lo.Uniq(strings.Fields(a))
	wb := lo.Uniq(strings.Fields(b))
	shared := lo.CountBy(wa, func(w string) bool { return lo.Contains(wb, w) })
	if shared == 0 {
		return 0
	}
	score := shared * 100 / max(len(wa), len(wb))
	return min(scoreWordsCap, score)
}

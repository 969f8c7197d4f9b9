// Package normalize canonicalizes actor names so that race-card spellings
// and ranking-table spellings compare equal.
package normalize

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	truncationPattern = regexp.MustCompile(`\s*(\.\.\.|…)\s*`)
	spacePattern      = regexp.MustCompile(`\s+`)

	// Pedigree suffix: sex letter, "PS" with optional dots, then age, e.g.
	// "H.P.S. 6a", "F.PS. 5 A.".
	pedigreeSuffixPattern = regexp.MustCompile(`\s+[HFM]\.?\s?P\.?\s?S\.?(\s.*)?$`)
	// Country of origin, e.g. "(GB)", "(IRE)".
	originPattern = regexp.MustCompile(`\s*\(\p{L}+\)`)

	honorificPatterns = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`^MME\.\s*`), "MME "},
		{regexp.MustCompile(`^MLLE\.\s*`), "MLLE "},
		{regexp.MustCompile(`^MR\.\s*`), "MR "},
		{regexp.MustCompile(`^M\.\s*`), "MR "},
	}

	abbreviationPatterns = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\bEC\.\s*`), "ECURIE "},
		{regexp.MustCompile(`\bECURIES\b`), "ECURIE"},
		{regexp.MustCompile(`\bEC\b`), "ECURIE"},
		{regexp.MustCompile(`\bSUC\.\s*`), "SUCCESSION "},
	}

	apostropheReplacer = strings.NewReplacer("’", "'", "‘", "'", "`", "'", "´", "'", "ʼ", "'")
	ligatureReplacer   = strings.NewReplacer("Œ", "OE", "œ", "oe", "Æ", "AE", "æ", "ae")
)

// Config tunes a Normalizer.
type Config struct {
	// Manual maps race-card spellings to ranking-table spellings.
	Manual map[string]string
	// DiscoveredTTL bounds how long learned matches are kept. Zero keeps them
	// for the whole session.
	DiscoveredTTL time.Duration
}

// Normalizer canonicalizes names. The manual table is fixed at construction;
// discovered matches are learned at run time and scoped per category.
type Normalizer struct {
	manual     map[string]string
	discovered *cache.Cache
}

// New creates a Normalizer. Manual targets are canonicalized once so that a
// manual hit lands on the same key a ranking table would use.
func New(cfg Config) *Normalizer {
	ttl := cfg.DiscoveredTTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	n := &Normalizer{
		manual:     make(map[string]string, len(cfg.Manual)),
		discovered: cache.New(ttl, 10*time.Minute),
	}
	for from, to := range cfg.Manual {
		n.manual[lookupKey(from)] = canonical(lookupKey(to))
	}
	return n
}

// NewDefault creates a Normalizer seeded with DefaultCorrespondences.
func NewDefault() *Normalizer {
	return New(Config{Manual: DefaultCorrespondences()})
}

// Normalize returns the canonical form of raw. It returns "" for empty input.
func (n *Normalizer) Normalize(raw string) string {
	return n.NormalizeIn("", raw)
}

// NormalizeIn is Normalize with discovered matches looked up in scope.
func (n *Normalizer) NormalizeIn(scope, raw string) string {
	key := lookupKey(raw)
	if key == "" {
		return ""
	}
	if target, ok := n.manual[key]; ok {
		return target
	}
	if target, ok := n.discovered.Get(discoveredKey(scope, key)); ok {
		return target.(string)
	}
	return canonical(key)
}

// Remember records that raw resolved to the table key canonical in scope.
// Later NormalizeIn calls in the same scope return canonical directly.
func (n *Normalizer) Remember(scope, raw, canonicalName string) {
	key := lookupKey(raw)
	if key == "" || canonicalName == "" {
		return
	}
	if _, ok := n.manual[key]; ok {
		return
	}
	n.discovered.SetDefault(discoveredKey(scope, key), canonicalName)
}

// Forget drops every discovered match.
func (n *Normalizer) Forget() {
	n.discovered.Flush()
}

// DiscoveredCount returns the number of learned matches.
func (n *Normalizer) DiscoveredCount() int {
	return n.discovered.ItemCount()
}

func discoveredKey(scope, key string) string {
	return scope + "\x00" + key
}

// lookupKey applies truncation cleanup, apostrophe and accent folding,
// uppercasing and whitespace collapsing. Manual and discovered tables are
// keyed by it.
func lookupKey(raw string) string {
	s := truncationPattern.ReplaceAllString(raw, " ")
	s = apostropheReplacer.Replace(s)
	s = ligatureReplacer.Replace(s)
	s = foldAccents(s)
	s = strings.ToUpper(s)
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// canonical strips pedigree suffixes and expands honorifics and
// abbreviations on a lookup key.
func canonical(key string) string {
	s := pedigreeSuffixPattern.ReplaceAllString(key, "")
	s = originPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	for _, h := range honorificPatterns {
		if h.re.MatchString(s) {
			s = h.re.ReplaceAllString(s, h.repl)
			break
		}
	}
	for _, a := range abbreviationPatterns {
		s = a.re.ReplaceAllString(s, a.repl)
	}
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

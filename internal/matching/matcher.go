// Package matching implements approximate matching of phrases against taxonomy
// terms. It builds an inverted index over every name, canonical key, and alias,
// and answers queries with exact hits first, then normalized-edit-distance and
// token-overlap candidates under a configurable threshold.
package matching

import (
	"regexp"
	"sort"
	"strings"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// DefaultThreshold is the maximum normalized distance accepted as a match.
const DefaultThreshold = 0.40

var (
	// Punctuation is stripped from terms except /, &, and - which are
	// meaningful in skill names ("A/B Testing", "B2B & B2C", "Go-to-Market").
	reTermPunct  = regexp.MustCompile(`[^\p{L}\p{N}\s/&-]+`)
	reTermSpaces = regexp.MustCompile(`\s+`)
	reNonAlnum   = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// Canonicalize derives a mechanical canonical key from a term: lowercase,
// with every run of non-alphanumeric characters collapsed to one underscore.
// "A/B Testing" becomes "a_b_testing".
func Canonicalize(s string) string {
	s = strings.ToLower(s)
	s = reNonAlnum.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// NormalizeTerm lowercases a term, strips punctuation except /&-, and
// collapses whitespace. All index and query strings pass through here.
func NormalizeTerm(s string) string {
	s = strings.ToLower(s)
	s = reTermPunct.ReplaceAllString(s, "")
	s = reTermSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Match is a single search hit. Score is 0 for exact hits; lower is better.
type Match struct {
	Entry *types.TaxonomyEntry
	Term  string // the indexed surface form that matched
	Score float64
	Exact bool
}

type indexedTerm struct {
	term   string
	tokens []string
	entry  int
}

// Matcher answers approximate-match queries over a fixed set of taxonomy
// entries. Immutable after construction; safe for concurrent use.
type Matcher struct {
	entries   []types.TaxonomyEntry
	exact     map[string]int // normalized term -> entry index
	index     []indexedTerm
	threshold float64
}

// New builds a matcher over the given entries using the default threshold.
func New(entries []types.TaxonomyEntry) *Matcher {
	return NewWithThreshold(entries, DefaultThreshold)
}

// NewWithThreshold builds a matcher with an explicit distance threshold.
// Threshold values outside (0,1] fall back to the default.
func NewWithThreshold(entries []types.TaxonomyEntry, threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}

	m := &Matcher{
		entries:   entries,
		exact:     make(map[string]int),
		threshold: threshold,
	}

	for i, entry := range entries {
		terms := make([]string, 0, len(entry.Aliases)+2)
		terms = append(terms, entry.Name, entry.Canonical)
		terms = append(terms, entry.Aliases...)

		for _, term := range terms {
			normalized := NormalizeTerm(term)
			if normalized == "" {
				continue
			}
			// First writer wins so earlier entries keep priority on collisions.
			if _, exists := m.exact[normalized]; !exists {
				m.exact[normalized] = i
			}
			m.index = append(m.index, indexedTerm{
				term:   normalized,
				tokens: strings.Fields(normalized),
				entry:  i,
			})
		}
	}

	return m
}

// Threshold returns the configured distance threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Len returns the number of indexed terms.
func (m *Matcher) Len() int {
	return len(m.index)
}

// Contains reports whether the query is an exact (normalized) index hit.
func (m *Matcher) Contains(query string) bool {
	_, ok := m.exact[NormalizeTerm(query)]
	return ok
}

// Search returns matches for the query sorted ascending by score and
// deduplicated by owning entry (best score wins). An exact index hit
// short-circuits with a single zero-score match.
func (m *Matcher) Search(query string) []Match {
	normalized := NormalizeTerm(query)
	if normalized == "" {
		return nil
	}

	if idx, ok := m.exact[normalized]; ok {
		return []Match{{
			Entry: &m.entries[idx],
			Term:  normalized,
			Score: 0,
			Exact: true,
		}}
	}

	queryTokens := strings.Fields(normalized)
	best := make(map[int]Match)

	for _, it := range m.index {
		score, ok := m.score(normalized, queryTokens, it)
		if !ok {
			continue
		}
		existing, seen := best[it.entry]
		if !seen || score < existing.Score {
			best[it.entry] = Match{
				Entry: &m.entries[it.entry],
				Term:  it.term,
				Score: score,
			}
		}
	}

	matches := make([]Match, 0, len(best))
	for _, match := range best {
		matches = append(matches, match)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score < matches[j].Score
		}
		return matches[i].Term < matches[j].Term
	})

	return matches
}

// Best returns the single best match, if any.
func (m *Matcher) Best(query string) (Match, bool) {
	matches := m.Search(query)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// score computes the match score for one indexed term, or ok=false when the
// term is outside the threshold on every measure.
func (m *Matcher) score(query string, queryTokens []string, it indexedTerm) (float64, bool) {
	distance := levenshtein(query, it.term)
	maxLen := max(len([]rune(query)), len([]rune(it.term)))
	if maxLen == 0 {
		return 0, false
	}

	normalized := float64(distance) / float64(maxLen)
	bestScore := normalized
	ok := normalized <= m.threshold

	// Multi-word queries also get a token-overlap score so that phrases like
	// "testing a/b" still reach "a/b testing".
	if len(queryTokens) > 1 {
		overlap := tokenOverlap(queryTokens, it.tokens)
		overlapScore := 1 - overlap
		if overlapScore <= m.threshold && (!ok || overlapScore < bestScore) {
			bestScore = overlapScore
			ok = true
		}
	}

	return bestScore, ok
}

// tokenOverlap returns the fraction of query tokens that substring-match any
// indexed token.
func tokenOverlap(queryTokens, indexTokens []string) float64 {
	if len(queryTokens) == 0 || len(indexTokens) == 0 {
		return 0
	}

	matched := 0
	for _, qt := range queryTokens {
		for _, tok := range indexTokens {
			if strings.Contains(tok, qt) || strings.Contains(qt, tok) {
				matched++
				break
			}
		}
	}

	return float64(matched) / float64(len(queryTokens))
}

// levenshtein computes edit distance over runes with the classic two-row DP.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Package extraction pulls candidate skill and tool phrases out of cleaned
// job posting text. Five independent strategies run over the same text and
// their results are unioned, bounded, and deduplicated; a separate Splitter
// breaks compound phrases into atomic items.
package extraction

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/GetFractional/Job-Hunter-sub002/internal/taxonomy"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// Phrase bounds and context defaults, overridable through options.
const (
	DefaultMinChars      = 2
	DefaultMaxChars      = 50
	DefaultMaxWords      = 7
	DefaultContextRadius = 100
)

var (
	reBulletLine = regexp.MustCompile(`^\s*(?:[-*•·‣◦–—]|\d+[.)])\s+(.+)$`)
	reIndicator  = regexp.MustCompile(`(?i)\b(?:experience (?:in|with)|knowledge of|proficien(?:t|cy) (?:in|with)|familiarity with|expertise in|background in|skilled in)\s+([^.;:\n]+)`)
	reListCue    = regexp.MustCompile(`(?i)\b(?:including|such as|e\.g\.|like)[\s:,]+([^.;\n]+)`)
	rePhraseWS   = regexp.MustCompile(`\s+`)
)

// leadingFillers are indicator remnants and intensity adjectives stripped from
// phrase starts. Multi-word entries must be checked before single words.
var leadingFillers = []string{
	"experience with ", "experience in ", "knowledge of ", "proficiency in ",
	"proficiency with ", "proficient in ", "proficient with ", "expertise in ",
	"familiarity with ", "background in ", "skilled in ", "ability to ",
	"strong ", "excellent ", "good ", "great ", "solid ", "proven ",
	"demonstrated ", "deep ", "extensive ", "hands-on ", "advanced ", "expert ",
	"prior ", "previous ",
}

// trailingFillers are qualifier words stripped from phrase ends.
var trailingFillers = map[string]struct{}{
	"skills": {}, "skill": {}, "experience": {}, "expertise": {},
	"knowledge": {}, "proficiency": {}, "abilities": {}, "ability": {},
	"required": {}, "preferred": {}, "desired": {},
}

type hit struct {
	raw      string
	strategy string
	pos      int // byte offset in source text, -1 when unknown
}

// Extractor runs the five phrase extraction strategies over posting text.
// Immutable after construction; safe for concurrent use.
type Extractor struct {
	store         *taxonomy.Store
	tagger        Tagger
	scanRe        *regexp.Regexp
	minChars      int
	maxChars      int
	maxWords      int
	contextRadius int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTagger wires a part-of-speech tagger into the noun-phrase strategy.
// Without one the strategy falls back to regex patterns and the fallback is
// reported on every Extract call.
func WithTagger(t Tagger) Option {
	return func(e *Extractor) { e.tagger = t }
}

// WithBounds overrides the phrase length bounds.
func WithBounds(minChars, maxChars, maxWords int) Option {
	return func(e *Extractor) {
		if minChars > 0 {
			e.minChars = minChars
		}
		if maxChars >= e.minChars {
			e.maxChars = maxChars
		}
		if maxWords > 0 {
			e.maxWords = maxWords
		}
	}
}

// WithContextRadius overrides the context window radius in bytes.
func WithContextRadius(radius int) Option {
	return func(e *Extractor) {
		if radius > 0 {
			e.contextRadius = radius
		}
	}
}

// New builds an Extractor over the given vocabulary.
func New(store *taxonomy.Store, opts ...Option) *Extractor {
	e := &Extractor{
		store:         store,
		minChars:      DefaultMinChars,
		maxChars:      DefaultMaxChars,
		maxWords:      DefaultMaxWords,
		contextRadius: DefaultContextRadius,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.scanRe = buildScanRegexp(store)
	return e
}

// buildScanRegexp compiles one alternation over every vocabulary surface form
// for the whole-text scan strategy. Longer terms come first so the scan
// prefers the longest match at each position.
func buildScanRegexp(store *taxonomy.Store) *regexp.Regexp {
	if store == nil {
		return nil
	}

	var terms []string
	seen := make(map[string]struct{})
	collect := func(entries []types.TaxonomyEntry) {
		for _, entry := range entries {
			for _, term := range append([]string{entry.Name}, entry.Aliases...) {
				term = strings.TrimSpace(term)
				if term == "" {
					continue
				}
				if utf8.RuneCountInString(term) == 1 && !store.SingleTokenAllowed(term) {
					continue
				}
				key := strings.ToLower(term)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				terms = append(terms, term)
			}
		}
	}
	collect(store.Entries())
	collect(store.Tools())

	if len(terms) == 0 {
		return nil
	}

	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})

	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Extract returns the deduplicated union of all strategy hits, each tagged
// with its strategy and carrying a surrounding context window. The bool
// reports whether the noun-phrase strategy ran on its regex fallback.
func (e *Extractor) Extract(text string) ([]types.ExtractedPhrase, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	var hits []hit
	hits = append(hits, e.bulletHits(text)...)
	hits = append(hits, regexHits(text, reIndicator, types.StrategyIndicator)...)
	hits = append(hits, e.scanHits(text)...)
	hits = append(hits, regexHits(text, reListCue, types.StrategyList)...)

	nounHits, taggerFallback := e.nounPhraseHits(text)
	hits = append(hits, nounHits...)

	seen := make(map[string]struct{})
	var phrases []types.ExtractedPhrase
	for _, h := range hits {
		cleaned := e.cleanPhrase(h.raw)
		if cleaned == "" || !e.withinBounds(cleaned) {
			continue
		}
		key := strings.ToLower(cleaned)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		phrases = append(phrases, types.ExtractedPhrase{
			Raw:      cleaned,
			Strategy: h.strategy,
			Context:  e.contextFor(text, h),
			Position: h.pos,
		})
	}

	return phrases, taggerFallback
}

func (e *Extractor) bulletHits(text string) []hit {
	var hits []hit
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		if idx := reBulletLine.FindStringSubmatchIndex(line); idx != nil {
			hits = append(hits, hit{
				raw:      line[idx[2]:idx[3]],
				strategy: types.StrategyBullets,
				pos:      offset + idx[2],
			})
		}
		offset += len(line) + 1
	}
	return hits
}

func regexHits(text string, re *regexp.Regexp, strategy string) []hit {
	var hits []hit
	for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
		hits = append(hits, hit{
			raw:      text[idx[2]:idx[3]],
			strategy: strategy,
			pos:      idx[2],
		})
	}
	return hits
}

func (e *Extractor) scanHits(text string) []hit {
	if e.scanRe == nil {
		return nil
	}
	var hits []hit
	for _, idx := range e.scanRe.FindAllStringIndex(text, -1) {
		hits = append(hits, hit{
			raw:      text[idx[0]:idx[1]],
			strategy: types.StrategyTaxonomy,
			pos:      idx[0],
		})
	}
	return hits
}

func (e *Extractor) nounPhraseHits(text string) ([]hit, bool) {
	var phrases []string
	fallback := e.tagger == nil

	if e.tagger != nil {
		tokens, err := e.tagger.Tag(text)
		if err != nil || len(tokens) == 0 {
			fallback = true
		} else {
			phrases = nounPhrasesFromTokens(tokens)
		}
	}
	if fallback {
		phrases = regexNounPhrases(text)
	}

	hits := make([]hit, 0, len(phrases))
	for _, phrase := range phrases {
		hits = append(hits, hit{raw: phrase, strategy: types.StrategyNounPhrase, pos: -1})
	}
	return hits, fallback
}

// cleanPhrase trims whitespace, edge punctuation, and filler qualifiers.
// Exact vocabulary terms are returned untouched so names like "Customer
// Experience" keep their trailing word.
func (e *Extractor) cleanPhrase(raw string) string {
	phrase := rePhraseWS.ReplaceAllString(raw, " ")
	phrase = strings.TrimSpace(phrase)

	for {
		if phrase == "" {
			return ""
		}
		if e.store != nil && e.store.KnownTerm(phrase) {
			return phrase
		}

		next := trimEdgePunct(phrase)
		lower := strings.ToLower(next)
		for _, filler := range leadingFillers {
			if strings.HasPrefix(lower, filler) {
				next = strings.TrimSpace(next[len(filler):])
				break
			}
		}

		words := strings.Fields(next)
		if len(words) > 1 {
			if _, ok := trailingFillers[strings.ToLower(words[len(words)-1])]; ok {
				next = strings.Join(words[:len(words)-1], " ")
			}
		}

		if next == phrase {
			return phrase
		}
		phrase = next
	}
}

func trimEdgePunct(phrase string) string {
	phrase = strings.Trim(phrase, " \t.,;:!?\"'")
	// A trailing close-paren is real punctuation only when unbalanced.
	if strings.HasSuffix(phrase, ")") && !strings.Contains(phrase, "(") {
		phrase = strings.TrimSuffix(phrase, ")")
	}
	if strings.HasPrefix(phrase, "(") && !strings.Contains(phrase, ")") {
		phrase = strings.TrimPrefix(phrase, "(")
	}
	return strings.TrimSpace(phrase)
}

func (e *Extractor) withinBounds(phrase string) bool {
	runes := utf8.RuneCountInString(phrase)
	if runes == 1 {
		return e.store != nil && e.store.SingleTokenAllowed(phrase)
	}
	if runes < e.minChars || runes > e.maxChars {
		return false
	}
	return len(strings.Fields(phrase)) <= e.maxWords
}

// contextFor returns the text window around a hit for downstream requirement
// detection. Hits without a recorded position are located by first
// case-insensitive occurrence.
func (e *Extractor) contextFor(text string, h hit) string {
	pos, length := h.pos, len(h.raw)
	if pos < 0 {
		pos = strings.Index(strings.ToLower(text), strings.ToLower(h.raw))
		if pos < 0 {
			return ""
		}
	}

	start := pos - e.contextRadius
	if start < 0 {
		start = 0
	}
	end := pos + length + e.contextRadius
	if end > len(text) {
		end = len(text)
	}
	for start < len(text) && !utf8.RuneStart(text[start]) {
		start++
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	return strings.TrimSpace(text[start:end])
}

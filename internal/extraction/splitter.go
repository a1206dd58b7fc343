package extraction

import (
	"regexp"
	"strings"

	"github.com/GetFractional/Job-Hunter-sub002/internal/taxonomy"
)

var (
	reSplitAnd      = regexp.MustCompile(`(?i)\s+and\s+`)
	reSplitOr       = regexp.MustCompile(`(?i)\s+or\s+`)
	reParenthetical = regexp.MustCompile(`\(([^()]*)\)`)
	reFragSpaces    = regexp.MustCompile(`\s+`)
)

// edgeWords are trimmed from fragment boundaries after splitting.
var edgeWords = map[string]struct{}{
	"and": {}, "or": {}, "the": {}, "a": {}, "an": {},
	"of": {}, "with": {}, "in": {}, "to": {}, "plus": {},
	"also": {}, "both": {}, "other": {},
}

// edgePrefixes are multi-word leaders stripped before word-level trimming.
var edgePrefixes = []string{"as well as ", "e.g. ", "e.g ", "i.e. ", "i.e ", "eg. ", "etc. "}

// Splitter breaks compound skill phrases ("SQL, Python and R") into atomic
// items. Known vocabulary phrases are protected from fracturing.
type Splitter struct {
	store *taxonomy.Store
}

// NewSplitter builds a Splitter over the given vocabulary.
func NewSplitter(store *taxonomy.Store) *Splitter {
	return &Splitter{store: store}
}

// Split returns the atomic items of a phrase: non-empty, trimmed, free of
// leading/trailing conjunctions, deduplicated case-insensitively with
// first-seen casing preserved. Length-1 fragments are dropped unless on the
// single-token allow-list.
func (s *Splitter) Split(phrase string) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, variant := range expandParentheticals(phrase) {
		for _, fragment := range s.splitVariant(variant) {
			key := strings.ToLower(fragment)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, fragment)
		}
	}

	return out
}

// expandParentheticals turns "X (Y)" into the variants X and Y, each of which
// re-enters the split rules. Phrases without parentheses pass through as-is.
func expandParentheticals(phrase string) []string {
	matches := reParenthetical.FindAllStringSubmatch(phrase, -1)
	if len(matches) == 0 {
		return []string{phrase}
	}

	outer := reParenthetical.ReplaceAllString(phrase, " ")
	variants := []string{outer}
	for _, m := range matches {
		if inner := strings.TrimSpace(m[1]); inner != "" {
			variants = append(variants, inner)
		}
	}
	return variants
}

// splitVariant applies a single split on the highest-precedence separator
// present: semicolon, then comma, then " and ", then " or ". Remaining lower
// separators are handled by edge trimming ("Python, and R").
func (s *Splitter) splitVariant(variant string) []string {
	variant = reFragSpaces.ReplaceAllString(variant, " ")
	variant = strings.TrimSpace(variant)
	if variant == "" {
		return nil
	}

	// An exact vocabulary hit is never fractured, however many separators
	// it contains ("test and learn").
	if s.store != nil && s.store.KnownTerm(variant) {
		return []string{variant}
	}

	var fragments []string
	switch {
	case strings.Contains(variant, ";"):
		fragments = strings.Split(variant, ";")
	case strings.Contains(variant, ","):
		fragments = strings.Split(variant, ",")
	case reSplitAnd.MatchString(variant):
		fragments = reSplitAnd.Split(variant, -1)
	case reSplitOr.MatchString(variant):
		fragments = reSplitOr.Split(variant, -1)
	default:
		fragments = []string{variant}
	}

	var out []string
	for _, fragment := range fragments {
		cleaned := s.cleanFragment(fragment)
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

func (s *Splitter) cleanFragment(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	fragment = strings.Trim(fragment, ".,;:!?\"'()[]{}")
	fragment = reFragSpaces.ReplaceAllString(fragment, " ")
	fragment = strings.TrimSpace(fragment)

	for {
		lower := strings.ToLower(fragment)
		trimmed := false
		for _, prefix := range edgePrefixes {
			if strings.HasPrefix(lower, prefix) {
				fragment = strings.TrimSpace(fragment[len(prefix):])
				trimmed = true
				break
			}
		}
		if !trimmed {
			break
		}
	}

	words := strings.Fields(fragment)
	start, end := 0, len(words)
	for start < end {
		if _, ok := edgeWords[strings.ToLower(words[start])]; !ok {
			break
		}
		start++
	}
	for end > start {
		if _, ok := edgeWords[strings.ToLower(words[end-1])]; !ok {
			break
		}
		end--
	}
	fragment = strings.Join(words[start:end], " ")
	fragment = strings.Trim(fragment, ".,;:!?\"'")

	if fragment == "" {
		return ""
	}
	if len([]rune(fragment)) == 1 {
		if s.store == nil || !s.store.SingleTokenAllowed(fragment) {
			return ""
		}
	}
	return fragment
}

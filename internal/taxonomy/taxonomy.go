// Package taxonomy loads and serves the curated skill taxonomy, the tool
// dictionary, and the classification pattern sets. A Store is immutable after
// construction; per-user dictionary extensions derive a new Store rather than
// mutating the shared one.
package taxonomy

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/GetFractional/Job-Hunter-sub002/internal/matching"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// ToolCategory marks entries sourced from the tool dictionary.
const ToolCategory = "tool"

// UserDefinedCategory marks entries added through dictionary extensions.
const UserDefinedCategory = "user_defined"

type compiledPattern struct {
	expr string
	re   *regexp.Regexp
}

// Store holds the full matching vocabulary for one analysis run.
type Store struct {
	version string

	entries     []types.TaxonomyEntry
	tools       []types.TaxonomyEntry
	byCanonical map[string]int // index into entries

	canonicalRules map[string]string // normalized term -> canonical
	synonyms       map[string]string // normalized synonym -> canonical
	toolDeny       map[string]struct{}
	forced         map[string]string // normalized term -> canonical
	singleTokens   map[string]struct{}

	softSkills []compiledPattern
	noise      []compiledPattern

	knownTerms   map[string]struct{} // every normalized surface form
	knownPhrases []string            // multi-word forms, longest first
}

// NewStore compiles a dataset, tool dictionary, and pattern set into a Store.
// All integrity problems are reported together in one ValidationError.
func NewStore(dataset Dataset, tools ToolsFile, patterns PatternsFile) (*Store, error) {
	s := &Store{
		version:        dataset.Version,
		entries:        append([]types.TaxonomyEntry(nil), dataset.Entries...),
		byCanonical:    make(map[string]int),
		canonicalRules: make(map[string]string),
		synonyms:       make(map[string]string),
		toolDeny:       make(map[string]struct{}),
		forced:         make(map[string]string),
		singleTokens:   make(map[string]struct{}),
		knownTerms:     make(map[string]struct{}),
	}

	verr := &ValidationError{Subject: "taxonomy store"}

	for i, entry := range s.entries {
		if prev, dup := s.byCanonical[entry.Canonical]; dup {
			verr.Issues = append(verr.Issues, FieldIssue{
				Field:       fmt.Sprintf("entries[%d].canonical", i),
				Description: fmt.Sprintf("duplicate canonical %q (first declared by %q)", entry.Canonical, s.entries[prev].Name),
			})
			continue
		}
		s.byCanonical[entry.Canonical] = i
		s.indexEntryTerms(entry)
	}

	for i, rule := range dataset.CanonicalRules {
		if _, ok := s.byCanonical[rule.Canonical]; !ok {
			verr.Issues = append(verr.Issues, FieldIssue{
				Field:       fmt.Sprintf("canonical_rules[%d].canonical", i),
				Description: fmt.Sprintf("unknown canonical %q", rule.Canonical),
			})
			continue
		}
		s.canonicalRules[matching.NormalizeTerm(rule.Term)] = rule.Canonical
	}

	for i, group := range dataset.SynonymGroups {
		if _, ok := s.byCanonical[group.Canonical]; !ok {
			verr.Issues = append(verr.Issues, FieldIssue{
				Field:       fmt.Sprintf("synonym_groups[%d].canonical", i),
				Description: fmt.Sprintf("unknown canonical %q", group.Canonical),
			})
			continue
		}
		for _, synonym := range group.Synonyms {
			normalized := matching.NormalizeTerm(synonym)
			if normalized == "" {
				continue
			}
			// First group wins on cross-group duplicates.
			if _, exists := s.synonyms[normalized]; !exists {
				s.synonyms[normalized] = group.Canonical
			}
		}
	}

	s.tools = make([]types.TaxonomyEntry, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		entry := tool.taxonomyEntry()
		s.tools = append(s.tools, entry)
		s.indexEntryTerms(entry)
	}
	for _, term := range tools.Deny {
		if normalized := matching.NormalizeTerm(term); normalized != "" {
			s.toolDeny[normalized] = struct{}{}
		}
	}

	s.softSkills = compilePatterns("soft_skills", patterns.SoftSkills, verr)
	s.noise = compilePatterns("noise", patterns.Noise, verr)

	for term, canonical := range patterns.ForcedSkills {
		s.forced[matching.NormalizeTerm(term)] = canonical
	}
	for _, token := range patterns.SingleTokens {
		if normalized := matching.NormalizeTerm(token); normalized != "" {
			s.singleTokens[normalized] = struct{}{}
		}
	}

	sortPhrasesLongestFirst(s.knownPhrases)

	if len(verr.Issues) > 0 {
		return nil, verr
	}
	return s, nil
}

func compilePatterns(field string, exprs []string, verr *ValidationError) []compiledPattern {
	compiled := make([]compiledPattern, 0, len(exprs))
	for i, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			verr.Issues = append(verr.Issues, FieldIssue{
				Field:       fmt.Sprintf("%s[%d]", field, i),
				Description: fmt.Sprintf("invalid pattern %q: %v", expr, err),
			})
			continue
		}
		compiled = append(compiled, compiledPattern{expr: expr, re: re})
	}
	return compiled
}

func (s *Store) indexEntryTerms(entry types.TaxonomyEntry) {
	terms := make([]string, 0, len(entry.Aliases)+2)
	terms = append(terms, entry.Name, entry.Canonical)
	terms = append(terms, entry.Aliases...)

	for _, term := range terms {
		normalized := matching.NormalizeTerm(term)
		if normalized == "" {
			continue
		}
		if _, seen := s.knownTerms[normalized]; seen {
			continue
		}
		s.knownTerms[normalized] = struct{}{}
		if strings.Contains(normalized, " ") {
			s.knownPhrases = append(s.knownPhrases, normalized)
		}
	}
}

func sortPhrasesLongestFirst(phrases []string) {
	sort.Slice(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return phrases[i] < phrases[j]
	})
}

// Version returns the dataset version string.
func (s *Store) Version() string {
	return s.version
}

// Entries returns the skill taxonomy entries, dictionary extensions included.
func (s *Store) Entries() []types.TaxonomyEntry {
	return s.entries
}

// Tools returns the tool dictionary entries, dictionary extensions included.
func (s *Store) Tools() []types.TaxonomyEntry {
	return s.tools
}

// EntryByCanonical resolves a canonical key back to its skill entry.
func (s *Store) EntryByCanonical(canonical string) (types.TaxonomyEntry, bool) {
	idx, ok := s.byCanonical[canonical]
	if !ok {
		return types.TaxonomyEntry{}, false
	}
	return s.entries[idx], true
}

// CanonicalRule returns the canonical key for a term with an explicit mapping
// rule, the highest-priority normalization path.
func (s *Store) CanonicalRule(term string) (string, bool) {
	canonical, ok := s.canonicalRules[matching.NormalizeTerm(term)]
	return canonical, ok
}

// Synonym returns the canonical key a synonym-group member resolves to.
func (s *Store) Synonym(term string) (string, bool) {
	canonical, ok := s.synonyms[matching.NormalizeTerm(term)]
	return canonical, ok
}

// ForcedSkill reports whether a term is on the always-classify-as-skill list
// and returns its canonical key.
func (s *Store) ForcedSkill(term string) (string, bool) {
	canonical, ok := s.forced[matching.NormalizeTerm(term)]
	return canonical, ok
}

// DeniedTool reports whether a term must classify as a tool regardless of
// any taxonomy match.
func (s *Store) DeniedTool(term string) bool {
	_, ok := s.toolDeny[matching.NormalizeTerm(term)]
	return ok
}

// SingleTokenAllowed reports whether a one-character token survives the
// length filter ("r" and "c" by default).
func (s *Store) SingleTokenAllowed(token string) bool {
	_, ok := s.singleTokens[matching.NormalizeTerm(token)]
	return ok
}

// SoftSkillPattern returns the first soft-skill pattern matching the phrase.
func (s *Store) SoftSkillPattern(phrase string) (string, bool) {
	return matchPatterns(s.softSkills, phrase)
}

// NoisePattern returns the first noise pattern matching the phrase.
func (s *Store) NoisePattern(phrase string) (string, bool) {
	return matchPatterns(s.noise, phrase)
}

func matchPatterns(patterns []compiledPattern, phrase string) (string, bool) {
	for _, p := range patterns {
		if p.re.MatchString(phrase) {
			return p.expr, true
		}
	}
	return "", false
}

// KnownTerm reports whether the phrase exactly matches any indexed surface
// form, skills and tools alike. The splitter uses this to protect compound
// names from being broken apart at conjunctions.
func (s *Store) KnownTerm(phrase string) bool {
	_, ok := s.knownTerms[matching.NormalizeTerm(phrase)]
	return ok
}

// KnownPhrases returns every multi-word surface form, longest first, for
// whole-text scanning.
func (s *Store) KnownPhrases() []string {
	return s.knownPhrases
}

// WithExtensions derives a new Store with user dictionary entries appended.
// Skill entries join the taxonomy under the user_defined category; tool
// entries join the tool dictionary. The receiver is not modified.
func (s *Store) WithExtensions(extensions []types.DictionaryEntry) *Store {
	if len(extensions) == 0 {
		return s
	}

	derived := &Store{
		version:        s.version,
		entries:        append([]types.TaxonomyEntry(nil), s.entries...),
		tools:          append([]types.TaxonomyEntry(nil), s.tools...),
		byCanonical:    make(map[string]int, len(s.byCanonical)+len(extensions)),
		canonicalRules: s.canonicalRules,
		synonyms:       s.synonyms,
		toolDeny:       s.toolDeny,
		forced:         s.forced,
		singleTokens:   s.singleTokens,
		softSkills:     s.softSkills,
		noise:          s.noise,
		knownTerms:     make(map[string]struct{}, len(s.knownTerms)+len(extensions)),
		knownPhrases:   append([]string(nil), s.knownPhrases...),
	}
	for canonical, idx := range s.byCanonical {
		derived.byCanonical[canonical] = idx
	}
	for term := range s.knownTerms {
		derived.knownTerms[term] = struct{}{}
	}

	for _, ext := range extensions {
		term := strings.TrimSpace(ext.Term)
		if term == "" {
			continue
		}
		entry := types.TaxonomyEntry{
			Name:      term,
			Canonical: matching.Canonicalize(term),
			Category:  UserDefinedCategory,
		}
		if entry.Canonical == "" {
			continue
		}

		switch ext.Kind {
		case types.DictionaryTool:
			entry.Category = ToolCategory
			derived.tools = append(derived.tools, entry)
		default:
			if _, exists := derived.byCanonical[entry.Canonical]; exists {
				continue
			}
			derived.entries = append(derived.entries, entry)
			derived.byCanonical[entry.Canonical] = len(derived.entries) - 1
		}
		derived.indexEntryTerms(entry)
	}

	sortPhrasesLongestFirst(derived.knownPhrases)
	return derived
}

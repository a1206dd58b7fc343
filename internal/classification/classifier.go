// Package classification sorts extracted phrases into core skills, tools,
// review candidates, and rejections. Rules run in a fixed priority order and
// the first match wins; every verdict records the rule that produced it and
// human-readable evidence.
package classification

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/GetFractional/Job-Hunter-sub002/internal/matching"
	"github.com/GetFractional/Job-Hunter-sub002/internal/taxonomy"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// Confidence levels attached to rule verdicts.
const (
	ConfidenceExact     = 0.95
	ConfidenceToolExact = 0.90
	ConfidenceRejected  = 0.90
	ConfidenceCandidate = 0.30
)

// Candidate phrases must stay within these bounds to be worth reviewing.
const (
	candidateMinChars = 2
	candidateMaxChars = 50
	candidateMaxWords = 7
)

// Rule is one classification predicate. Rules are pure: same phrase, same
// verdict, no shared state between calls.
type Rule interface {
	Name() string
	Evaluate(phrase string) (types.ClassifiedItem, bool)
}

// Classifier applies the rule chain to phrases. Immutable after construction;
// safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// Option configures a Classifier.
type Option func(*config)

type config struct {
	threshold float64
}

// WithThreshold overrides the fuzzy-match distance threshold for both the
// taxonomy and tools indexes.
func WithThreshold(threshold float64) Option {
	return func(c *config) { c.threshold = threshold }
}

// New builds the standard rule chain over the given vocabulary:
// soft-skill/noise rejection, forced skills, tool deny-list, taxonomy
// matching, tools dictionary, candidate fallback.
func New(store *taxonomy.Store, opts ...Option) *Classifier {
	cfg := config{threshold: matching.DefaultThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}

	skillMatcher := matching.NewWithThreshold(store.Entries(), cfg.threshold)
	toolMatcher := matching.NewWithThreshold(store.Tools(), cfg.threshold)

	return &Classifier{
		rules: []Rule{
			&SoftSkillRule{Store: store},
			&ForcedSkillRule{Store: store},
			&ToolDenyRule{Store: store, Tools: toolMatcher},
			&TaxonomyRule{Matcher: skillMatcher},
			&ToolsDictionaryRule{Matcher: toolMatcher},
			&CandidateFallbackRule{Store: store},
		},
	}
}

// Rules exposes the ordered chain, mainly for diagnostics.
func (c *Classifier) Rules() []Rule {
	return c.rules
}

// Classify runs the phrase through the rule chain. Phrases no rule claims are
// rejected with the length-filter rule.
func (c *Classifier) Classify(phrase string) types.ClassifiedItem {
	trimmed := strings.TrimSpace(phrase)
	if trimmed == "" {
		return types.ClassifiedItem{
			Raw:        phrase,
			Type:       types.TypeRejected,
			Confidence: ConfidenceRejected,
			Evidence:   "empty phrase",
			Rule:       types.RuleLengthFilter,
		}
	}

	for _, rule := range c.rules {
		if item, ok := rule.Evaluate(trimmed); ok {
			return item
		}
	}

	return types.ClassifiedItem{
		Raw:        trimmed,
		Type:       types.TypeRejected,
		Confidence: ConfidenceRejected,
		Evidence:   "no rule matched within candidate bounds",
		Rule:       types.RuleLengthFilter,
	}
}

// SoftSkillRule rejects phrases matching the soft-skill or noise pattern
// sets. Highest priority: a soft-skill phrase is rejected even when it
// overlaps taxonomy vocabulary.
type SoftSkillRule struct {
	Store *taxonomy.Store
}

// Name implements Rule.
func (r *SoftSkillRule) Name() string { return types.RuleSoftSkill }

// Evaluate implements Rule.
func (r *SoftSkillRule) Evaluate(phrase string) (types.ClassifiedItem, bool) {
	if pattern, ok := r.Store.SoftSkillPattern(phrase); ok {
		return types.ClassifiedItem{
			Raw:        phrase,
			Type:       types.TypeRejected,
			Confidence: ConfidenceRejected,
			Evidence:   fmt.Sprintf("matched soft-skill pattern %q", pattern),
			Rule:       types.RuleSoftSkill,
		}, true
	}
	if pattern, ok := r.Store.NoisePattern(phrase); ok {
		return types.ClassifiedItem{
			Raw:        phrase,
			Type:       types.TypeRejected,
			Confidence: ConfidenceRejected,
			Evidence:   fmt.Sprintf("matched noise pattern %q", pattern),
			Rule:       types.RuleNoise,
		}, true
	}
	return types.ClassifiedItem{}, false
}

// ForcedSkillRule classifies always-skill terms (languages, named
// methodologies). Runs before the tool deny-list so collisions resolve in
// favor of the skill bucket.
type ForcedSkillRule struct {
	Store *taxonomy.Store
}

// Name implements Rule.
func (r *ForcedSkillRule) Name() string { return types.RuleForcedSkill }

// Evaluate implements Rule.
func (r *ForcedSkillRule) Evaluate(phrase string) (types.ClassifiedItem, bool) {
	canonical, ok := r.Store.ForcedSkill(phrase)
	if !ok {
		return types.ClassifiedItem{}, false
	}
	return types.ClassifiedItem{
		Raw:        phrase,
		Canonical:  canonical,
		Type:       types.TypeCoreSkill,
		Confidence: ConfidenceExact,
		Evidence:   "forced-skill allow-list",
		Rule:       types.RuleForcedSkill,
	}, true
}

// ToolDenyRule forces deny-listed vendor and product names into the tool
// bucket before any taxonomy matching can claim them.
type ToolDenyRule struct {
	Store *taxonomy.Store
	Tools *matching.Matcher
}

// Name implements Rule.
func (r *ToolDenyRule) Name() string { return types.RuleToolDenylist }

// Evaluate implements Rule.
func (r *ToolDenyRule) Evaluate(phrase string) (types.ClassifiedItem, bool) {
	if !r.Store.DeniedTool(phrase) {
		return types.ClassifiedItem{}, false
	}

	canonical := matching.Canonicalize(phrase)
	if match, ok := r.Tools.Best(phrase); ok && match.Exact {
		canonical = match.Entry.Canonical
	}
	return types.ClassifiedItem{
		Raw:        phrase,
		Canonical:  canonical,
		Type:       types.TypeTool,
		Confidence: ConfidenceExact,
		Evidence:   "tool deny-list",
		Rule:       types.RuleToolDenylist,
	}, true
}

// TaxonomyRule matches phrases against the skill taxonomy index. Exact hits
// get fixed high confidence; fuzzy hits get confidence inversely proportional
// to distance.
type TaxonomyRule struct {
	Matcher *matching.Matcher
}

// Name implements Rule.
func (r *TaxonomyRule) Name() string { return types.RuleTaxonomyExact }

// Evaluate implements Rule.
func (r *TaxonomyRule) Evaluate(phrase string) (types.ClassifiedItem, bool) {
	match, ok := r.Matcher.Best(phrase)
	if !ok {
		return types.ClassifiedItem{}, false
	}

	if match.Exact {
		return types.ClassifiedItem{
			Raw:        phrase,
			Canonical:  match.Entry.Canonical,
			Type:       types.TypeCoreSkill,
			Confidence: ConfidenceExact,
			Evidence:   fmt.Sprintf("exact taxonomy match %q", match.Entry.Name),
			Rule:       types.RuleTaxonomyExact,
		}, true
	}
	return types.ClassifiedItem{
		Raw:        phrase,
		Canonical:  match.Entry.Canonical,
		Type:       types.TypeCoreSkill,
		Confidence: 1 - match.Score,
		Evidence:   fmt.Sprintf("fuzzy taxonomy match %q (distance %.2f)", match.Entry.Name, match.Score),
		Rule:       types.RuleTaxonomyFuzzy,
	}, true
}

// ToolsDictionaryRule matches phrases against the tool dictionary index with
// the same mechanism as TaxonomyRule.
type ToolsDictionaryRule struct {
	Matcher *matching.Matcher
}

// Name implements Rule.
func (r *ToolsDictionaryRule) Name() string { return types.RuleToolsDictionary }

// Evaluate implements Rule.
func (r *ToolsDictionaryRule) Evaluate(phrase string) (types.ClassifiedItem, bool) {
	match, ok := r.Matcher.Best(phrase)
	if !ok {
		return types.ClassifiedItem{}, false
	}

	confidence := ConfidenceToolExact
	evidence := fmt.Sprintf("tool dictionary match %q", match.Entry.Name)
	if !match.Exact {
		confidence = min(1-match.Score, ConfidenceToolExact)
		evidence = fmt.Sprintf("fuzzy tool dictionary match %q (distance %.2f)", match.Entry.Name, match.Score)
	}
	return types.ClassifiedItem{
		Raw:        phrase,
		Canonical:  match.Entry.Canonical,
		Type:       types.TypeTool,
		Confidence: confidence,
		Evidence:   evidence,
		Rule:       types.RuleToolsDictionary,
	}, true
}

// CandidateFallbackRule keeps plausible unknown phrases for human review.
// Implausible ones (generic noise, out of bounds) fall through to rejection.
type CandidateFallbackRule struct {
	Store *taxonomy.Store
}

// Name implements Rule.
func (r *CandidateFallbackRule) Name() string { return types.RuleCandidateFallback }

// Evaluate implements Rule.
func (r *CandidateFallbackRule) Evaluate(phrase string) (types.ClassifiedItem, bool) {
	if !candidateWorthy(phrase, r.Store) {
		return types.ClassifiedItem{}, false
	}
	return types.ClassifiedItem{
		Raw:        phrase,
		Canonical:  matching.Canonicalize(phrase),
		Type:       types.TypeCandidate,
		Confidence: ConfidenceCandidate,
		Evidence:   "unmatched phrase retained for review",
		Rule:       types.RuleCandidateFallback,
	}, true
}

func candidateWorthy(phrase string, store *taxonomy.Store) bool {
	runes := utf8.RuneCountInString(phrase)
	if runes == 1 {
		return store.SingleTokenAllowed(phrase)
	}
	if runes < candidateMinChars || runes > candidateMaxChars {
		return false
	}
	if len(strings.Fields(phrase)) > candidateMaxWords {
		return false
	}

	hasLetter := false
	for _, r := range phrase {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	return hasLetter
}

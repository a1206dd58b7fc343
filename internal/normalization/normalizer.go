// Package normalization canonicalizes classified items and assembles the four
// result buckets. Canonical resolution tries explicit rules first, then
// synonym groups, then fuzzy matching, and falls back to a mechanical key;
// resolving an already-canonical key returns it unchanged.
package normalization

import (
	"fmt"

	"github.com/GetFractional/Job-Hunter-sub002/internal/matching"
	"github.com/GetFractional/Job-Hunter-sub002/internal/taxonomy"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// DefaultMinConfidence is the floor below which normalized items are dropped.
const DefaultMinConfidence = 0.25

// Resolution methods recorded in item evidence.
const (
	methodCanonicalRule = "canonical rule"
	methodSynonym       = "synonym group"
	methodExact         = "exact match"
	methodFuzzy         = "fuzzy match"
	methodMechanical    = "mechanical fallback"
)

// Match quality per resolution method. Fuzzy quality is distance-derived.
const (
	qualityExact      = 1.0
	qualityMechanical = 0.9
)

// Normalizer canonicalizes and buckets classified items. Immutable after
// construction; safe for concurrent use.
type Normalizer struct {
	store         *taxonomy.Store
	skills        *matching.Matcher
	tools         *matching.Matcher
	minConfidence float64
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithMinConfidence overrides the confidence floor.
func WithMinConfidence(floor float64) Option {
	return func(n *Normalizer) {
		if floor >= 0 && floor <= 1 {
			n.minConfidence = floor
		}
	}
}

// WithThreshold overrides the fuzzy-match threshold used during resolution.
func WithThreshold(threshold float64) Option {
	return func(n *Normalizer) {
		n.skills = matching.NewWithThreshold(n.store.Entries(), threshold)
		n.tools = matching.NewWithThreshold(n.store.Tools(), threshold)
	}
}

// New builds a Normalizer over the given vocabulary.
func New(store *taxonomy.Store, opts ...Option) *Normalizer {
	n := &Normalizer{
		store:         store,
		skills:        matching.New(store.Entries()),
		tools:         matching.New(store.Tools()),
		minConfidence: DefaultMinConfidence,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Result is the bucketed output of one normalization pass.
type Result struct {
	RequiredCoreSkills []types.NormalizedItem
	DesiredCoreSkills  []types.NormalizedItem
	RequiredTools      []types.NormalizedItem
	DesiredTools       []types.NormalizedItem
	// Candidates pass through untouched for the candidate manager.
	Candidates []types.ClassifiedItem
	// Dropped counts items discarded below the confidence floor.
	Dropped int
}

// Resolve canonicalizes a single term: canonical rule, then synonym group,
// then fuzzy match against the index for the item type, then mechanical
// fallback. Returns the canonical key, the match quality in (0,1], and the
// method used.
func (n *Normalizer) Resolve(term string, itemType types.ItemType) (string, float64, string) {
	if canonical, ok := n.store.CanonicalRule(term); ok {
		return canonical, qualityExact, methodCanonicalRule
	}
	if canonical, ok := n.store.Synonym(term); ok {
		return canonical, qualityExact, methodSynonym
	}

	matcher := n.skills
	if itemType == types.TypeTool {
		matcher = n.tools
	}
	if match, ok := matcher.Best(term); ok {
		if match.Exact {
			return match.Entry.Canonical, qualityExact, methodExact
		}
		return match.Entry.Canonical, 1 - match.Score, methodFuzzy
	}

	return matching.Canonicalize(term), qualityMechanical, methodMechanical
}

// Normalize canonicalizes classified items and assembles buckets. Canonical
// keys are unique within a bucket; a key present in a required bucket is
// suppressed from the matching desired bucket.
func (n *Normalizer) Normalize(items []types.ClassifiedItem) Result {
	var res Result

	reqSkills := newBucket()
	desSkills := newBucket()
	reqTools := newBucket()
	desTools := newBucket()

	for _, item := range items {
		switch item.Type {
		case types.TypeRejected:
			continue
		case types.TypeCandidate:
			res.Candidates = append(res.Candidates, item)
			continue
		}

		canonical, quality, method := n.Resolve(item.Raw, item.Type)
		if canonical == "" {
			res.Dropped++
			continue
		}

		confidence := item.Confidence * quality
		if confidence < n.minConfidence {
			res.Dropped++
			continue
		}

		normalized := types.NormalizedItem{
			Raw:        item.Raw,
			Canonical:  canonical,
			Type:       item.Type,
			Confidence: confidence,
			Evidence:   composeEvidence(item.Evidence, method),
			Level:      item.Level,
			Multiplier: item.Multiplier,
		}

		switch {
		case item.Type == types.TypeCoreSkill && item.Level == types.LevelDesired:
			desSkills.add(normalized)
		case item.Type == types.TypeCoreSkill:
			reqSkills.add(normalized)
		case item.Type == types.TypeTool && item.Level == types.LevelDesired:
			desTools.add(normalized)
		case item.Type == types.TypeTool:
			reqTools.add(normalized)
		}
	}

	desSkills.suppress(reqSkills)
	desTools.suppress(reqTools)

	res.RequiredCoreSkills = reqSkills.items()
	res.DesiredCoreSkills = desSkills.items()
	res.RequiredTools = reqTools.items()
	res.DesiredTools = desTools.items()
	return res
}

func composeEvidence(evidence, method string) string {
	if method == methodExact {
		return evidence
	}
	if evidence == "" {
		return fmt.Sprintf("canonicalized via %s", method)
	}
	return fmt.Sprintf("%s; canonicalized via %s", evidence, method)
}

// bucket deduplicates by canonical key, keeping the highest-confidence item
// and preserving first-seen order.
type bucket struct {
	order []string
	byKey map[string]types.NormalizedItem
}

func newBucket() *bucket {
	return &bucket{byKey: make(map[string]types.NormalizedItem)}
}

func (b *bucket) add(item types.NormalizedItem) {
	existing, ok := b.byKey[item.Canonical]
	if !ok {
		b.order = append(b.order, item.Canonical)
		b.byKey[item.Canonical] = item
		return
	}
	if item.Confidence > existing.Confidence {
		b.byKey[item.Canonical] = item
	}
}

// suppress removes every key the other bucket already holds.
func (b *bucket) suppress(required *bucket) {
	var kept []string
	for _, key := range b.order {
		if _, dup := required.byKey[key]; dup {
			delete(b.byKey, key)
			continue
		}
		kept = append(kept, key)
	}
	b.order = kept
}

func (b *bucket) items() []types.NormalizedItem {
	if len(b.order) == 0 {
		return nil
	}
	out := make([]types.NormalizedItem, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.byKey[key])
	}
	return out
}

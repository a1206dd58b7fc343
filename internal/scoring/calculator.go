// Package scoring computes the weighted, penalized fit score between a
// posting's extracted requirements and a user profile.
package scoring

import (
	"fmt"
	"strings"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// Default weights and penalties. All heuristic, kept as named configuration
// values so hosts can tune them without code changes.
const (
	DefaultRequiredWeight = 2.0
	DefaultDesiredWeight  = 1.0

	DefaultCoreSkillsWeight = 0.70
	DefaultToolsWeight      = 0.30

	DefaultMissingRequiredSkillPenalty = -0.10
	DefaultMissingRequiredToolPenalty  = -0.12
	DefaultMissingExpertToolPenalty    = -0.15
	DefaultMissingDesiredToolPenalty   = -0.05
	DefaultPenaltyFloor                = -0.50

	// DefaultExpertMultiplier mirrors the requirement detector's expert
	// level. A missing required tool at or above it takes the deeper penalty.
	DefaultExpertMultiplier = 3.0
)

// Weights collects every tunable constant in the score computation.
type Weights struct {
	Required float64
	Desired  float64

	CoreSkills float64
	Tools      float64

	MissingRequiredSkill float64
	MissingRequiredTool  float64
	MissingExpertTool    float64
	MissingDesiredTool   float64
	PenaltyFloor         float64

	ExpertMultiplier float64
}

// DefaultWeights returns the default scoring configuration.
func DefaultWeights() Weights {
	return Weights{
		Required:             DefaultRequiredWeight,
		Desired:              DefaultDesiredWeight,
		CoreSkills:           DefaultCoreSkillsWeight,
		Tools:                DefaultToolsWeight,
		MissingRequiredSkill: DefaultMissingRequiredSkillPenalty,
		MissingRequiredTool:  DefaultMissingRequiredToolPenalty,
		MissingExpertTool:    DefaultMissingExpertToolPenalty,
		MissingDesiredTool:   DefaultMissingDesiredToolPenalty,
		PenaltyFloor:         DefaultPenaltyFloor,
		ExpertMultiplier:     DefaultExpertMultiplier,
	}
}

// Resolver canonicalizes profile terms so the user's inventory and the
// posting's requirements compare on equal keys. *normalization.Normalizer
// satisfies it.
type Resolver interface {
	Resolve(term string, itemType types.ItemType) (canonical string, quality float64, method string)
}

// Calculator scores extractions against profiles. Stateless and safe for
// concurrent use.
type Calculator struct {
	resolver Resolver
	weights  Weights
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithWeights replaces the default scoring configuration.
func WithWeights(w Weights) Option {
	return func(c *Calculator) {
		c.weights = w
	}
}

// New creates a Calculator backed by the given resolver.
func New(resolver Resolver, opts ...Option) *Calculator {
	c := &Calculator{
		resolver: resolver,
		weights:  DefaultWeights(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Score computes the fit between an extraction and a profile. It never
// fails: an empty profile yields a zero score with an explanatory message,
// and a bucket with no requirements at all scores 1.0.
func (c *Calculator) Score(extraction *types.ExtractionResult, profile *types.UserProfile) *types.FitScoreResult {
	if profile.IsEmpty() {
		return &types.FitScoreResult{
			CoreSkills: scoreBucket(extraction.RequiredCoreSkills, extraction.DesiredCoreSkills, nil, c.weights),
			Tools:      scoreBucket(extraction.RequiredTools, extraction.DesiredTools, nil, c.weights),
			Message:    "profile lists no core skills or tools, so there is nothing to score against",
		}
	}

	coreInventory := c.canonicalSet(profile.CoreSkills, types.TypeCoreSkill)
	toolInventory := c.canonicalSet(profile.Tools, types.TypeTool)

	core := scoreBucket(extraction.RequiredCoreSkills, extraction.DesiredCoreSkills, coreInventory, c.weights)
	tools := scoreBucket(extraction.RequiredTools, extraction.DesiredTools, toolInventory, c.weights)

	raw := core.Score*c.weights.CoreSkills + tools.Score*c.weights.Tools

	penalties := c.penalties(extraction, coreInventory, toolInventory)
	total := 0.0
	for _, p := range penalties {
		total += p.Amount
	}
	if total < c.weights.PenaltyFloor {
		total = c.weights.PenaltyFloor
	}

	overall := raw + total
	if overall < 0 {
		overall = 0
	}
	if overall > 1 {
		overall = 1
	}

	result := &types.FitScoreResult{
		OverallScore:    overall,
		RawScore:        raw,
		CoreSkills:      core,
		Tools:           tools,
		Penalties:       penalties,
		TotalPenalty:    total,
		Recommendations: recommendations(overall, core, tools),
	}
	if bucketEmpty(core) && bucketEmpty(tools) {
		result.Message = "no requirements were extracted from the posting"
	}
	return result
}

// canonicalSet resolves each profile term to its canonical key.
func (c *Calculator) canonicalSet(terms []string, itemType types.ItemType) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			continue
		}
		canonical, _, _ := c.resolver.Resolve(term, itemType)
		if canonical != "" {
			set[canonical] = true
		}
	}
	return set
}

// scoreBucket scores one bucket: (requiredMatched·Wr + desiredMatched·Wd) /
// (requiredTotal·Wr + desiredTotal·Wd). An empty requirement set scores 1.0.
func scoreBucket(required, desired []types.NormalizedItem, inventory map[string]bool, w Weights) types.BucketScore {
	bucket := types.BucketScore{
		RequiredTotal: len(required),
		DesiredTotal:  len(desired),
	}

	for _, item := range required {
		if inventory[item.Canonical] {
			bucket.RequiredMatched++
			bucket.Matched = append(bucket.Matched, item.Canonical)
		} else {
			bucket.MissingRequired = append(bucket.MissingRequired, item.Canonical)
		}
	}
	for _, item := range desired {
		if inventory[item.Canonical] {
			bucket.DesiredMatched++
			bucket.Matched = append(bucket.Matched, item.Canonical)
		} else {
			bucket.MissingDesired = append(bucket.MissingDesired, item.Canonical)
		}
	}

	if bucket.RequiredTotal == 0 && bucket.DesiredTotal == 0 {
		bucket.Score = 1.0
		return bucket
	}

	denominator := float64(bucket.RequiredTotal)*w.Required + float64(bucket.DesiredTotal)*w.Desired
	if denominator <= 0 {
		return bucket
	}
	bucket.Score = (float64(bucket.RequiredMatched)*w.Required + float64(bucket.DesiredMatched)*w.Desired) / denominator
	return bucket
}

// penalties lists every deduction with its rationale. Missing desired core
// skills carry no penalty; they only lower the bucket score.
func (c *Calculator) penalties(extraction *types.ExtractionResult, coreInventory, toolInventory map[string]bool) []types.Penalty {
	var penalties []types.Penalty

	for _, item := range extraction.RequiredCoreSkills {
		if coreInventory[item.Canonical] {
			continue
		}
		penalties = append(penalties, types.Penalty{
			Amount:    c.weights.MissingRequiredSkill,
			Canonical: item.Canonical,
			Type:      types.TypeCoreSkill,
			Reason:    fmt.Sprintf("required core skill %q is not in the profile", item.Canonical),
		})
	}

	for _, item := range extraction.RequiredTools {
		if toolInventory[item.Canonical] {
			continue
		}
		amount := c.weights.MissingRequiredTool
		reason := fmt.Sprintf("required tool %q is not in the profile", item.Canonical)
		if item.Multiplier >= c.weights.ExpertMultiplier {
			amount = c.weights.MissingExpertTool
			reason = fmt.Sprintf("required tool %q is demanded at expert level and is not in the profile", item.Canonical)
		}
		penalties = append(penalties, types.Penalty{
			Amount:    amount,
			Canonical: item.Canonical,
			Type:      types.TypeTool,
			Reason:    reason,
		})
	}

	for _, item := range extraction.DesiredTools {
		if toolInventory[item.Canonical] {
			continue
		}
		penalties = append(penalties, types.Penalty{
			Amount:    c.weights.MissingDesiredTool,
			Canonical: item.Canonical,
			Type:      types.TypeTool,
			Reason:    fmt.Sprintf("desired tool %q is not in the profile", item.Canonical),
		})
	}

	return penalties
}

// recommendations turns the breakdown into a brief plain-language summary.
func recommendations(overall float64, core, tools types.BucketScore) []string {
	var recs []string

	switch {
	case overall >= 0.75:
		recs = append(recs, "Strong fit. The profile covers most of what the posting asks for.")
	case overall >= 0.45:
		recs = append(recs, "Moderate fit. Closing the gaps below would raise the score.")
	default:
		recs = append(recs, "Weak fit. The posting asks for several skills and tools the profile does not list.")
	}

	if len(core.MissingRequired) > 0 {
		recs = append(recs, fmt.Sprintf("Add required core skills: %s.", strings.Join(core.MissingRequired, ", ")))
	}
	if len(tools.MissingRequired) > 0 {
		recs = append(recs, fmt.Sprintf("Add required tools: %s.", strings.Join(tools.MissingRequired, ", ")))
	}
	if len(tools.MissingDesired) > 0 {
		recs = append(recs, fmt.Sprintf("Listing %s would strengthen the application.", strings.Join(tools.MissingDesired, ", ")))
	}
	if len(core.MissingDesired) > 0 {
		recs = append(recs, fmt.Sprintf("Desired skills worth surfacing: %s.", strings.Join(core.MissingDesired, ", ")))
	}

	return recs
}

func bucketEmpty(b types.BucketScore) bool {
	return b.RequiredTotal == 0 && b.DesiredTotal == 0
}

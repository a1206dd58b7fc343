// Package types provides type definitions for structured data used throughout the job-fit analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ItemType is the bucket a classified phrase lands in.
type ItemType string

// Classification buckets.
const (
	TypeCoreSkill ItemType = "core_skill"
	TypeTool      ItemType = "tool"
	TypeCandidate ItemType = "candidate"
	TypeRejected  ItemType = "rejected"
)

// ParseItemType maps user-facing spellings ("TOOL", "core_skill", "Core Skill")
// to an ItemType. Returns false when the value names no known bucket.
func ParseItemType(s string) (ItemType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch ItemType(normalized) {
	case TypeCoreSkill, TypeTool, TypeCandidate, TypeRejected:
		return ItemType(normalized), true
	}
	return "", false
}

// RequirementLevel marks whether a posting treats an item as mandatory.
type RequirementLevel string

// Requirement levels.
const (
	LevelRequired RequirementLevel = "required"
	LevelDesired  RequirementLevel = "desired"
)

// Classifier rule names, recorded on every classified item for auditability.
const (
	RuleSoftSkill         = "soft_skill"
	RuleNoise             = "noise"
	RuleForcedSkill       = "forced_skill"
	RuleToolDenylist      = "tool_denylist"
	RuleTaxonomyExact     = "taxonomy_exact"
	RuleTaxonomyFuzzy     = "taxonomy_fuzzy"
	RuleToolsDictionary   = "tools_dictionary"
	RuleCandidateFallback = "candidate_fallback"
	RuleLengthFilter      = "length_filter"
)

// ClassifiedItem is the classifier's verdict for one extracted phrase.
// Ephemeral: consumed by the normalizer.
type ClassifiedItem struct {
	Raw        string           `json:"raw"`
	Canonical  string           `json:"canonical,omitempty"`
	Type       ItemType         `json:"type"`
	Confidence float64          `json:"confidence"`
	Evidence   string           `json:"evidence"`
	Rule       string           `json:"rule"`
	Level      RequirementLevel `json:"level"`
	Multiplier float64          `json:"multiplier"`
}

// NormalizedItem is a canonicalized, deduplicated item with final confidence.
// This is the shape exposed in extraction results.
type NormalizedItem struct {
	Raw        string           `json:"raw"`
	Canonical  string           `json:"canonical"`
	Type       ItemType         `json:"type"`
	Confidence float64          `json:"confidence"`
	Evidence   string           `json:"evidence"`
	Level      RequirementLevel `json:"level"`
	Multiplier float64          `json:"multiplier"`
}

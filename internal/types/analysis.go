// Package types provides type definitions for structured data used throughout the job-fit analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AnalysisMetadata describes how an extraction was produced, including which
// fallback paths fired. Fallbacks are flagged here, never surfaced as errors.
type AnalysisMetadata struct {
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned input text
	Timestamp string `json:"timestamp"` // RFC3339
	// DefaultToRequired is set when the posting has no recognizable
	// requirement-section headers and every phrase was treated as required.
	DefaultToRequired bool `json:"default_to_required,omitempty"`
	// TaggerFallback is set when noun-phrase extraction ran on the regex
	// fallback instead of a part-of-speech tagger.
	TaggerFallback bool     `json:"tagger_fallback,omitempty"`
	CacheHit       bool     `json:"cache_hit,omitempty"`
	PhraseCount    int      `json:"phrase_count"`
	Warnings       []string `json:"warnings,omitempty"`
}

// ExtractionResult holds the four classification buckets plus unresolved
// candidates for one posting. Profile-independent: this is the unit the
// result cache stores.
type ExtractionResult struct {
	RequiredCoreSkills []NormalizedItem `json:"required_core_skills"`
	DesiredCoreSkills  []NormalizedItem `json:"desired_core_skills"`
	RequiredTools      []NormalizedItem `json:"required_tools"`
	DesiredTools       []NormalizedItem `json:"desired_tools"`
	Candidates         []Candidate      `json:"candidates,omitempty"`
	Metadata           AnalysisMetadata `json:"metadata"`
}

// AnalysisResult pairs an extraction with the fit score computed against the
// supplied profile. Fit is nil when no profile was provided.
type AnalysisResult struct {
	Extraction ExtractionResult `json:"extraction"`
	Fit        *FitScoreResult  `json:"fit,omitempty"`
}

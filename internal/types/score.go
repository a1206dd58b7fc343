// Package types provides type definitions for structured data used throughout the job-fit analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Penalty is a single deduction applied to the raw fit score, with the reason
// it was applied.
type Penalty struct {
	Amount    float64  `json:"amount"` // negative
	Canonical string   `json:"canonical"`
	Type      ItemType `json:"type"`
	Reason    string   `json:"reason"`
}

// BucketScore is the per-bucket breakdown (core skills or tools).
type BucketScore struct {
	Score           float64  `json:"score"`
	RequiredTotal   int      `json:"required_total"`
	RequiredMatched int      `json:"required_matched"`
	DesiredTotal    int      `json:"desired_total"`
	DesiredMatched  int      `json:"desired_matched"`
	Matched         []string `json:"matched,omitempty"`
	MissingRequired []string `json:"missing_required,omitempty"`
	MissingDesired  []string `json:"missing_desired,omitempty"`
}

// FitScoreResult is the calibrated fit score with its full explanation.
type FitScoreResult struct {
	OverallScore    float64     `json:"overall_score"`
	RawScore        float64     `json:"raw_score"`
	CoreSkills      BucketScore `json:"core_skills"`
	Tools           BucketScore `json:"tools"`
	Penalties       []Penalty   `json:"penalties,omitempty"`
	TotalPenalty    float64     `json:"total_penalty"`
	Recommendations []string    `json:"recommendations,omitempty"`
	// Message explains degenerate outcomes (empty profile, nothing extracted)
	// instead of surfacing them as errors.
	Message string `json:"message,omitempty"`
}

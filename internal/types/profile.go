// Package types provides type definitions for structured data used throughout the job-fit analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// UserProfile is the candidate's declared inventory, owned by an external
// profile store and supplied per analysis.
type UserProfile struct {
	CoreSkills []string `json:"core_skills"`
	Tools      []string `json:"tools"`
}

// IsEmpty reports whether the profile declares nothing to match against.
func (p *UserProfile) IsEmpty() bool {
	return p == nil || (len(p.CoreSkills) == 0 && len(p.Tools) == 0)
}

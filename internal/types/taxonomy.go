// Package types provides type definitions for structured data used throughout the job-fit analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TaxonomyEntry is one curated skill concept. Entries are immutable once the
// dataset is loaded; the canonical key is unique across the dataset.
type TaxonomyEntry struct {
	Name      string   `json:"name" validate:"required,min=1"`
	Canonical string   `json:"canonical" validate:"required,min=1"`
	Category  string   `json:"category,omitempty"`
	Aliases   []string `json:"aliases,omitempty"`
}

// CanonicalRule maps an informal term or abbreviation directly to a canonical key.
type CanonicalRule struct {
	Term      string `json:"term" validate:"required,min=1"`
	Canonical string `json:"canonical" validate:"required,min=1"`
}

// SynonymGroup collects surface phrasings that all resolve to one canonical key.
type SynonymGroup struct {
	Canonical string   `json:"canonical" validate:"required,min=1"`
	Synonyms  []string `json:"synonyms" validate:"required,min=1"`
}

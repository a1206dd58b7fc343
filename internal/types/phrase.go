// Package types provides type definitions for structured data used throughout the job-fit analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Extraction strategy tags recorded on each phrase.
const (
	StrategyBullets    = "bullets"
	StrategyIndicator  = "indicator"
	StrategyTaxonomy   = "taxonomy"
	StrategyList       = "list"
	StrategyNounPhrase = "nounphrase"
)

// ExtractedPhrase is a candidate skill/tool mention pulled out of raw posting
// text. Ephemeral: created per analysis and consumed by the classifier.
type ExtractedPhrase struct {
	Raw      string `json:"raw"`
	Strategy string `json:"strategy"`
	// Context is the text surrounding the first occurrence of the phrase,
	// used for requirement-level and intensity detection.
	Context string `json:"context,omitempty"`
	// Position is the byte offset of the source hit in the analyzed text,
	// -1 when the strategy cannot locate one.
	Position int `json:"position"`
}

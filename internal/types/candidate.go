// Package types provides type definitions for structured data used throughout the job-fit analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackAction is a reviewer's decision on a candidate.
type FeedbackAction string

// Feedback actions.
const (
	FeedbackAccept   FeedbackAction = "accept"
	FeedbackReject   FeedbackAction = "reject"
	FeedbackClassify FeedbackAction = "classify"
)

// CandidateFeedback is an explicit reviewer decision attached to a candidate.
// A classify action carries the bucket the phrase should land in from now on.
type CandidateFeedback struct {
	Action       FeedbackAction `json:"action" validate:"required,oneof=accept reject classify"`
	ClassifiedAs ItemType       `json:"classified_as,omitempty"`
	Note         string         `json:"note,omitempty"`
}

// Candidate is an extracted phrase the classifier could not confidently place.
// Persisted across runs until resolved by feedback.
type Candidate struct {
	ID           uuid.UUID          `json:"id"`
	Raw          string             `json:"raw"`
	Canonical    string             `json:"canonical"`
	InferredType ItemType           `json:"inferred_type"`
	Confidence   float64            `json:"confidence"`
	Evidence     string             `json:"evidence"`
	Source       string             `json:"source,omitempty"` // posting hash the phrase first appeared in
	Frequency    int                `json:"frequency"`        // recurrence across postings
	FirstSeen    time.Time          `json:"first_seen"`
	LastSeen     time.Time          `json:"last_seen"`
	Feedback     *CandidateFeedback `json:"feedback,omitempty"`
}

// DictionaryKind tags a user-scoped vocabulary extension entry.
type DictionaryKind string

// Dictionary entry kinds.
const (
	DictionarySkill DictionaryKind = "skill"
	DictionaryTool  DictionaryKind = "tool"
)

// DictionaryEntry is a vocabulary extension created by classify feedback.
// Entries take effect on subsequent analyses; this is the only persistent
// mutation path from the review loop back into matching.
type DictionaryEntry struct {
	Term    string         `json:"term"`
	Kind    DictionaryKind `json:"kind"`
	AddedAt time.Time      `json:"added_at"`
}

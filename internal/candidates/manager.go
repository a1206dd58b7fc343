package candidates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/GetFractional/Job-Hunter-sub002/internal/matching"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// ErrInvalidFeedback is returned when a feedback payload cannot be applied.
var ErrInvalidFeedback = errors.New("invalid feedback")

// Manager is the review-loop surface over a candidate store: it records
// unresolved phrases from analyses, orders them for human review, and turns
// classify feedback into dictionary extensions.
type Manager struct {
	store Store
}

// NewManager wraps a store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Record persists the candidate items from one analysis. Source is the
// posting hash the phrases came from. A canonical key is recorded at most
// once per call, so a phrase surfacing through several extraction strategies
// in the same posting counts as one occurrence.
func (m *Manager) Record(ctx context.Context, items []types.ClassifiedItem, source string) ([]types.Candidate, error) {
	var recorded []types.Candidate
	seen := make(map[string]bool)
	for _, item := range items {
		if item.Type != types.TypeCandidate {
			continue
		}
		canonical := item.Canonical
		if canonical == "" {
			canonical = matching.Canonicalize(item.Raw)
		}
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true

		stored, err := m.store.Record(ctx, types.Candidate{
			Raw:          item.Raw,
			Canonical:    canonical,
			InferredType: inferType(item.Raw),
			Confidence:   item.Confidence,
			Evidence:     item.Evidence,
			Source:       source,
		})
		if err != nil {
			return recorded, fmt.Errorf("failed to record candidate %q: %w", item.Raw, err)
		}
		recorded = append(recorded, stored)
	}
	return recorded, nil
}

// List returns every candidate in first-recorded order.
func (m *Manager) List(ctx context.Context) ([]types.Candidate, error) {
	return m.store.List(ctx)
}

// Pending returns candidates that have no feedback yet.
func (m *Manager) Pending(ctx context.Context) ([]types.Candidate, error) {
	list, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	pending := list[:0]
	for _, c := range list {
		if c.Feedback == nil {
			pending = append(pending, c)
		}
	}
	return pending, nil
}

// GroupByInferredType buckets candidates by the type they would land in if
// confirmed.
func (m *Manager) GroupByInferredType(ctx context.Context) (map[types.ItemType][]types.Candidate, error) {
	list, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	groups := make(map[types.ItemType][]types.Candidate)
	for _, c := range list {
		groups[c.InferredType] = append(groups[c.InferredType], c)
	}
	return groups, nil
}

// ByReviewPriority returns candidates sorted ascending by confidence, the
// least certain first.
func (m *Manager) ByReviewPriority(ctx context.Context) ([]types.Candidate, error) {
	list, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Confidence < list[j].Confidence
	})
	return list, nil
}

// ByFrequency returns candidates sorted descending by recurrence across
// postings.
func (m *Manager) ByFrequency(ctx context.Context) ([]types.Candidate, error) {
	list, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Frequency > list[j].Frequency
	})
	return list, nil
}

// Export writes every candidate as indented JSON.
func (m *Manager) Export(ctx context.Context, w io.Writer) error {
	list, err := m.store.List(ctx)
	if err != nil {
		return err
	}
	if list == nil {
		list = []types.Candidate{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

// Clear removes every candidate and reports the count. Confirmation is the
// caller's job.
func (m *Manager) Clear(ctx context.Context) (int64, error) {
	return m.store.Clear(ctx)
}

// ApplyFeedback records a reviewer decision. A classify action also appends
// the phrase to the dictionary extensions used by subsequent analyses; this
// is the only path that mutates the effective vocabulary.
func (m *Manager) ApplyFeedback(ctx context.Context, id uuid.UUID, feedback types.CandidateFeedback) (types.Candidate, error) {
	if err := validateFeedback(feedback); err != nil {
		return types.Candidate{}, err
	}

	candidate, err := m.store.Get(ctx, id)
	if err != nil {
		return types.Candidate{}, err
	}
	if err := m.store.SaveFeedback(ctx, id, feedback); err != nil {
		return types.Candidate{}, err
	}
	fb := feedback
	candidate.Feedback = &fb

	if feedback.Action == types.FeedbackClassify {
		kind := types.DictionarySkill
		if feedback.ClassifiedAs == types.TypeTool {
			kind = types.DictionaryTool
		}
		entry := types.DictionaryEntry{
			Term:    candidate.Raw,
			Kind:    kind,
			AddedAt: time.Now().UTC(),
		}
		if err := m.store.AddDictionaryEntry(ctx, entry); err != nil {
			return types.Candidate{}, fmt.Errorf("failed to extend dictionary: %w", err)
		}
	}
	return candidate, nil
}

// Dictionary returns the accumulated vocabulary extensions.
func (m *Manager) Dictionary(ctx context.Context) ([]types.DictionaryEntry, error) {
	return m.store.ListDictionary(ctx)
}

func validateFeedback(feedback types.CandidateFeedback) error {
	switch feedback.Action {
	case types.FeedbackAccept, types.FeedbackReject:
		return nil
	case types.FeedbackClassify:
		if feedback.ClassifiedAs != types.TypeCoreSkill && feedback.ClassifiedAs != types.TypeTool {
			return fmt.Errorf("%w: classify requires classified_as of %s or %s",
				ErrInvalidFeedback, types.TypeCoreSkill, types.TypeTool)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidFeedback, feedback.Action)
	}
}

// inferType guesses which bucket a confirmed candidate would land in.
// Capitalized single tokens and names carrying digits read like product
// names; longer phrases read like skills.
func inferType(raw string) types.ItemType {
	fields := strings.Fields(raw)
	if len(fields) == 1 {
		token := fields[0]
		for _, r := range token {
			if unicode.IsDigit(r) {
				return types.TypeTool
			}
		}
		if r, _ := utf8.DecodeRuneInString(token); unicode.IsUpper(r) {
			return types.TypeTool
		}
	}
	return types.TypeCoreSkill
}

package candidates

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// MemoryStore keeps candidates in process memory. Used for tests and
// ephemeral runs; everything is lost when the process exits.
type MemoryStore struct {
	mu          sync.RWMutex
	byCanonical map[string]types.Candidate
	order       []string
	dictionary  []types.DictionaryEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCanonical: make(map[string]types.Candidate),
	}
}

// Record upserts by canonical key.
func (s *MemoryStore) Record(_ context.Context, candidate types.Candidate) (types.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	existing, ok := s.byCanonical[candidate.Canonical]
	if !ok {
		if candidate.ID == uuid.Nil {
			candidate.ID = uuid.New()
		}
		candidate.Frequency = 1
		candidate.FirstSeen = now
		candidate.LastSeen = now
		s.byCanonical[candidate.Canonical] = candidate
		s.order = append(s.order, candidate.Canonical)
		return candidate, nil
	}

	existing.Raw = candidate.Raw
	existing.InferredType = candidate.InferredType
	existing.Confidence = candidate.Confidence
	existing.Evidence = candidate.Evidence
	existing.Frequency++
	existing.LastSeen = now
	s.byCanonical[candidate.Canonical] = existing
	return existing, nil
}

// Get returns the candidate with the given ID.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (types.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, canonical := range s.order {
		if c := s.byCanonical[canonical]; c.ID == id {
			return c, nil
		}
	}
	return types.Candidate{}, ErrNotFound
}

// List returns every candidate in first-recorded order.
func (s *MemoryStore) List(_ context.Context) ([]types.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Candidate, 0, len(s.order))
	for _, canonical := range s.order {
		out = append(out, s.byCanonical[canonical])
	}
	return out, nil
}

// SaveFeedback attaches a reviewer decision to a candidate.
func (s *MemoryStore) SaveFeedback(_ context.Context, id uuid.UUID, feedback types.CandidateFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, canonical := range s.order {
		c := s.byCanonical[canonical]
		if c.ID != id {
			continue
		}
		fb := feedback
		c.Feedback = &fb
		s.byCanonical[canonical] = c
		return nil
	}
	return ErrNotFound
}

// Clear removes every candidate. Dictionary entries survive.
func (s *MemoryStore) Clear(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := int64(len(s.order))
	s.byCanonical = make(map[string]types.Candidate)
	s.order = nil
	return removed, nil
}

// AddDictionaryEntry appends a vocabulary extension. Duplicate terms replace
// the earlier entry.
func (s *MemoryStore) AddDictionaryEntry(_ context.Context, entry types.DictionaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.dictionary {
		if existing.Term == entry.Term {
			s.dictionary[i] = entry
			return nil
		}
	}
	s.dictionary = append(s.dictionary, entry)
	return nil
}

// ListDictionary returns every dictionary extension in insertion order.
func (s *MemoryStore) ListDictionary(_ context.Context) ([]types.DictionaryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.DictionaryEntry, len(s.dictionary))
	copy(out, s.dictionary)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

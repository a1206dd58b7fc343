// Package candidates persists unresolved extraction phrases for human review
// and feeds confirmed vocabulary back into matching as dictionary extensions.
package candidates

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// ErrNotFound is returned when no candidate has the requested ID.
var ErrNotFound = errors.New("candidate not found")

// Store persists candidates and dictionary extensions across analyses.
// Updates are additive and last-write-wins; concurrent writers for the same
// canonical key are rare enough that no coordination beyond the backend's own
// is attempted.
type Store interface {
	// Record inserts the candidate or, when its canonical key is already
	// present, bumps the stored frequency and refreshes the volatile fields.
	// Returns the stored row.
	Record(ctx context.Context, candidate types.Candidate) (types.Candidate, error)
	Get(ctx context.Context, id uuid.UUID) (types.Candidate, error)
	List(ctx context.Context) ([]types.Candidate, error)
	SaveFeedback(ctx context.Context, id uuid.UUID, feedback types.CandidateFeedback) error
	// Clear removes every candidate and reports how many were removed.
	// Dictionary entries survive a clear.
	Clear(ctx context.Context) (int64, error)
	AddDictionaryEntry(ctx context.Context, entry types.DictionaryEntry) error
	ListDictionary(ctx context.Context) ([]types.DictionaryEntry, error)
	Close() error
}

// StoreConfig selects and parameterizes a backend.
type StoreConfig struct {
	// Backend is one of memory, sqlite, postgres. Empty means memory.
	Backend string `mapstructure:"backend"`
	// Path is the database file for the sqlite backend.
	Path string `mapstructure:"path"`
	// DatabaseURL is the DSN for the postgres backend.
	DatabaseURL string `mapstructure:"database_url"`
}

// Open creates the configured store.
func Open(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	case BackendPostgres:
		return NewPostgresStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown candidate store backend %q", cfg.Backend)
	}
}

package candidates

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

//go:embed schema_postgres.sql
var postgresSchema string

// PostgresStore persists candidates in PostgreSQL for hosted deployments
// where several review surfaces share one database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore establishes a connection pool and ensures the schema
// exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("postgres store requires a database URL")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// No arguments, so pgx uses the simple protocol and the multi-statement
	// DDL runs in one call.
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Record upserts by canonical key and returns the stored row.
func (s *PostgresStore) Record(ctx context.Context, candidate types.Candidate) (types.Candidate, error) {
	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	now := time.Now().UTC()

	row := s.pool.QueryRow(ctx,
		`INSERT INTO candidates (id, raw, canonical, inferred_type, confidence, evidence, source, frequency, first_seen, last_seen)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $8)
		 ON CONFLICT (canonical) DO UPDATE SET
		     raw = EXCLUDED.raw,
		     inferred_type = EXCLUDED.inferred_type,
		     confidence = EXCLUDED.confidence,
		     evidence = EXCLUDED.evidence,
		     frequency = candidates.frequency + 1,
		     last_seen = EXCLUDED.last_seen
		 RETURNING id, raw, canonical, inferred_type, confidence, evidence, source,
		           frequency, first_seen, last_seen, feedback_action, feedback_classified_as, feedback_note`,
		candidate.ID, candidate.Raw, candidate.Canonical, string(candidate.InferredType),
		candidate.Confidence, candidate.Evidence, candidate.Source, now,
	)

	stored, err := scanCandidate(row)
	if err != nil {
		return types.Candidate{}, fmt.Errorf("failed to record candidate: %w", err)
	}
	return stored, nil
}

// Get returns the candidate with the given ID.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (types.Candidate, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, raw, canonical, inferred_type, confidence, evidence, source,
		        frequency, first_seen, last_seen, feedback_action, feedback_classified_as, feedback_note
		 FROM candidates WHERE id = $1`, id)
	candidate, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Candidate{}, ErrNotFound
	}
	if err != nil {
		return types.Candidate{}, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

// List returns every candidate in first-recorded order.
func (s *PostgresStore) List(ctx context.Context) ([]types.Candidate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, raw, canonical, inferred_type, confidence, evidence, source,
		        frequency, first_seen, last_seen, feedback_action, feedback_classified_as, feedback_note
		 FROM candidates ORDER BY first_seen, canonical`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var out []types.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		out = append(out, candidate)
	}
	return out, rows.Err()
}

// SaveFeedback attaches a reviewer decision to a candidate.
func (s *PostgresStore) SaveFeedback(ctx context.Context, id uuid.UUID, feedback types.CandidateFeedback) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE candidates
		 SET feedback_action = $1, feedback_classified_as = $2, feedback_note = $3
		 WHERE id = $4`,
		string(feedback.Action), string(feedback.ClassifiedAs), feedback.Note, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every candidate. Dictionary entries survive.
func (s *PostgresStore) Clear(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM candidates`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear candidates: %w", err)
	}
	return tag.RowsAffected(), nil
}

// AddDictionaryEntry upserts a vocabulary extension by term.
func (s *PostgresStore) AddDictionaryEntry(ctx context.Context, entry types.DictionaryEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO dictionary_entries (term, kind, added_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (term) DO UPDATE SET kind = EXCLUDED.kind, added_at = EXCLUDED.added_at`,
		entry.Term, string(entry.Kind), entry.AddedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to add dictionary entry: %w", err)
	}
	return nil
}

// ListDictionary returns every dictionary extension, oldest first.
func (s *PostgresStore) ListDictionary(ctx context.Context) ([]types.DictionaryEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT term, kind, added_at FROM dictionary_entries ORDER BY added_at, term`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dictionary: %w", err)
	}
	defer rows.Close()

	var out []types.DictionaryEntry
	for rows.Next() {
		var entry types.DictionaryEntry
		var kind string
		if err := rows.Scan(&entry.Term, &kind, &entry.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dictionary entry: %w", err)
		}
		entry.Kind = types.DictionaryKind(kind)
		out = append(out, entry)
	}
	return out, rows.Err()
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

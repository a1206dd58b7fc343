package candidates

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

//go:embed schema.sql
var sqliteSchema string

// SQLiteStore persists candidates in a local SQLite file. Default backend for
// CLI use: no server to run, survives across invocations.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and ensures
// the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite store requires a database path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record upserts by canonical key and returns the stored row.
func (s *SQLiteStore) Record(ctx context.Context, candidate types.Candidate) (types.Candidate, error) {
	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO candidates (id, raw, canonical, inferred_type, confidence, evidence, source, frequency, first_seen, last_seen)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
		 ON CONFLICT(canonical) DO UPDATE SET
		     raw = excluded.raw,
		     inferred_type = excluded.inferred_type,
		     confidence = excluded.confidence,
		     evidence = excluded.evidence,
		     frequency = frequency + 1,
		     last_seen = excluded.last_seen`,
		candidate.ID.String(), candidate.Raw, candidate.Canonical, string(candidate.InferredType),
		candidate.Confidence, candidate.Evidence, candidate.Source, now, now,
	)
	if err != nil {
		return types.Candidate{}, fmt.Errorf("failed to record candidate: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		selectColumns+` FROM candidates WHERE canonical = ?`, candidate.Canonical)
	stored, err := scanCandidate(row)
	if err != nil {
		return types.Candidate{}, fmt.Errorf("failed to read back candidate: %w", err)
	}
	return stored, nil
}

// Get returns the candidate with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (types.Candidate, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+` FROM candidates WHERE id = ?`, id.String())
	candidate, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Candidate{}, ErrNotFound
	}
	if err != nil {
		return types.Candidate{}, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

// List returns every candidate in first-recorded order.
func (s *SQLiteStore) List(ctx context.Context) ([]types.Candidate, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` FROM candidates ORDER BY first_seen, canonical`)
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
func (s *SQLiteStore) SaveFeedback(ctx context.Context, id uuid.UUID, feedback types.CandidateFeedback) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE candidates
		 SET feedback_action = ?, feedback_classified_as = ?, feedback_note = ?
		 WHERE id = ?`,
		string(feedback.Action), string(feedback.ClassifiedAs), feedback.Note, id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every candidate. Dictionary entries survive.
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM candidates`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear candidates: %w", err)
	}
	return res.RowsAffected()
}

// AddDictionaryEntry upserts a vocabulary extension by term.
func (s *SQLiteStore) AddDictionaryEntry(ctx context.Context, entry types.DictionaryEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dictionary_entries (term, kind, added_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(term) DO UPDATE SET kind = excluded.kind, added_at = excluded.added_at`,
		entry.Term, string(entry.Kind), entry.AddedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to add dictionary entry: %w", err)
	}
	return nil
}

// ListDictionary returns every dictionary extension, oldest first.
func (s *SQLiteStore) ListDictionary(ctx context.Context) ([]types.DictionaryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
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

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectColumns = `SELECT id, raw, canonical, inferred_type, confidence, evidence, source,
       frequency, first_seen, last_seen, feedback_action, feedback_classified_as, feedback_note`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner) (types.Candidate, error) {
	var (
		c          types.Candidate
		idText     string
		typeText   string
		action     sql.NullString
		classified sql.NullString
		note       sql.NullString
	)

	err := row.Scan(&idText, &c.Raw, &c.Canonical, &typeText, &c.Confidence, &c.Evidence,
		&c.Source, &c.Frequency, &c.FirstSeen, &c.LastSeen, &action, &classified, &note)
	if err != nil {
		return types.Candidate{}, err
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return types.Candidate{}, fmt.Errorf("malformed candidate id %q: %w", idText, err)
	}
	c.ID = id
	c.InferredType = types.ItemType(typeText)

	if action.Valid && action.String != "" {
		c.Feedback = &types.CandidateFeedback{
			Action:       types.FeedbackAction(action.String),
			ClassifiedAs: types.ItemType(classified.String),
			Note:         note.String,
		}
	}
	return c, nil
}

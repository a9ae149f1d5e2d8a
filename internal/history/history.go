// Package history is a sqlite-backed audit log of automata submitted for
// conversion and the results produced for them. It is explicitly not a
// way to persist and later reload a converted automaton in the bespoke
// input format (that remains out of scope); it only records that a
// conversion happened, when, and what its outputs were, grounded on the
// teacher's database/sql + modernc.org/sqlite wiring.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when no record exists for the given ID.
var ErrNotFound = errors.New("no history record with that id")

// Record is one conversion job: the job's ID, the variant and size of
// the input automaton, when it was submitted, and the DOT/regex outputs
// once the conversion finished (empty until then).
type Record struct {
	ID          uuid.UUID
	InputKind   string // "dfa", "nfa", "enfa"
	StateCount  int
	SubmittedAt time.Time
	DOT         string
	Regex       string
}

// Store is the conversion history's backing database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite file at path and ensures
// its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapDBError(err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS conversions (
		id TEXT NOT NULL PRIMARY KEY,
		input_kind TEXT NOT NULL,
		state_count INTEGER NOT NULL,
		submitted_at INTEGER NOT NULL,
		dot TEXT NOT NULL DEFAULT '',
		regex TEXT NOT NULL DEFAULT ''
	);`
	_, err := s.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a new conversion job and returns the generated record,
// including a freshly-assigned ID and submission timestamp.
func (s *Store) Record(ctx context.Context, inputKind string, stateCount int) (Record, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Record{}, fmt.Errorf("generate id: %w", err)
	}
	now := time.Now()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, input_kind, state_count, submitted_at) VALUES (?, ?, ?, ?)`,
		id.String(), inputKind, stateCount, now.Unix(),
	)
	if err != nil {
		return Record{}, wrapDBError(err)
	}

	return Record{
		ID:          id,
		InputKind:   inputKind,
		StateCount:  stateCount,
		SubmittedAt: now,
	}, nil
}

// SetOutputs fills in the DOT and regex output of an already-recorded
// conversion.
func (s *Store) SetOutputs(ctx context.Context, id uuid.UUID, dot, regex string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE conversions SET dot = ?, regex = ? WHERE id = ?`, dot, regex, id.String())
	if err != nil {
		return wrapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err)
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}

// Get retrieves a conversion record by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT input_kind, state_count, submitted_at, dot, regex FROM conversions WHERE id = ?`,
		id.String(),
	)

	rec := Record{ID: id}
	var submitted int64
	if err := row.Scan(&rec.InputKind, &rec.StateCount, &submitted, &rec.DOT, &rec.Regex); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, wrapDBError(err)
	}
	rec.SubmittedAt = time.Unix(submitted, 0)
	return rec, nil
}

// List returns every recorded conversion, most recently submitted
// first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_kind, state_count, submitted_at, dot, regex FROM conversions ORDER BY submitted_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []Record
	for rows.Next() {
		var rec Record
		var idStr string
		var submitted int64
		if err := rows.Scan(&idStr, &rec.InputKind, &rec.StateCount, &submitted, &rec.DOT, &rec.Regex); err != nil {
			return nil, wrapDBError(err)
		}
		rec.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("stored id %q is invalid: %w", idStr, err)
		}
		rec.SubmittedAt = time.Unix(submitted, 0)
		all = append(all, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}
	return all, nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlitelib.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return fmt.Errorf("constraint violation: %w", err)
		}
		return fmt.Errorf("%s", sqlitelib.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

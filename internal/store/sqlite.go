// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/thought-engine/pkg/types"
)

// SQLite is a Store backed by a SQLite database file, so thoughts survive
// across CLI invocations. The seq column records insertion order and
// breaks CreatedAt ties in List.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates the database at path and ensures the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS thoughts (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		raw_text TEXT NOT NULL,
		mode_selected TEXT NOT NULL,
		created_at TEXT NOT NULL,
		expanded_text TEXT NOT NULL DEFAULT '',
		voice_url TEXT NOT NULL DEFAULT '',
		value_meter TEXT NOT NULL DEFAULT ''
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Create implements Store.
func (s *SQLite) Create(rawText string, mode types.ExpansionMode) (types.Thought, error) {
	return s.createAt(rawText, mode, now())
}

func (s *SQLite) createAt(rawText string, mode types.ExpansionMode, ts time.Time) (types.Thought, error) {
	t := types.Thought{
		ID:           newID(),
		RawText:      rawText,
		ModeSelected: mode,
		CreatedAt:    ts,
	}
	_, err := s.db.Exec(
		`INSERT INTO thoughts (id, raw_text, mode_selected, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.RawText, string(t.ModeSelected), t.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.Thought{}, fmt.Errorf("inserting thought: %w", err)
	}
	return t, nil
}

// thoughtColumns is the column order scanRow expects.
var thoughtColumns = []string{"id", "raw_text", "mode_selected", "created_at", "expanded_text", "voice_url", "value_meter"}

// Get implements Store.
func (s *SQLite) Get(id string) (types.Thought, error) {
	query, args, err := sq.Select(thoughtColumns...).
		From("thoughts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return types.Thought{}, fmt.Errorf("building query: %w", err)
	}

	t, err := scanRow(s.db.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Thought{}, ErrNotFound
	}
	if err != nil {
		return types.Thought{}, fmt.Errorf("querying thought %s: %w", id, err)
	}
	return t, nil
}

// Update implements Store. The merge runs in one UPDATE so it is atomic.
func (s *SQLite) Update(id string, upd types.ThoughtUpdate) (types.Thought, error) {
	b := sq.Update("thoughts").Where(sq.Eq{"id": id})
	touched := false
	if upd.ExpandedText != nil {
		b = b.Set("expanded_text", *upd.ExpandedText)
		touched = true
	}
	if upd.VoiceURL != nil {
		b = b.Set("voice_url", *upd.VoiceURL)
		touched = true
	}
	if upd.ValueMeter != nil {
		b = b.Set("value_meter", string(*upd.ValueMeter))
		touched = true
	}

	if touched {
		query, args, err := b.ToSql()
		if err != nil {
			return types.Thought{}, fmt.Errorf("building update: %w", err)
		}
		res, err := s.db.Exec(query, args...)
		if err != nil {
			return types.Thought{}, fmt.Errorf("updating thought %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return types.Thought{}, ErrNotFound
		}
	}

	return s.Get(id)
}

// List implements Store.
func (s *SQLite) List() ([]types.Thought, error) {
	query, args, err := sq.Select(thoughtColumns...).
		From("thoughts").
		OrderBy("created_at DESC", "seq DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing thoughts: %w", err)
	}
	defer rows.Close()

	var out []types.Thought
	for rows.Next() {
		t, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning thought: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Reset implements Store.
func (s *SQLite) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM thoughts`); err != nil {
		return fmt.Errorf("clearing thoughts: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(r rowScanner) (types.Thought, error) {
	var t types.Thought
	var mode, created, meter string
	if err := r.Scan(&t.ID, &t.RawText, &mode, &created, &t.ExpandedText, &t.VoiceURL, &meter); err != nil {
		return types.Thought{}, err
	}
	t.ModeSelected = types.ExpansionMode(mode)
	t.ValueMeter = types.ValueMeter(meter)

	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return types.Thought{}, fmt.Errorf("parsing created_at %q: %w", created, err)
	}
	t.CreatedAt = ts
	return t, nil
}

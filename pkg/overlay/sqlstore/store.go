// Package sqlstore persists overlays in a SQLite database so editorial copy
// can be managed outside the source tree. Each calculator id is one row
// holding the overlay as a JSON document.
package sqlstore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-calckit/pkg/overlay"
)

//go:embed schema.sql
var schemaSQL string

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("sqlstore: store is closed")

// Store wraps the overlay database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the database at path and applies the schema. The
// call is idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: connect %s: %w", path, err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("sqlstore: %q: %w", pragma, err)
		}
	}
	return nil
}

// Save upserts every overlay in src. Rows for ids not present in src are kept
// unless replace is true, in which case the table mirrors src exactly.
func (s *Store) Save(ctx context.Context, src *overlay.Store, replace bool) (err error) {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlstore: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if replace {
		if _, err = tx.ExecContext(ctx, `DELETE FROM overlays`); err != nil {
			return fmt.Errorf("sqlstore: clear: %w", err)
		}
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	for position, ov := range src.All() {
		doc, mErr := json.Marshal(ov)
		if mErr != nil {
			return fmt.Errorf("sqlstore: encode %s: %w", ov.ID, mErr)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO overlays (id, position, source, doc, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				position = excluded.position,
				source = excluded.source,
				doc = excluded.doc,
				updated_at = excluded.updated_at`,
			ov.ID, position, ov.Source, string(doc), stamp)
		if err != nil {
			return fmt.Errorf("sqlstore: save %s: %w", ov.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlstore: commit: %w", err)
	}
	return nil
}

// Load reads every row back into an overlay store, in saved order.
func (s *Store) Load(ctx context.Context) (*overlay.Store, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, source, doc FROM overlays ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: query: %w", err)
	}
	defer rows.Close()

	out := overlay.NewStore()
	for rows.Next() {
		var (
			ov  overlay.Overlay
			doc string
		)
		if err := rows.Scan(&ov.ID, &ov.Source, &doc); err != nil {
			return nil, fmt.Errorf("sqlstore: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(doc), &ov); err != nil {
			return nil, fmt.Errorf("sqlstore: decode %s: %w", ov.ID, err)
		}
		if err := out.Add(ov); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: rows: %w", err)
	}
	return out, nil
}

// Delete removes the overlay for id. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM overlays WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlstore: delete %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored overlays.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM overlays`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlstore: count: %w", err)
	}
	return n, nil
}

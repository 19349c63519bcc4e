// Package journal keeps an audit trail of write-back results in SQLite.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agentic-research/spyglass/internal/writeback"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS edits (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	session   TEXT NOT NULL,
	at        TEXT NOT NULL,
	widget    TEXT NOT NULL,
	object    TEXT NOT NULL,
	component TEXT NOT NULL,
	path      TEXT NOT NULL,
	requested REAL NOT NULL,
	old_value REAL NOT NULL,
	new_value REAL NOT NULL,
	ok        INTEGER NOT NULL,
	error     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS edits_session ON edits(session);
`

// Entry is one recorded write.
type Entry struct {
	ID        int64
	Session   string
	At        time.Time
	Widget    string
	Object    string
	Component string
	Path      string
	Requested float64
	Before    float64
	After     float64
	OK        bool
	Error     string
}

// Journal appends results tagged with a per-process session ID.
type Journal struct {
	db      *sql.DB
	session uuid.UUID
}

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	// One writer; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &Journal{db: db, session: uuid.New()}, nil
}

// Session identifies this process's entries.
func (j *Journal) Session() uuid.UUID { return j.session }

// Record stores results in one transaction.
func (j *Journal) Record(ctx context.Context, at time.Time, results []writeback.Result) error {
	if len(results) == 0 {
		return nil
	}
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO edits
		(session, at, widget, object, component, path, requested, old_value, new_value, ok, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare journal insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	stamp := at.UTC().Format(time.RFC3339Nano)
	for _, r := range results {
		loc := r.Change.Locator
		var msg string
		if r.Err != nil {
			msg = r.Err.Error()
		}
		if _, err := stmt.ExecContext(ctx,
			j.session.String(), stamp, r.Change.Widget,
			loc.Object.String(), string(loc.Component), loc.Steps.String(),
			r.Change.Value, r.Before, r.After, r.Err == nil, msg,
		); err != nil {
			return fmt.Errorf("insert journal entry: %w", err)
		}
	}
	return tx.Commit()
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx, `SELECT id, session, at, widget, object, component, path,
		requested, old_value, new_value, ok, error FROM edits ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &e.Session, &at, &e.Widget, &e.Object, &e.Component, &e.Path,
			&e.Requested, &e.Before, &e.After, &e.OK, &e.Error); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parse journal time %q: %w", at, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database.
func (j *Journal) Close() error { return j.db.Close() }

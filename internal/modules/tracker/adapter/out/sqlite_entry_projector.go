package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ridelog/internal/modules/tracker/domain"
	trackerout "ridelog/internal/modules/tracker/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type SQLiteEntryProjector struct {
	db *sql.DB
}

func NewSQLiteEntryProjector(dbPath string) (trackerout.EntryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteEntryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteEntryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS entries (
  session_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  activity TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT,
  PRIMARY KEY (session_id, position)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	return nil
}

// Replace swaps the projection for the given session's entries in one
// transaction, so readers never observe a half-written log.
func (s *SQLiteEntryProjector) Replace(ctx context.Context, session domain.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	const stmt = `INSERT INTO entries (session_id, position, activity, started_at, ended_at) VALUES (?, ?, ?, ?, ?)`
	for i, entry := range session.Entries {
		var endedAt any
		if entry.EndedAt != nil {
			endedAt = entry.EndedAt.Format(timeLayout)
		}
		if _, err := tx.ExecContext(ctx, stmt, session.ID, i, string(entry.Activity), entry.StartedAt.Format(timeLayout), endedAt); err != nil {
			return fmt.Errorf("insert entry %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (s *SQLiteEntryProjector) List(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT activity, started_at, ended_at FROM entries ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.Entry
	for rows.Next() {
		var activity, startedAt string
		var endedAt sql.NullString
		if err := rows.Scan(&activity, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry := domain.Entry{Activity: domain.Activity(activity)}
		entry.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if endedAt.Valid {
			ended, err := time.Parse(timeLayout, endedAt.String)
			if err != nil {
				return nil, fmt.Errorf("parse ended_at: %w", err)
			}
			entry.EndedAt = &ended
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteEntryProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("reset entries: %w", err)
	}
	return nil
}

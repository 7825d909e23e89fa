package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JonMunkholm/MedQA/internal/core"
	_ "modernc.org/sqlite" // driver: sqlite
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS edit_journal (
  id           TEXT PRIMARY KEY,
  session_id   TEXT NOT NULL,
  action       TEXT NOT NULL,
  severity     TEXT NOT NULL,
  file_name    TEXT NOT NULL DEFAULT '',
  record_index INTEGER NOT NULL DEFAULT -1,
  field        TEXT NOT NULL DEFAULT '',
  old_value    TEXT NOT NULL DEFAULT '',
  new_value    TEXT NOT NULL DEFAULT '',
  ip_address   TEXT NOT NULL DEFAULT '',
  user_agent   TEXT NOT NULL DEFAULT '',
  created_at   INTEGER NOT NULL -- unix nanoseconds
);

CREATE INDEX IF NOT EXISTS edit_journal_session_idx ON edit_journal (session_id, created_at);
CREATE INDEX IF NOT EXISTS edit_journal_created_idx ON edit_journal (created_at);
`

// DefaultSQLiteDSN is used when no DSN is configured.
const DefaultSQLiteDSN = "file:medqa_journal.db?mode=rwc"

// SQLiteStore keeps the edit journal in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database, applies pragmas and ensures the journal table.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	// Single writer: keep the pool tiny to avoid busy errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	if err := applySQLitePragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure journal schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func applySQLitePragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InsertAudit appends one journal entry.
func (s *SQLiteStore) InsertAudit(ctx context.Context, e core.AuditEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO edit_journal
			(id, session_id, action, severity, file_name, record_index,
			 field, old_value, new_value, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, string(e.Action), string(e.Severity), e.FileName, e.RecordIndex,
		e.Field, e.OldValue, e.NewValue, e.IPAddress, e.UserAgent, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// ListAudit returns a session's entries, newest first.
// A limit of zero or less returns every entry.
func (s *SQLiteStore) ListAudit(ctx context.Context, sessionID string, limit int) ([]core.AuditEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, action, severity, file_name, record_index,
		       field, old_value, new_value, ip_address, user_agent, created_at
		FROM edit_journal
		WHERE session_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	entries := []core.AuditEntry{}
	for rows.Next() {
		var (
			e         core.AuditEntry
			action    string
			severity  string
			createdAt int64
		)
		err := rows.Scan(&e.ID, &e.SessionID, &action, &severity, &e.FileName, &e.RecordIndex,
			&e.Field, &e.OldValue, &e.NewValue, &e.IPAddress, &e.UserAgent, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Action = core.AuditAction(action)
		e.Severity = core.AuditSeverity(severity)
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PurgeAudit deletes entries created before the cutoff.
func (s *SQLiteStore) PurgeAudit(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM edit_journal WHERE created_at < ?`, before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("purge journal: %w", err)
	}
	return res.RowsAffected()
}

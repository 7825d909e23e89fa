package database

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/JonMunkholm/MedQA/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS edit_journal (
  id           UUID PRIMARY KEY,
  session_id   TEXT NOT NULL,
  action       TEXT NOT NULL,
  severity     TEXT NOT NULL,
  file_name    TEXT,
  record_index INTEGER NOT NULL DEFAULT -1,
  field        TEXT,
  old_value    TEXT,
  new_value    TEXT,
  ip_address   INET,
  user_agent   TEXT,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS edit_journal_session_idx ON edit_journal (session_id, created_at DESC);
CREATE INDEX IF NOT EXISTS edit_journal_created_idx ON edit_journal (created_at);
`

// PostgresStore keeps the edit journal in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool, verifies it and ensures the journal table.
func OpenPostgres(ctx context.Context, dsn string, maxConns, minConns int) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse journal DSN: %w", err)
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = int32(minConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect journal: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure journal schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

// InsertAudit appends one journal entry.
func (p *PostgresStore) InsertAudit(ctx context.Context, e core.AuditEntry) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO edit_journal
			(id, session_id, action, severity, file_name, record_index,
			 field, old_value, new_value, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		toPgUUID(e.ID), e.SessionID, string(e.Action), string(e.Severity),
		toPgText(e.FileName), e.RecordIndex,
		toPgText(e.Field), toPgText(e.OldValue), toPgText(e.NewValue),
		parseClientIP(e.IPAddress), toPgText(e.UserAgent),
		pgtype.Timestamptz{Time: e.CreatedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// ListAudit returns a session's entries, newest first.
// A limit of zero or less returns every entry.
func (p *PostgresStore) ListAudit(ctx context.Context, sessionID string, limit int) ([]core.AuditEntry, error) {
	query := `
		SELECT id, session_id, action, severity, file_name, record_index,
		       field, old_value, new_value, ip_address, user_agent, created_at
		FROM edit_journal
		WHERE session_id = $1
		ORDER BY created_at DESC`
	args := []any{sessionID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	entries := []core.AuditEntry{}
	for rows.Next() {
		e, err := scanPostgresEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PurgeAudit deletes entries created before the cutoff.
func (p *PostgresStore) PurgeAudit(ctx context.Context, before time.Time) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM edit_journal WHERE created_at < $1`,
		pgtype.Timestamptz{Time: before, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("purge journal: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPostgresEntry(rows pgx.Rows) (core.AuditEntry, error) {
	var (
		id          pgtype.UUID
		sessionID   string
		action      string
		severity    string
		fileName    pgtype.Text
		recordIndex int32
		field       pgtype.Text
		oldValue    pgtype.Text
		newValue    pgtype.Text
		ipAddress   *netip.Addr
		userAgent   pgtype.Text
		createdAt   pgtype.Timestamptz
	)
	err := rows.Scan(
		&id, &sessionID, &action, &severity, &fileName, &recordIndex,
		&field, &oldValue, &newValue, &ipAddress, &userAgent, &createdAt,
	)
	if err != nil {
		return core.AuditEntry{}, err
	}

	e := core.AuditEntry{
		ID:          pgUUIDToString(id),
		SessionID:   sessionID,
		Action:      core.AuditAction(action),
		Severity:    core.AuditSeverity(severity),
		FileName:    fileName.String,
		RecordIndex: int(recordIndex),
		Field:       field.String,
		OldValue:    oldValue.String,
		NewValue:    newValue.String,
		UserAgent:   userAgent.String,
		CreatedAt:   createdAt.Time.UTC(),
	}
	if ipAddress != nil {
		e.IPAddress = ipAddress.String()
	}
	return e, nil
}

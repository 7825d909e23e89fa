// Package database provides the edit journal backends: PostgreSQL via
// pgxpool and a local SQLite file via modernc.org/sqlite.
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/MedQA/internal/config"
	"github.com/JonMunkholm/MedQA/internal/core"
)

// Store is a journal backend that holds resources.
type Store interface {
	core.AuditStore
	Close() error
}

// Open returns the journal backend selected by cfg.Driver.
// The "none" driver returns a nil Store, which disables journaling.
func Open(ctx context.Context, cfg config.AuditConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", config.AuditDriverNone:
		return nil, nil
	case config.AuditDriverSQLite:
		store, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.AuditDriverPostgres:
		store, err := OpenPostgres(ctx, cfg.DSN, cfg.MaxConns, cfg.MinConns)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported journal driver: %s", cfg.Driver)
	}
}

package core

// scheduler.go runs periodic maintenance:
//  1. Reap review sessions idle for longer than SessionConfig.IdleTimeout
//  2. Purge journal entries older than the retention window
//
// Failures are logged; the loop keeps running until its context is cancelled.

import (
	"context"
	"log/slog"
	"time"
)

// MaintenanceConfig controls the maintenance loop.
type MaintenanceConfig struct {
	Interval           time.Duration // How often to run (default: 5m)
	AuditRetentionDays int           // Journal retention; 0 keeps entries forever
}

// StartMaintenance runs one maintenance pass immediately and then every
// Interval until ctx is cancelled. Call it in its own goroutine.
func (s *Service) StartMaintenance(ctx context.Context, cfg MaintenanceConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}

	slog.Info("maintenance started",
		"interval", cfg.Interval,
		"idle_timeout", s.cfg.IdleTimeout,
		"audit_retention_days", cfg.AuditRetentionDays,
	)

	s.runMaintenance(ctx, cfg)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("maintenance stopped")
			return
		case <-ticker.C:
			s.runMaintenance(ctx, cfg)
		}
	}
}

// runMaintenance performs one reap + purge cycle.
func (s *Service) runMaintenance(ctx context.Context, cfg MaintenanceConfig) {
	start := time.Now()

	if reaped := s.reapIdle(ctx, s.now().Add(-s.cfg.IdleTimeout)); reaped > 0 {
		slog.Info("reaped idle sessions", "sessions_reaped", reaped, "sessions_live", s.SessionCount())
	}

	if s.audit != nil && cfg.AuditRetentionDays > 0 {
		cutoff := s.now().AddDate(0, 0, -cfg.AuditRetentionDays)
		purged, err := s.audit.PurgeAudit(ctx, cutoff)
		if err != nil {
			slog.Error("journal purge failed", "error", err)
		} else if purged > 0 {
			slog.Info("purged journal entries", "entries_purged", purged)
		}
	}

	slog.Debug("maintenance pass completed", "duration_ms", time.Since(start).Milliseconds())
}

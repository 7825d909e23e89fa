package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/MedQA/internal/config"
	"github.com/JonMunkholm/MedQA/internal/core"
	"github.com/JonMunkholm/MedQA/internal/database"
	"github.com/JonMunkholm/MedQA/internal/logging"
	"github.com/JonMunkholm/MedQA/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"audit_driver", cfg.Audit.Driver,
		"max_sessions", cfg.Session.MaxSessions,
		"upload_max_bytes", cfg.Upload.MaxFileSize,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Open the edit journal; nil when AUDIT_DRIVER=none
	ctx := context.Background()
	store, err := database.Open(ctx, cfg.Audit)
	if err != nil {
		slog.Error("failed to open edit journal", "driver", cfg.Audit.Driver, "error", err)
		os.Exit(1)
	}

	var audit core.AuditStore
	if store != nil {
		defer store.Close()
		audit = store
		slog.Info("edit journal enabled", "driver", cfg.Audit.Driver)
	} else {
		slog.Info("edit journal disabled")
	}

	service := core.NewService(audit, core.SessionConfig{
		IdleTimeout:        cfg.Session.IdleTimeout,
		MaxSessions:        cfg.Session.MaxSessions,
		MaxConcurrentLoads: cfg.Upload.MaxConcurrent,
		LoadWait:           cfg.Upload.MaxWait,
	})

	server := web.NewServer(service, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	go service.StartMaintenance(jobCtx, core.MaintenanceConfig{
		Interval:           cfg.Session.ReapInterval,
		AuditRetentionDays: cfg.Audit.RetentionDays,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...", "open_sessions", service.SessionCount())

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for uploads being parsed (with timeout)
		if status := service.LoadStatus(); status.Active > 0 {
			slog.Info("waiting for uploads to complete", "active", status.Active)
			if err := service.WaitForLoads(shutdownCtx); err != nil {
				slog.Warn("uploads did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"truckfin-backend/internal/audit"
	"truckfin-backend/internal/config"
	"truckfin-backend/internal/database"
	"truckfin-backend/internal/logging"
	"truckfin-backend/internal/metrics"
	"truckfin-backend/internal/server"
	"truckfin-backend/internal/state"
	"truckfin-backend/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg)
	if err != nil {
		slog.Error("database", "error", err)
		os.Exit(1)
	}

	st := store.New(db)
	svc := state.New(st)
	auditSvc := audit.NewService(st)
	svc.Subscribe(auditSvc.Record)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
		svc.Subscribe(m.ObserveEvent)
	}

	app := server.New(server.Deps{
		Config:  cfg,
		Store:   st,
		State:   svc,
		Audit:   auditSvc,
		Metrics: m,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	slog.Info("server starting", "port", cfg.HTTPPort, "db_driver", cfg.DBDriver, "metrics", cfg.MetricsEnabled)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		slog.Error("server", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/adapters/logger"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/adapters/memory"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/adapters/otel"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/adapters/turso"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/config"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/ports"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/tracker"
)

// App bundles the wired service with the resources that need closing.
type App struct {
	Service  *tracker.Service
	Log      ports.Logger
	exporter ports.MetricsExporter
	db       *sql.DB
}

// newApp builds the full dependency graph from the environment: libsql
// storage when a database URL is configured (in-memory otherwise), the file
// logger, and the OTEL exporter when enabled.
func newApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	trackerCfg, err := cfg.Tracker()
	if err != nil {
		return nil, err
	}

	log := logger.NewFileLogger(cfg.LogDir)

	app := &App{Log: log}

	var store ports.Storage
	if cfg.DatabaseURL != "" {
		db, err := turso.NewDB(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.db = db
		store, err = turso.NewStorage(db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	} else {
		log.Debug("no database URL configured, using in-memory storage")
		store = memory.NewStorage()
	}

	var exporter ports.MetricsExporter
	if otelCfg := otel.LoadConfig(); otelCfg.Enabled {
		exporter, err = otel.NewExporter(ctx, otelCfg)
		if err != nil {
			log.Error(fmt.Sprintf("failed to initialize OTEL exporter: %v", err))
			exporter = otel.NewNoOpExporter()
		}
	} else {
		exporter = otel.NewNoOpExporter()
	}
	app.exporter = exporter

	app.Service = tracker.NewService(store, log, exporter, trackerCfg)
	return app, nil
}

// Close releases the database connection and flushes the exporter.
func (a *App) Close(ctx context.Context) {
	if a.exporter != nil {
		if err := a.exporter.Close(ctx); err != nil {
			a.Log.Error(fmt.Sprintf("failed to close exporter: %v", err))
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cake-api/internal/config"
	"github.com/phrazzld/cake-api/internal/platform/cache"
	"github.com/phrazzld/cake-api/internal/platform/memory"
	"github.com/phrazzld/cake-api/internal/platform/migrations"
	"github.com/phrazzld/cake-api/internal/platform/postgres"
	"github.com/phrazzld/cake-api/internal/platform/sqlite"
	"github.com/phrazzld/cake-api/internal/service"
	"github.com/phrazzld/cake-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the memory driver.
	db *sql.DB
	// redis is nil when caching is disabled.
	redis *redis.Client

	cakeStore   store.CakeStore
	cakeService service.CakeService

	// registry holds the collectors owned by this application instance.
	registry *prometheus.Registry
}

// newApplication creates a new application instance with all dependencies initialized.
// On failure every resource opened so far is released.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *application, err error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			app.cleanup()
		}
	}()

	app.cakeStore, err = app.setupCakeStore(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.Cache.Enabled() {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		cached := cache.NewCakeStore(app.cakeStore, app.redis, cfg.Cache.TTL, logger)
		if pingErr := cached.Ping(ctx); pingErr != nil {
			// The cache degrades to the backing store, so an unreachable
			// Redis is not fatal at startup.
			logger.Warn("Redis unavailable at startup", "addr", cfg.Cache.RedisAddr, "error", pingErr)
		}
		app.cakeStore = cached
		logger.Info("Cake cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	app.cakeService, err = service.NewCakeService(app.cakeStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cake service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupCakeStore builds the backing store for the configured driver,
// applying migrations first when auto_migrate is set.
func (app *application) setupCakeStore(ctx context.Context) (store.CakeStore, error) {
	cfg := app.config.Database
	if cfg.Driver == "memory" {
		return memory.NewCakeStore(app.logger), nil
	}

	db, dialect, err := setupAppDatabase(ctx, cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	if cfg.AutoMigrate {
		if err := migrations.Up(ctx, db, dialect, app.logger); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	switch cfg.Driver {
	case "postgres":
		return postgres.NewPostgresCakeStore(db, app.logger), nil
	default:
		return sqlite.NewCakeStore(db, app.logger), nil
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

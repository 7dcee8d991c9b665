package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/cake-api/internal/config"
	"github.com/phrazzld/cake-api/internal/platform/migrations"
	"github.com/phrazzld/cake-api/internal/platform/sqlite"
)

// errNoDatabase is returned when a SQL-only operation runs against the memory driver.
var errNoDatabase = errors.New("database driver memory has no SQL database")

// sqlDriver returns the database/sql driver name and goose dialect for the
// configured backend.
func sqlDriver(driver string) (string, string, error) {
	switch driver {
	case "postgres":
		return "pgx", migrations.DialectPostgres, nil
	case "sqlite":
		return sqlite.DriverName, migrations.DialectSQLite, nil
	case "memory":
		return "", "", errNoDatabase
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// setupAppDatabase establishes a connection to the database and configures connection pools.
// Returns the database connection if successful, or an error if the connection fails.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, string, error) {
	driverName, dialect, err := sqlDriver(cfg.Driver)
	if err != nil {
		return nil, "", err
	}

	dsn := cfg.URL
	if cfg.Driver == "sqlite" {
		dsn = sqlite.ConfigureDSN(dsn)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established", "driver", cfg.Driver)
	return db, dialect, nil
}

// migrateDatabase runs a single migration command against the configured database.
func migrateDatabase(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	db, dialect, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	return migrations.Run(ctx, db, dialect, command, logger)
}

// Package migrations embeds the cake schema migrations and applies them
// with goose. Each SQL backend has its own directory of migration files.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// Dialects understood by Run. They match the goose dialect names.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// TableName is the goose bookkeeping table.
const TableName = "schema_migrations"

// Commands accepted by Run.
var Commands = []string{"up", "down", "reset", "status", "version"}

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var files embed.FS

var dirs = map[string]string{
	DialectPostgres: "sql/postgres",
	DialectSQLite:   "sql/sqlite",
}

// goose keeps its dialect, base FS and logger in package globals.
var gooseMu sync.Mutex

// Run executes a goose command against db for the given dialect.
// The logger receives both the goose output and a summary of the run.
func Run(ctx context.Context, db *sql.DB, dialect, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	dir, ok := dirs[dialect]
	if !ok {
		return fmt.Errorf("unsupported migration dialect: %s", dialect)
	}

	log := logger.With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("dialect", dialect),
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(files)
	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetTableName(TableName)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	start := time.Now()
	log.Info("starting migration command")

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, dir)
	case "down":
		err = goose.DownContext(ctx, db, dir)
	case "reset":
		err = goose.ResetContext(ctx, db, dir)
	case "status":
		err = goose.StatusContext(ctx, db, dir)
	case "version":
		err = goose.VersionContext(ctx, db, dir)
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected one of %v)",
			command,
			Commands,
		)
	}

	if err != nil {
		log.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("migration command executed successfully",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// Up applies every pending migration. It is what the server runs on start
// when auto-migration is enabled.
func Up(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) error {
	return Run(ctx, db, dialect, "up", logger)
}

// CurrentVersion reports the latest applied migration version, creating the
// bookkeeping table if it does not exist yet.
func CurrentVersion(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	if _, ok := dirs[dialect]; !ok {
		return 0, fmt.Errorf("unsupported migration dialect: %s", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetTableName(TableName)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, db)
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress output at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level without exiting, so the returned error reaches
// the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

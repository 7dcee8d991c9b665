// Package sqlite provides an SQLite implementation of store.CakeStore on top
// of the pure Go modernc.org/sqlite driver, registered as "sqlite".
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/cake-api/internal/domain"
	"github.com/phrazzld/cake-api/internal/platform/logger"
	"github.com/phrazzld/cake-api/internal/redact"
	"github.com/phrazzld/cake-api/internal/store"
)

// DriverName is the database/sql driver name registered by modernc.org/sqlite.
const DriverName = "sqlite"

const cakeColumns = "id, title, description, created_at, updated_at"

// CakeStore implements store.CakeStore using SQLite.
type CakeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure CakeStore implements store.CakeStore interface
var _ store.CakeStore = (*CakeStore)(nil)

// NewCakeStore creates an SQLite cake store over an open connection.
// It panics if db is nil. If logger is nil, a default logger will be used.
func NewCakeStore(db store.DBTX, logger *slog.Logger) *CakeStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CakeStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_cake_store")),
	}
}

// Insert implements store.CakeStore.Insert.
func (s *CakeStore) Insert(ctx context.Context, title, description string) (*domain.Cake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cake, err := domain.NewCake(title, description)
	if err != nil {
		log.Warn("cake validation failed during insert", slog.String("error", err.Error()))
		return nil, store.InvalidEntity(err)
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO cakes (title, description, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		cake.Title, cake.Description, formatTime(cake.CreatedAt), formatTime(cake.UpdatedAt),
	).Scan(&cake.ID)
	if err != nil {
		log.Error("failed to insert cake", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to insert cake: %w", MapError(err))
	}

	log.Info("cake created successfully", slog.Int64("cake_id", cake.ID))
	return cake, nil
}

// FindByID implements store.CakeStore.FindByID.
func (s *CakeStore) FindByID(ctx context.Context, id int64) (*domain.Cake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, "SELECT "+cakeColumns+" FROM cakes WHERE id = ?", id)
	cake, err := scanCake(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("cake not found", slog.Int64("cake_id", id))
		return nil, store.ErrCakeNotFound
	}
	if err != nil {
		log.Error("failed to get cake by ID",
			slog.Int64("cake_id", id),
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to get cake: %w", MapError(err))
	}
	return cake, nil
}

// FindAll implements store.CakeStore.FindAll.
func (s *CakeStore) FindAll(ctx context.Context) ([]*domain.Cake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, "SELECT "+cakeColumns+" FROM cakes ORDER BY id")
	if err != nil {
		log.Error("failed to list cakes", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list cakes: %w", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	cakes := make([]*domain.Cake, 0)
	for rows.Next() {
		cake, err := scanCake(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cake: %w", err)
		}
		cakes = append(cakes, cake)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cakes: %w", MapError(err))
	}
	return cakes, nil
}

// Update implements store.CakeStore.Update.
func (s *CakeStore) Update(
	ctx context.Context,
	id int64,
	title, description string,
) (*domain.Cake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	candidate := &domain.Cake{ID: id}
	if err := candidate.Replace(title, description); err != nil {
		log.Warn("cake validation failed during update",
			slog.Int64("cake_id", id),
			slog.String("error", err.Error()))
		return nil, store.InvalidEntity(err)
	}

	row := s.db.QueryRowContext(ctx,
		`UPDATE cakes SET title = ?, description = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+cakeColumns,
		candidate.Title, candidate.Description, formatTime(candidate.UpdatedAt), id,
	)
	cake, err := scanCake(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("cake not found for update", slog.Int64("cake_id", id))
		return nil, store.ErrCakeNotFound
	}
	if err != nil {
		log.Error("failed to update cake",
			slog.Int64("cake_id", id),
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to update cake: %w", MapError(err))
	}

	log.Info("cake updated successfully", slog.Int64("cake_id", id))
	return cake, nil
}

// Delete implements store.CakeStore.Delete.
func (s *CakeStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM cakes WHERE id = ?", id)
	if err != nil {
		log.Error("failed to delete cake",
			slog.Int64("cake_id", id),
			slog.String("error", redact.Error(err)))
		return false, fmt.Errorf("failed to delete cake: %w", MapError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		log.Info("cake deleted successfully", slog.Int64("cake_id", id))
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCake(row rowScanner) (*domain.Cake, error) {
	var cake domain.Cake
	err := row.Scan(
		&cake.ID,
		&cake.Title,
		&cake.Description,
		timestamp{&cake.CreatedAt},
		timestamp{&cake.UpdatedAt},
	)
	if err != nil {
		return nil, err
	}
	return &cake, nil
}

// storedTimeFormat is the layout timestamps are written in. SQLite's own
// date functions understand it.
const storedTimeFormat = "2006-01-02 15:04:05.999999999-07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(storedTimeFormat)
}

// timestampFormats are the layouts accepted when reading a timestamp back.
var timestampFormats = []string{
	storedTimeFormat,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timestamp scans a DATETIME column. The driver only converts text to
// time.Time when it knows the declared column type, which RETURNING clauses
// do not always report.
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case int64:
		*ts.t = time.Unix(v, 0).UTC()
		return nil
	case nil:
		*ts.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (ts timestamp) parse(value string) error {
	for _, layout := range timestampFormats {
		if parsed, err := time.Parse(layout, value); err == nil {
			*ts.t = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", value)
}

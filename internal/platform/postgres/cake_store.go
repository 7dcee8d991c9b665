package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cake-api/internal/domain"
	"github.com/phrazzld/cake-api/internal/platform/logger"
	"github.com/phrazzld/cake-api/internal/redact"
	"github.com/phrazzld/cake-api/internal/store"
)

const cakeColumns = "id, title, description, created_at, updated_at"

// PostgresCakeStore implements the store.CakeStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCakeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCakeStore creates a new PostgreSQL implementation of the CakeStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCakeStore(db store.DBTX, logger *slog.Logger) *PostgresCakeStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCakeStore{
		db:     db,
		logger: logger.With(slog.String("component", "cake_store")),
	}
}

// Ensure PostgresCakeStore implements store.CakeStore interface
var _ store.CakeStore = (*PostgresCakeStore)(nil)

// Insert implements store.CakeStore.Insert.
// The ID comes from the BIGSERIAL sequence, which never hands out a value twice.
func (s *PostgresCakeStore) Insert(
	ctx context.Context,
	title, description string,
) (*domain.Cake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cake, err := domain.NewCake(title, description)
	if err != nil {
		log.Warn("cake validation failed during insert", slog.String("error", err.Error()))
		return nil, store.InvalidEntity(err)
	}

	query := `
		INSERT INTO cakes (title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = s.db.QueryRowContext(
		ctx,
		query,
		cake.Title,
		cake.Description,
		cake.CreatedAt,
		cake.UpdatedAt,
	).Scan(&cake.ID)
	if err != nil {
		log.Error("failed to insert cake", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to insert cake: %w", MapError(err))
	}

	log.Info("cake created successfully", slog.Int64("cake_id", cake.ID))
	return cake, nil
}

// FindByID implements store.CakeStore.FindByID.
func (s *PostgresCakeStore) FindByID(ctx context.Context, id int64) (*domain.Cake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving cake by ID", slog.Int64("cake_id", id))

	query := "SELECT " + cakeColumns + " FROM cakes WHERE id = $1"

	cake, err := scanCake(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("cake not found", slog.Int64("cake_id", id))
			return nil, store.ErrCakeNotFound
		}

		log.Error("failed to get cake by ID",
			slog.Int64("cake_id", id),
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to get cake: %w", MapError(err))
	}

	return cake, nil
}

// FindAll implements store.CakeStore.FindAll.
func (s *PostgresCakeStore) FindAll(ctx context.Context) ([]*domain.Cake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + cakeColumns + " FROM cakes ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query)
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
			log.Error("failed to scan cake row", slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("failed to scan cake: %w", err)
		}
		cakes = append(cakes, cake)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating cake rows", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list cakes: %w", MapError(err))
	}

	log.Debug("listed cakes", slog.Int("count", len(cakes)))
	return cakes, nil
}

// Update implements store.CakeStore.Update.
func (s *PostgresCakeStore) Update(
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

	query := `
		UPDATE cakes
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4
		RETURNING ` + cakeColumns

	cake, err := scanCake(s.db.QueryRowContext(
		ctx,
		query,
		candidate.Title,
		candidate.Description,
		candidate.UpdatedAt,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("cake not found for update", slog.Int64("cake_id", id))
			return nil, store.ErrCakeNotFound
		}

		log.Error("failed to update cake",
			slog.Int64("cake_id", id),
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to update cake: %w", MapError(err))
	}

	log.Info("cake updated successfully", slog.Int64("cake_id", id))
	return cake, nil
}

// Delete implements store.CakeStore.Delete.
func (s *PostgresCakeStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM cakes WHERE id = $1", id)
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

	if affected == 0 {
		log.Debug("cake already absent", slog.Int64("cake_id", id))
		return false, nil
	}

	log.Info("cake deleted successfully", slog.Int64("cake_id", id))
	return true, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCake(row rowScanner) (*domain.Cake, error) {
	var cake domain.Cake
	if err := row.Scan(
		&cake.ID,
		&cake.Title,
		&cake.Description,
		&cake.CreatedAt,
		&cake.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cake, nil
}

package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/cake-api/internal/platform/postgres"
	"github.com/phrazzld/cake-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "cakes",
		ColumnName:     "title",
		ConstraintName: "cakes_title_not_blank",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"no rows", sql.ErrNoRows, store.ErrCakeNotFound},
		{"unique violation", newPgError("23505"), store.ErrDuplicate},
		{"check violation", newPgError("23514"), store.ErrInvalidEntity},
		{"not null violation", newPgError("23502"), store.ErrInvalidEntity},
		{"string too long", newPgError("22001"), store.ErrInvalidEntity},
		{"wrapped check violation", fmt.Errorf("exec: %w", newPgError("23514")), store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, postgres.MapError(tt.err), tt.wantErr)
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("unmapped errors pass through", func(t *testing.T) {
		t.Parallel()
		original := errors.New("generic error")
		assert.Same(t, original, postgres.MapError(original))

		pgErr := newPgError("40001")
		assert.Equal(t, error(pgErr), postgres.MapError(pgErr))
	})
}

func TestMapErrorDescribesViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{"23505", "unique constraint cakes_title_not_blank"},
		{"23514", "check constraint cakes_title_not_blank"},
		{"23502", "column title is null"},
		{"22001", "value too long"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			err := postgres.MapError(newPgError(tt.code))
			assert.Contains(t, err.Error(), tt.want)

			var pgErr *pgconn.PgError
			assert.False(t, errors.As(err, &pgErr), "driver errors must not leak past the store")
		})
	}
}

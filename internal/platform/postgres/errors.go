package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/cake-api/internal/store"
)

// sqlState describes how one SQLSTATE code surfaces as a store error.
type sqlState struct {
	sentinel error
	describe func(*pgconn.PgError) string
}

// sqlStates lists the SQLSTATE codes the cakes schema can raise. Anything
// else is returned unchanged.
var sqlStates = map[string]sqlState{
	"23505": {store.ErrDuplicate, func(e *pgconn.PgError) string {
		return "unique constraint " + e.ConstraintName
	}},
	"23514": {store.ErrInvalidEntity, func(e *pgconn.PgError) string {
		return "check constraint " + e.ConstraintName
	}},
	"23502": {store.ErrInvalidEntity, func(e *pgconn.PgError) string {
		return "column " + e.ColumnName + " is null"
	}},
	"22001": {store.ErrInvalidEntity, func(*pgconn.PgError) string {
		return "value too long"
	}},
}

// MapError translates a database/sql or pgx error into a store sentinel. The
// driver error stays in the message for logging but is not wrapped, so
// callers can only match on the store sentinels.
func MapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %v", store.ErrCakeNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	state, ok := sqlStates[pgErr.Code]
	if !ok {
		return err
	}
	return fmt.Errorf("%w: %s: %v", state.sentinel, state.describe(pgErr), err)
}

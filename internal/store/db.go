package store

import (
	"context"
	"database/sql"
)

// DBTX is the slice of *sql.DB and *sql.Tx the SQL cake stores rely on.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

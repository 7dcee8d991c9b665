// Package postgres provides the PostgreSQL implementation of store.CakeStore.
// It runs on database/sql with the pgx stdlib driver and maps PostgreSQL
// error codes onto the sentinel errors of the internal/store package.
package postgres

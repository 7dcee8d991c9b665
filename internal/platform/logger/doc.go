// Package logger builds the process-wide slog JSON logger from config and
// threads request-scoped loggers through context.Context. The test helpers
// capture that output so tests can assert on individual entries.
package logger

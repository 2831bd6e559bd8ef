package db

import (
	"context"
	"database/sql"
	"log/slog"
	"sync/atomic"
)

var debug atomic.Bool

// EnableDebugLogs turns on SQL statement logging.
func EnableDebugLogs() {
	debug.Store(true)
}

func DisableDebugLogs() {
	debug.Store(false)
}

func LogExec(ctx context.Context, conn *sql.DB, query string, args ...any) (sql.Result, error) {
	if debug.Load() {
		slog.Debug("[SQL Exec]", "query", query, "args", args)
	}
	return conn.ExecContext(ctx, query, args...)
}

func LogQuery(ctx context.Context, conn *sql.DB, query string, args ...any) (*sql.Rows, error) {
	if debug.Load() {
		slog.Debug("[SQL Query]", "query", query, "args", args)
	}
	return conn.QueryContext(ctx, query, args...)
}

func LogQueryRow(ctx context.Context, conn *sql.DB, query string, args ...any) *sql.Row {
	if debug.Load() {
		slog.Debug("[SQL QueryRow]", "query", query, "args", args)
	}
	return conn.QueryRowContext(ctx, query, args...)
}

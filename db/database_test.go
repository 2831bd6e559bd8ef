package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchema(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "menuguide.db"))
	require.NoError(t, err)
	defer conn.Close()

	for _, table := range []string{"users", "sessions", "preferences", "activity"} {
		var name string
		err := LogQueryRow(context.Background(), conn,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menuguide.db")
	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestLogExecWithDebug(t *testing.T) {
	conn, err := Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	EnableDebugLogs()
	defer DisableDebugLogs()

	_, err = LogExec(context.Background(), conn,
		`INSERT INTO activity (text, created_at) VALUES (?, CURRENT_TIMESTAMP)`, "started")
	require.NoError(t, err)

	rows, err := LogQuery(context.Background(), conn, `SELECT text FROM activity`)
	require.NoError(t, err)
	defer rows.Close()
	require.True(t, rows.Next())
	var text string
	require.NoError(t, rows.Scan(&text))
	assert.Equal(t, "started", text)
}

package models

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamasta/menuguide/db"
)

func TestActivityKeepsNewestTen(t *testing.T) {
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()
	ctx := context.Background()

	for i := 1; i <= 13; i++ {
		require.NoError(t, AddActivity(ctx, conn, fmt.Sprintf("entry %d", i)))
	}

	feed, err := RecentActivity(ctx, conn)
	require.NoError(t, err)
	require.Len(t, feed, ActivityLimit)
	assert.Equal(t, "entry 13", feed[0].Text)
	assert.Equal(t, "entry 4", feed[len(feed)-1].Text)
	assert.False(t, feed[0].CreatedAt.IsZero())

	var stored int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM activity`).Scan(&stored))
	assert.Equal(t, ActivityLimit, stored)
}

func TestRecentActivityEmpty(t *testing.T) {
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	feed, err := RecentActivity(context.Background(), conn)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestAddActivityError(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO activity`).WillReturnError(errors.New("full"))

	assert.ErrorContains(t, AddActivity(context.Background(), conn, "x"), "add activity")
}

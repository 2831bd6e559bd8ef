package models

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pandamasta/menuguide/db"
)

// ActivityLimit is how many entries the admin activity feed keeps.
const ActivityLimit = 10

// Activity is one line of the admin activity feed.
type Activity struct {
	ID        int64
	Text      string
	CreatedAt time.Time
}

// AddActivity records text and trims the feed to the newest ActivityLimit entries.
func AddActivity(ctx context.Context, conn *sql.DB, text string) error {
	if _, err := db.LogExec(ctx, conn,
		`INSERT INTO activity (text, created_at) VALUES (?, ?)`, text, time.Now().UTC()); err != nil {
		return fmt.Errorf("add activity: %w", err)
	}
	if _, err := db.LogExec(ctx, conn,
		`DELETE FROM activity WHERE id NOT IN (SELECT id FROM activity ORDER BY id DESC LIMIT ?)`,
		ActivityLimit); err != nil {
		return fmt.Errorf("trim activity: %w", err)
	}
	return nil
}

// RecentActivity returns the feed newest first.
func RecentActivity(ctx context.Context, conn *sql.DB) ([]Activity, error) {
	rows, err := db.LogQuery(ctx, conn,
		`SELECT id, text, created_at FROM activity ORDER BY id DESC LIMIT ?`, ActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.Text, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

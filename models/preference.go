package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pandamasta/menuguide/db"
)

// PreferenceStore persists preferences of a signed-in user, so an admin's
// language follows them across browsers. It implements localize.Store.
type PreferenceStore struct {
	DB     *sql.DB
	UserID int64
	Ctx    context.Context
}

func (s PreferenceStore) ctx() context.Context {
	if s.Ctx != nil {
		return s.Ctx
	}
	return context.Background()
}

func (s PreferenceStore) Load(key string) (string, error) {
	var value string
	err := db.LogQueryRow(s.ctx(), s.DB,
		`SELECT value FROM preferences WHERE user_id = ? AND key = ?`, s.UserID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load preference %s: %w", key, err)
	}
	return value, nil
}

func (s PreferenceStore) Save(key, value string) error {
	_, err := db.LogExec(s.ctx(), s.DB,
		`INSERT INTO preferences (user_id, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.UserID, key, value)
	if err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}

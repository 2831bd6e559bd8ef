package models

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pandamasta/menuguide/db"
)

// User is an admin account allowed to review the menu queue.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
}

// GetUserByEmail returns the user or nil when no account matches.
func GetUserByEmail(ctx context.Context, conn *sql.DB, email string) (*User, error) {
	row := db.LogQueryRow(ctx, conn,
		`SELECT id, email, password_hash, role FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// CheckPassword compares pass with the stored bcrypt hash.
func (u *User) CheckPassword(pass string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pass)) == nil
}

// EnsureAdmin creates the admin account if it does not exist yet.
// Existing accounts are left untouched.
func EnsureAdmin(ctx context.Context, conn *sql.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password are required")
	}
	existing, err := GetUserByEmail(ctx, conn, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := db.LogExec(ctx, conn,
		`INSERT INTO users (email, password_hash, role) VALUES (?, ?, 'admin')`,
		email, string(hash)); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	slog.Info("[DB] Admin account created", "email", email)
	return nil
}

// CreateSession stores a new session token for userID valid for ttl.
func CreateSession(ctx context.Context, conn *sql.DB, userID int64, ttl time.Duration) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	token := hex.EncodeToString(b)

	if _, err := db.LogExec(ctx, conn,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, time.Now().UTC().Add(ttl)); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// GetSession returns the user owning a live session, or nil.
func GetSession(ctx context.Context, conn *sql.DB, token string) (*User, error) {
	row := db.LogQueryRow(ctx, conn,
		`SELECT u.id, u.email, u.password_hash, u.role
         FROM sessions s
         JOIN users u ON u.id = s.user_id
         WHERE s.token = ? AND s.expires_at > ?`,
		token, time.Now().UTC())
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &u, nil
}

// DeleteSession removes a session token.
func DeleteSession(ctx context.Context, conn *sql.DB, token string) error {
	if _, err := db.LogExec(ctx, conn, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

package middleware

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/pandamasta/menuguide/menuguide"
	"github.com/pandamasta/menuguide/models"
)

// SessionMiddleware attaches the signed-in admin, if any, to the request context.
func SessionMiddleware(cfg *menuguide.Config, conn *sql.DB, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		cookie, err := r.Cookie(cfg.SessionCookie.Name)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := models.GetSession(ctx, conn, cookie.Value)
		switch {
		case err != nil:
			slog.Error("[SESSION] Lookup failed", "err", err)
		case user == nil:
			slog.Warn("[SESSION] Invalid or expired session")
			ClearSessionCookie(w, cfg)
		default:
			slog.Debug("[SESSION] Resolved user", "user_id", user.ID)
			ctx = context.WithValue(ctx, userIDKey, user.ID)
			ctx = context.WithValue(ctx, userKey, user)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetSessionCookie stores token in the session cookie.
func SetSessionCookie(w http.ResponseWriter, cfg *menuguide.Config, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.SessionCookie.Name,
		Value:    token,
		Path:     "/",
		Domain:   cfg.SessionCookie.Domain,
		MaxAge:   int(cfg.TokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SessionCookie.Secure,
		SameSite: cfg.SessionCookie.SameSite,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, cfg *menuguide.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.SessionCookie.Name,
		Value:    "",
		Path:     "/",
		Domain:   cfg.SessionCookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func CurrentUserID(r *http.Request) int64 {
	if uid, ok := r.Context().Value(userIDKey).(int64); ok {
		return uid
	}
	return 0
}

func CurrentUser(r *http.Request) *models.User {
	if u, ok := r.Context().Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}

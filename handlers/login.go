package handlers

import (
	"database/sql"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/internal/render"
	"github.com/pandamasta/menuguide/menuguide"
	"github.com/pandamasta/menuguide/menuguide/middleware"
	"github.com/pandamasta/menuguide/models"
)

// InitLoginTemplates parses the admin sign-in page.
func InitLoginTemplates() *template.Template {
	return render.MustParsePage("login.html")
}

// LoginHandler handles GET and POST requests for /login.
func LoginHandler(cfg *menuguide.Config, conn *sql.DB, i18n *i18n.I18n, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := safeNext(r.FormValue("next"), "/admin")

		// Step 1: Handle GET request to serve the login form
		if r.Method == http.MethodGet {
			data := render.BaseTemplateData(r, i18n, map[string]any{"Next": next})
			slog.Debug("[LOGIN] Rendering login form", "lang", data.Lang)
			render.RenderTemplate(w, tmpl, "base", data)
			return
		}

		// Step 2: Extract submitted values
		email := strings.TrimSpace(r.FormValue("email"))
		pass := r.FormValue("password")
		fail := func(status int) {
			data := render.BaseTemplateData(r, i18n, map[string]any{"Next": next, "Email": email})
			data.Extra["Error"] = data.T("login.invalid")
			render.RenderStatus(w, status, tmpl, "base", data)
		}

		// Step 3: Validate required fields
		if email == "" || pass == "" {
			fail(http.StatusBadRequest)
			return
		}

		// Step 4: Look up user and verify password
		user, err := models.GetUserByEmail(r.Context(), conn, email)
		if err != nil {
			slog.Error("[LOGIN] DB error", "email", email, "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if user == nil || !user.CheckPassword(pass) {
			slog.Info("[LOGIN] Invalid credentials", "email", email)
			fail(http.StatusUnauthorized)
			return
		}

		// Step 5: Create session and set cookie
		token, err := models.CreateSession(r.Context(), conn, user.ID, cfg.TokenExpiry)
		if err != nil {
			slog.Error("[LOGIN] Failed to create session", "user_id", user.ID, "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		middleware.SetSessionCookie(w, cfg, token)

		slog.Info("[LOGIN] User logged in", "email", user.Email)
		http.Redirect(w, r, next, http.StatusSeeOther)
	}
}

// LogoutHandler handles POST /logout: the session row is removed and the cookie expired.
func LogoutHandler(cfg *menuguide.Config, conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(cfg.SessionCookie.Name); err == nil && cookie.Value != "" {
			if err := models.DeleteSession(r.Context(), conn, cookie.Value); err != nil {
				slog.Error("[LOGOUT] Failed to delete session", "err", err)
			}
		}
		middleware.ClearSessionCookie(w, cfg)
		slog.Info("[LOGOUT] User logged out", "user_id", middleware.CurrentUserID(r))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

package handlers

import (
	"database/sql"
	"html/template"
	"net/http"

	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/internal/render"
	"github.com/pandamasta/menuguide/menuguide"
	"github.com/pandamasta/menuguide/menuguide/middleware"
)

// App bundles what the handlers share.
type App struct {
	Config  *menuguide.Config
	DB      *sql.DB
	I18n    *i18n.I18n
	API     menuguide.MenuAPI
	Limiter *middleware.RateLimiter
}

// Routes registers every page of the menu guide on a new mux.
func Routes(app App) *http.ServeMux {
	home := InitHomeTemplates()
	detail := InitDetailTemplates()
	login := InitLoginTemplates()
	admin := InitAdminTemplates()
	enroll := InitEnrollTemplates()
	errPage := InitErrorTemplates()

	limit := func(h http.Handler) http.Handler {
		if app.Limiter == nil {
			return h
		}
		return app.Limiter.Middleware(h)
	}
	auth := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", HomeHandler(app.I18n, home))
	mux.Handle("GET /search", limit(SearchHandler(app.Config, app.I18n, app.API, home)))
	mux.Handle("GET /menu", DetailHandler(app.I18n, app.API, detail))
	mux.Handle("/lang", LanguageHandler())
	mux.Handle("GET /healthz", HealthHandler(app.API))
	mux.Handle("GET /static/", render.StaticHandler())

	mux.Handle("GET /login", LoginHandler(app.Config, app.DB, app.I18n, login))
	mux.Handle("POST /login", limit(LoginHandler(app.Config, app.DB, app.I18n, login)))
	mux.Handle("POST /logout", LogoutHandler(app.Config, app.DB))

	mux.Handle("GET /admin", auth(AdminHandler(app.I18n, app.API, app.DB, admin)))
	mux.Handle("GET /admin/queue/export.xlsx", auth(ExportHandler(app.I18n, app.API)))
	mux.Handle("POST /admin/queue/{id}/{action}", auth(QueueActionHandler(app.I18n, app.API, app.DB)))

	mux.Handle("GET /b2b", EnrollHandler(app.I18n, enroll))
	mux.Handle("POST /b2b/upload", limit(UploadHandler(app.Config, app.I18n, app.API, enroll)))
	mux.Handle("POST /b2b/confirm", ConfirmHandler(app.I18n, enroll))

	mux.Handle("/", NotFoundHandler(app.I18n, errPage))
	return mux
}

// NotFoundHandler renders the error page with 404 for unknown paths.
func NotFoundHandler(i18n *i18n.I18n, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderError(w, r, i18n, tmpl, http.StatusNotFound, "error.notFound")
	}
}

package handlers

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pandamasta/menuguide/backend"
	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/internal/render"
	"github.com/pandamasta/menuguide/menuguide"
	"github.com/pandamasta/menuguide/models"
)

// DetailAPI is what the detail page needs from the backend.
type DetailAPI interface {
	menuguide.MenuIdentifier
	menuguide.MenuFetcher
}

// InitDetailTemplates parses the menu detail page.
func InitDetailTemplates() *template.Template {
	return render.MustParsePage("detail.html")
}

// DetailHandler handles GET /menu?id=<uuid>&tab= and GET /menu?name=<ko>&tab=.
func DetailHandler(i18n *i18n.I18n, api DetailAPI, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		data := render.BaseTemplateData(r, i18n, map[string]any{})

		// Step 1: Decide between id and name lookup; non-UUID ids are names
		id := strings.TrimSpace(q.Get("id"))
		name := strings.TrimSpace(q.Get("name"))
		if id != "" {
			if _, err := uuid.Parse(id); err != nil {
				name, id = id, ""
			}
		}
		if id == "" && name == "" {
			render.RenderStatus(w, http.StatusNotFound, tmpl, "base", data)
			return
		}

		// Step 2: Load the menu
		menu, err := loadMenu(r, api, id, name)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, backend.ErrNotFound) {
				status = http.StatusNotFound
			} else {
				data.Extra["Error"] = data.T("error.backend")
			}
			slog.Warn("[DETAIL] Menu lookup failed", "id", id, "name", name, "err", err)
			render.RenderStatus(w, status, tmpl, "base", data)
			return
		}

		// Step 3: Render the requested tab
		data.Extra["Menu"] = render.BuildDetailView(menu, q.Get("tab"), data.R)
		slog.Debug("[DETAIL] Rendering menu", "id", menu.ID(), "lang", data.Lang)
		render.RenderTemplate(w, tmpl, "base", data)
	}
}

// loadMenu fetches by id, or identifies the name first. When the enriched
// detail call fails the identify canonical is shown instead.
func loadMenu(r *http.Request, api DetailAPI, id, name string) (*models.Menu, error) {
	ctx := r.Context()
	if id != "" {
		return api.MenuDetail(ctx, id)
	}

	res, err := api.Identify(ctx, name)
	if err != nil {
		return nil, err
	}
	if !res.Matched() {
		return nil, backend.ErrNotFound
	}
	canonicalID := res.Canonical.ID()
	if _, err := uuid.Parse(canonicalID); err != nil {
		return res.Canonical, nil
	}
	menu, err := api.MenuDetail(ctx, canonicalID)
	if err != nil {
		slog.Warn("[DETAIL] Enriched detail unavailable, using identify result", "id", canonicalID, "err", err)
		return res.Canonical, nil
	}
	return menu, nil
}

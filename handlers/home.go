package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/internal/render"
	"github.com/pandamasta/menuguide/menuguide"
)

// InitHomeTemplates parses the landing page, which also shows search results.
func InitHomeTemplates() *template.Template {
	return render.MustParsePage("home.html")
}

// HomeHandler handles the "/" route: the search form only.
func HomeHandler(i18n *i18n.I18n, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := render.BaseTemplateData(r, i18n, nil)
		slog.Debug("[HOME] Rendering home page", "lang", data.Lang, "user", data.User != nil)
		render.RenderTemplate(w, tmpl, "base", data)
	}
}

// SearchHandler handles GET /search?q=. Every typed name is identified
// concurrently; cards keep the order the names were typed in.
func SearchHandler(cfg *menuguide.Config, i18n *i18n.I18n, api menuguide.MenuIdentifier, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		data := render.BaseTemplateData(r, i18n, map[string]any{"Query": query})

		// Step 1: Split input into menu names
		names := splitNames(query)
		if len(names) == 0 {
			data.Extra["Error"] = data.T("search.empty")
			render.RenderStatus(w, http.StatusBadRequest, tmpl, "base", data)
			return
		}
		if len(names) > cfg.Backend.MaxNames {
			slog.Info("[SEARCH] Too many names", "names", len(names), "max", cfg.Backend.MaxNames)
			data.Extra["Error"] = data.T("search.tooMany", cfg.Backend.MaxNames)
			render.RenderStatus(w, http.StatusBadRequest, tmpl, "base", data)
			return
		}

		// Step 2: Identify each name, bounded by the configured concurrency
		results := make([]render.SearchResult, len(names))
		var g errgroup.Group
		g.SetLimit(cfg.Backend.SearchConcurrency)
		for i, name := range names {
			g.Go(func() error {
				res, err := api.Identify(r.Context(), name)
				if err != nil {
					slog.Warn("[SEARCH] Identify failed", "name", name, "err", err)
				}
				results[i] = render.SearchResult{Input: name, Result: res, Err: err}
				return nil
			})
		}
		_ = g.Wait()

		// Step 3: Build cards in the visitor's language
		cards := make([]render.MenuCard, 0, len(results))
		for _, res := range results {
			cards = append(cards, render.BuildMenuCard(res, data.R))
		}
		data.Extra["Cards"] = cards

		slog.Info("[SEARCH] Search completed", "names", len(names), "lang", data.Lang)
		render.RenderTemplate(w, tmpl, "base", data)
	}
}

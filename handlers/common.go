package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/internal/render"
)

// splitNames splits a search box value on commas and newlines, dropping blanks.
func splitNames(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == '，' || r == '、'
	})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	return names
}

// safeNext keeps redirects on this site: only absolute paths without a host.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return next
}

// InitErrorTemplates parses the generic error page.
func InitErrorTemplates() *template.Template {
	return render.MustParsePage("error.html")
}

// renderError shows the error page with a translated message.
func renderError(w http.ResponseWriter, r *http.Request, i18n *i18n.I18n, tmpl *template.Template, status int, key string) {
	data := render.BaseTemplateData(r, i18n, nil)
	data.Extra = map[string]any{"Message": data.T(key)}
	slog.Debug("[ERROR] Rendering error page", "status", status, "key", key, "path", r.URL.Path)
	render.RenderStatus(w, status, tmpl, "base", data)
}

// FilterOption is one entry of a queue filter select.
type FilterOption struct {
	Value    string
	LabelKey string
	Active   bool
}

func filterOptions(prefix, active string, values ...string) []FilterOption {
	opts := make([]FilterOption, 0, len(values))
	for _, v := range values {
		opts = append(opts, FilterOption{Value: v, LabelKey: prefix + "." + v, Active: v == active})
	}
	return opts
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

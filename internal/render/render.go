package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/localize"
	"github.com/pandamasta/menuguide/menuguide/middleware"
	"github.com/pandamasta/menuguide/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// base layout files shared by every page
var baseFiles = []string{"templates/base.html", "templates/header.html"}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Code   string
	Label  string
	URL    string
	Active bool
}

// native names, shown the same in every UI language
var languageLabels = map[localize.Language]string{
	localize.English:  "English",
	localize.Japanese: "日本語",
	localize.Chinese:  "中文",
	localize.Korean:   "한국어",
}

type TemplateData struct {
	User      *models.User
	Lang      localize.Language
	Languages []LanguageOption
	CSRFToken string
	Path      string
	T         func(key string, args ...any) string
	R         localize.Resolver
	Extra     map[string]any
}

// BaseTemplateData collects what every page needs from the request context.
func BaseTemplateData(r *http.Request, i18n *i18n.I18n, extra map[string]any) TemplateData {
	ctx := r.Context()
	user := middleware.CurrentUser(r)
	lang := middleware.LangFromContext(ctx)
	csrf, _ := ctx.Value(middleware.CsrfKey).(string)

	slog.Debug("[RENDER] BaseTemplateData", "lang", lang, "user", user != nil, "csrf", csrf != "")

	return TemplateData{
		User:      user,
		Lang:      lang,
		Languages: LanguageOptions(lang, r.URL),
		CSRFToken: csrf,
		Path:      r.URL.Path,
		T: func(key string, args ...any) string {
			return i18n.Label(key, lang, args...)
		},
		R:     localize.NewResolver(lang),
		Extra: extra,
	}
}

// LanguageOptions builds the switcher; each URL keeps the current page and query.
func LanguageOptions(active localize.Language, current *url.URL) []LanguageOption {
	opts := make([]LanguageOption, 0, len(languageLabels))
	for _, l := range localize.Supported() {
		q := url.Values{}
		path := "/"
		if current != nil {
			q = current.Query()
			if current.Path != "" {
				path = current.Path
			}
		}
		q.Set(middleware.LangParam, l.String())
		opts = append(opts, LanguageOption{
			Code:   l.String(),
			Label:  languageLabels[l],
			URL:    (&url.URL{Path: path, RawQuery: q.Encode()}).String(),
			Active: l == active,
		})
	}
	return opts
}

// ParsePage parses the base layout plus one page template from the embedded set.
func ParsePage(page string) (*template.Template, error) {
	files := append(append([]string{}, baseFiles...), "templates/"+page)
	tmpl, err := template.New("base").Funcs(FuncMap()).ParseFS(templateFS, files...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", page, err)
	}
	return tmpl, nil
}

// MustParsePage is ParsePage for startup code.
func MustParsePage(page string) *template.Template {
	tmpl, err := ParsePage(page)
	if err != nil {
		slog.Error("[RENDER] Failed to parse template", "page", page, "err", err)
		panic(err)
	}
	return tmpl
}

// StaticHandler serves the embedded stylesheet under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

// RenderTemplate executes name into a buffer first so a failing template
// never leaves a half written page.
func RenderTemplate(w http.ResponseWriter, tmpl *template.Template, name string, data TemplateData) {
	RenderStatus(w, http.StatusOK, tmpl, name, data)
}

// RenderStatus is RenderTemplate with an explicit status code.
func RenderStatus(w http.ResponseWriter, status int, tmpl *template.Template, name string, data TemplateData) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("[RENDER] Template execution failed", "name", name, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

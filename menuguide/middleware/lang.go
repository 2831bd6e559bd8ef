package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pandamasta/menuguide/localize"
	"github.com/pandamasta/menuguide/menuguide"
	"github.com/pandamasta/menuguide/models"
)

// LangParam switches the language on any page (?lang=ja).
const LangParam = "lang"

const langCookieMaxAge = 365 * 24 * time.Hour

// CookieStore keeps preferences in browser cookies named after the key.
// Values saved during a request are visible to later loads of the same request.
type CookieStore struct {
	r      *http.Request
	w      http.ResponseWriter
	secure bool
	saved  map[string]string
}

// NewCookieStore returns a store reading r's cookies and writing to w.
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{r: r, w: w, secure: secure, saved: make(map[string]string)}
}

func (c *CookieStore) Load(key string) (string, error) {
	if v, ok := c.saved[key]; ok {
		return v, nil
	}
	cookie, err := c.r.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

func (c *CookieStore) Save(key, value string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(langCookieMaxAge.Seconds()),
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.saved[key] = value
	return nil
}

// layeredStore reads from the first store holding a value and writes to all.
type layeredStore []localize.Store

func (l layeredStore) Load(key string) (string, error) {
	var errs []error
	for _, s := range l {
		v, err := s.Load(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if v != "" {
			return v, nil
		}
	}
	return "", errors.Join(errs...)
}

func (l layeredStore) Save(key, value string) error {
	var errs []error
	for _, s := range l {
		if err := s.Save(key, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LangMiddleware resolves the visitor's language preference and puts both the
// Preference and the resolved Language in the context. Signed-in admins also
// keep the preference in the database. A ?lang= parameter updates it first.
func LangMiddleware(cfg *menuguide.Config, conn *sql.DB, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var store localize.Store = NewCookieStore(w, r, cfg.SessionCookie.Secure)
		if uid := CurrentUserID(r); uid != 0 && conn != nil {
			store = layeredStore{models.PreferenceStore{DB: conn, UserID: uid, Ctx: ctx}, store}
		}
		pref := localize.NewPreference(store)

		if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
			SetLanguageFromInput(pref, v)
		}

		lang := pref.Language()
		if cfg.I18n.NegotiateAcceptLanguage && !hasStoredLanguage(store) {
			if accept := r.Header.Get("Accept-Language"); accept != "" {
				if matched, ok := localize.Match(accept); ok {
					lang = matched
					slog.Debug("[LANG] Language from Accept-Language", "lang", lang)
				}
			}
		}

		ctx = context.WithValue(ctx, prefKey, pref)
		ctx = context.WithValue(ctx, LangKey, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetLanguageFromInput parses a user supplied code (en, ja-JP, zh-Hans) and
// applies it. Unknown codes leave the preference unchanged.
func SetLanguageFromInput(pref *localize.Preference, input string) bool {
	lang, err := localize.Parse(input)
	if err != nil {
		lang = localize.Language(input)
	}
	return pref.SetLanguage(lang)
}

func hasStoredLanguage(store localize.Store) bool {
	v, err := store.Load(localize.StorageKey)
	return err == nil && localize.Language(v).Valid()
}

// LangFromContext returns the language resolved for the request.
func LangFromContext(ctx context.Context) localize.Language {
	if lang, ok := ctx.Value(LangKey).(localize.Language); ok && lang.Valid() {
		return lang
	}
	return localize.Default
}

// PreferenceFromContext returns the request's Preference, or nil outside LangMiddleware.
func PreferenceFromContext(ctx context.Context) *localize.Preference {
	pref, _ := ctx.Value(prefKey).(*localize.Preference)
	return pref
}

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pandamasta/menuguide/menuguide/middleware"
)

type languageResponse struct {
	Language string `json:"language"`
	Changed  bool   `json:"changed"`
}

// LanguageHandler handles GET and POST /lang. The lang value is applied to
// the visitor's preference; unsupported codes change nothing. The visitor is
// sent back to next, a local path.
func LanguageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Step 1: Apply the requested language
		pref := middleware.PreferenceFromContext(r.Context())
		input := r.FormValue(middleware.LangParam)
		changed := false
		if pref != nil && input != "" {
			changed = middleware.SetLanguageFromInput(pref, input)
		}
		if !changed {
			slog.Info("[LANG] Language not changed", "input", input)
		}

		// Step 2: Answer script callers with JSON
		if wantsJSON(r) {
			lang := middleware.LangFromContext(r.Context())
			if pref != nil {
				lang = pref.Language()
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(languageResponse{Language: lang.String(), Changed: changed})
			return
		}

		// Step 3: Redirect back
		http.Redirect(w, r, safeNext(r.FormValue("next"), "/"), http.StatusSeeOther)
	}
}

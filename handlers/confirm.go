package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/internal/render"
)

// ConfirmHandler handles POST /b2b/confirm: the reviewed items are counted
// per confidence band and the success step is shown.
func ConfirmHandler(i18n *i18n.I18n, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Step 1: Read the confidence of each reviewed card
		if err := r.ParseForm(); err != nil {
			slog.Warn("[B2B] Invalid confirm form", "err", err)
		}
		raw := r.PostForm["confidence"]
		scores := make([]float64, 0, len(raw))
		for _, v := range raw {
			c, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c = 0
			}
			scores = append(scores, c)
		}

		// Step 2: Success step with the summary
		summary := render.SummarizeScores(scores)
		data := render.BaseTemplateData(r, i18n, map[string]any{
			"Step":    stepDone,
			"Summary": summary,
		})
		slog.Info("[B2B] Menu confirmed", "total", summary.Total, "high", summary.High, "mid", summary.Mid, "low", summary.Low)
		render.RenderTemplate(w, tmpl, "base", data)
	}
}

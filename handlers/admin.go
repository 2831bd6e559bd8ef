package handlers

import (
	"database/sql"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/internal/render"
	"github.com/pandamasta/menuguide/menuguide"
	"github.com/pandamasta/menuguide/menuguide/middleware"
	"github.com/pandamasta/menuguide/models"
)

const (
	adminTabQueue = "queue"
	adminTabStats = "stats"
)

// InitAdminTemplates parses the admin dashboard.
func InitAdminTemplates() *template.Template {
	return render.MustParsePage("admin.html")
}

// queueFilter reads status, source, limit and offset from the query string.
func queueFilter(q url.Values) models.QueueFilter {
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	return models.QueueFilter{
		Status: q.Get("status"),
		Source: q.Get("source"),
		Limit:  limit,
		Offset: offset,
	}.Normalize()
}

// AdminHandler handles GET /admin: the review queue or engine stats, the
// sidebar numbers and the activity feed.
func AdminHandler(i18n *i18n.I18n, api menuguide.ReviewQueue, conn *sql.DB, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		tab := adminTabQueue
		if q.Get("tab") == adminTabStats {
			tab = adminTabStats
		}
		filter := queueFilter(q)
		data := render.BaseTemplateData(r, i18n, map[string]any{
			"Tab":      tab,
			"Filter":   filter,
			"Statuses": filterOptions("status", filter.Status, models.StatusAll, models.StatusPending, models.StatusConfirmed, models.StatusRejected),
			"Sources":  filterOptions("source", filter.Source, models.SourceAll, models.SourceB2C, models.SourceB2B),
			"ExportURL": "/admin/queue/export.xlsx?" + url.Values{
				"status": {filter.Status},
				"source": {filter.Source},
			}.Encode(),
		})

		// Step 1: Fetch stats and, on the queue tab, the queue page together
		var (
			stats    *models.AdminStats
			page     *models.QueuePage
			queueErr error
		)
		var g errgroup.Group
		g.Go(func() error {
			var err error
			if stats, err = api.Stats(r.Context()); err != nil {
				slog.Warn("[ADMIN] Stats unavailable", "err", err)
			}
			return nil
		})
		if tab == adminTabQueue {
			g.Go(func() error {
				page, queueErr = api.Queue(r.Context(), filter)
				return nil
			})
		}
		_ = g.Wait()

		// Step 2: Build queue rows
		now := time.Now().UTC()
		if queueErr != nil {
			slog.Error("[ADMIN] Queue unavailable", "err", queueErr)
			data.Extra["Error"] = data.T("error.backend")
		}
		if page != nil {
			items := make([]render.QueueItemView, 0, len(page.Data))
			for _, item := range page.Data {
				items = append(items, render.BuildQueueItem(item, now, data.T))
			}
			data.Extra["Items"] = items
			data.Extra["Total"] = page.Total
		} else {
			data.Extra["Total"] = 0
		}
		if stats != nil {
			data.Extra["Stats"] = stats
		}
		if failed := q.Get("failed"); failed != "" {
			data.Extra["Error"] = data.T("admin.actionFailed", failed)
		}

		// Step 3: Activity feed
		feed, err := models.RecentActivity(r.Context(), conn)
		if err != nil {
			slog.Error("[ADMIN] Failed to load activity", "err", err)
		}
		data.Extra["Activity"] = render.BuildActivity(feed, now, data.T)

		slog.Debug("[ADMIN] Rendering dashboard", "tab", tab, "status", filter.Status, "source", filter.Source)
		render.RenderTemplate(w, tmpl, "base", data)
	}
}

type actionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// QueueActionHandler handles POST /admin/queue/{id}/{action}. Successful
// actions are added to the activity feed.
func QueueActionHandler(i18n *i18n.I18n, api menuguide.ReviewQueue, conn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		name := r.FormValue("name")
		if name == "" {
			name = id
		}
		action := models.QueueAction{
			Action:          r.PathValue("action"),
			CanonicalMenuID: r.FormValue("canonical_menu_id"),
			Notes:           r.FormValue("notes"),
		}
		lang := middleware.LangFromContext(r.Context())

		// Step 1: Validate, then send the decision
		status := http.StatusBadRequest
		err := action.Validate()
		if err == nil {
			status = http.StatusBadGateway
			err = api.QueueAction(r.Context(), id, action)
		}
		if err != nil {
			slog.Warn("[ADMIN] Queue action failed", "id", id, "action", action.Action, "err", err)
			if wantsJSON(r) {
				writeJSON(w, status, actionResponse{Error: err.Error()})
				return
			}
			http.Redirect(w, r, "/admin?"+url.Values{"failed": {name}}.Encode(), http.StatusSeeOther)
			return
		}

		// Step 2: Record activity
		text := i18n.Label("activity."+action.Action, lang, name)
		if err := models.AddActivity(r.Context(), conn, text); err != nil {
			slog.Error("[ADMIN] Failed to record activity", "err", err)
		}
		slog.Info("[ADMIN] Queue action applied", "id", id, "action", action.Action, "user_id", middleware.CurrentUserID(r))

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, actionResponse{Success: true})
			return
		}
		http.Redirect(w, r, safeNext(r.FormValue("next"), "/admin"), http.StatusSeeOther)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[JSON] Encode failed", "err", err)
	}
}

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/menuguide"
	"github.com/pandamasta/menuguide/menuguide/middleware"
	"github.com/pandamasta/menuguide/models"
)

const (
	exportSheet   = "Queue"
	exportMaxRows = 200
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler handles GET /admin/queue/export.xlsx: the filtered queue as a spreadsheet.
func ExportHandler(i18n *i18n.I18n, api menuguide.ReviewQueue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.LangFromContext(r.Context())
		t := func(key string, args ...any) string { return i18n.Label(key, lang, args...) }

		// Step 1: Fetch the queue with the page's filters
		filter := queueFilter(r.URL.Query())
		filter.Limit, filter.Offset = exportMaxRows, 0
		page, err := api.Queue(r.Context(), filter)
		if err != nil {
			slog.Error("[EXPORT] Queue unavailable", "err", err)
			http.Error(w, t("error.backend"), http.StatusBadGateway)
			return
		}

		// Step 2: Build the workbook
		f, err := buildQueueWorkbook(page.Data, t)
		if err != nil {
			slog.Error("[EXPORT] Failed to build workbook", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		// Step 3: Stream it
		name := fmt.Sprintf("review-queue-%s.xlsx", time.Now().UTC().Format("20060102"))
		w.Header().Set("Content-Type", xlsxMediaType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
		if err := f.Write(w); err != nil {
			slog.Error("[EXPORT] Failed to write workbook", "err", err)
			return
		}
		slog.Info("[EXPORT] Queue exported", "rows", len(page.Data), "status", filter.Status, "source", filter.Source)
	}
}

// buildQueueWorkbook writes one header row and one row per queue item.
func buildQueueWorkbook(items []models.QueueItem, t func(string, ...any) string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"ID", t("admin.title"), t("admin.source"), t("admin.status"), t("admin.confidence"), t("admin.created"), t("admin.matched")}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, item := range items {
		matched := ""
		if m := item.MatchedCanonical; m != nil {
			matched = m.NameKo
			if m.NameEn != "" {
				matched += " (" + m.NameEn + ")"
			}
		}
		status := item.Status
		if status == "" {
			status = models.StatusPending
		}
		source := models.SourceB2B
		if item.Source == models.SourceB2C {
			source = models.SourceB2C
		}
		row := []any{item.ID, item.MenuNameKo, t("source." + source), t("status." + status), item.Confidence, item.CreatedAt, matched}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "G", 20); err != nil {
		f.Close()
		return nil, fmt.Errorf("set column width: %w", err)
	}
	return f, nil
}

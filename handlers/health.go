package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles GET /healthz; 503 when the menu backend is down.
func HealthHandler(backend HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := backend.Health(ctx); err != nil {
			slog.Warn("[HEALTH] Backend unhealthy", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

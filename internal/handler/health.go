package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	serviceName   = "Satvic Diet Planner API"
	healthTimeout = 2 * time.Second
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness. It always answers 200; the database field
// tells whether the store is reachable.
type HealthHandler struct {
	db      Pinger
	version string
}

// NewHealthHandler creates a HealthHandler. A nil db reports the database as down.
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// HandleHealth handles GET /api/health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	database := "up"
	if h.db == nil {
		database = "down"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			slog.WarnContext(r.Context(), "health check: database unreachable", "error", err)
			database = "down"
		}
	}

	writeData(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC(),
		"service":   serviceName,
		"version":   h.version,
		"database":  database,
	}, "")
}

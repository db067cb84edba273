package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler reports process liveness and dataset state.
type HealthHandler struct {
	service   DashboardServiceInterface
	logger    *slog.Logger
	startedAt time.Time
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service DashboardServiceInterface, logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		service:   service,
		logger:    logger.With(slog.String("component", "health_handler")),
		startedAt: time.Now(),
		version:   version,
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	stats := h.service.ParseStats()

	status := "healthy"
	if h.service.RecordCount() == 0 {
		status = "degraded"
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  status,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).String(),
		"dataset": map[string]interface{}{
			"records":             h.service.RecordCount(),
			"data_rows":           stats.DataRows,
			"dropped_bad_date":    stats.DroppedBadDate,
			"dropped_non_regular": stats.DroppedNonRegular,
			"dropped_empty":       stats.DroppedEmpty,
		},
	})
}

package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	pkgpostgres "github.com/truecost/mortgage-service/pkg/postgres"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness probes over HTTP, plus the
// database-backed /api/health status used by the frontend.
type HealthHandler struct {
	db      pkgpostgres.Pinger
	service string
	logger  *slog.Logger
}

// NewHealthHandler creates a health check HTTP handler.
func NewHealthHandler(db pkgpostgres.Pinger, service string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, service: service, logger: logger}
}

// RegisterRoutes attaches health-check routes to the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
	mux.HandleFunc("GET /api/health", h.apiHealth)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "unavailable",
			"service": h.service,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": h.service,
	})
}

func (h *HealthHandler) apiHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "database health check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":   "error",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "connected",
		"message":  "API is running",
	})
}

func (h *HealthHandler) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return pkgpostgres.HealthCheck(ctx, h.db)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler reports process liveness and archive status.
type HealthHandler struct {
	*Handler
}

// NewHealthHandler creates the health endpoint handler.
func NewHealthHandler(base *Handler) *HealthHandler {
	return &HealthHandler{Handler: base}
}

// RegisterHealth registers the health route.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health returns liveness plus a degraded flag when the report archive
// is configured but unreachable. Archive trouble never fails the check:
// the conversation core runs entirely in memory.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":          "ok",
		"active_sessions": h.sessions.Count(),
		"degraded":        false,
	}

	if h.archive != nil {
		if err := h.archive.Ping(r.Context()); err != nil {
			resp["degraded"] = true
		} else if count, err := h.archive.CountReports(r.Context()); err == nil {
			resp["reports_archived"] = count
		}
	}

	JSON(w, http.StatusOK, resp)
}

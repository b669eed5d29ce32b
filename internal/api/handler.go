// Package api provides HTTP handlers for the honeypot API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/honeylab/scambait/internal/orchestrator"
	"github.com/honeylab/scambait/internal/session"
	"github.com/honeylab/scambait/internal/store"
)

// Handler provides common handler dependencies.
type Handler struct {
	orch     *orchestrator.Orchestrator
	sessions *session.Store
	archive  store.Repository // may be nil
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(orch *orchestrator.Orchestrator, sessions *session.Store, archive store.Repository) *Handler {
	return &Handler{
		orch:     orch,
		sessions: sessions,
		archive:  archive,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"status": "error", "error": message})
}

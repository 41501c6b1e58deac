package api

import (
	"context"
	"net/http"
)

// ForfeitsDependencies exposes the derived forfeit assignments.
type ForfeitsDependencies interface {
	Forfeits(ctx context.Context) ([]Assignment, error)
}

// ForfeitsHandler handles forfeit requests.
type ForfeitsHandler struct {
	deps ForfeitsDependencies
}

// NewForfeitsHandler creates a new forfeits handler.
func NewForfeitsHandler(deps ForfeitsDependencies) *ForfeitsHandler {
	return &ForfeitsHandler{deps: deps}
}

// HandleGetForfeits handles GET /forfeits requests.
func (h *ForfeitsHandler) HandleGetForfeits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	assignments, err := h.deps.Forfeits(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	if assignments == nil {
		assignments = []Assignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}

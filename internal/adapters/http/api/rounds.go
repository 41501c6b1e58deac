package api

import (
	"context"
	"net/http"
)

// RoundsDependencies exposes which rounds the last run could rank.
type RoundsDependencies interface {
	Rounds(ctx context.Context) (ranked, missing []int, err error)
}

// RoundsHandler handles round listing requests.
type RoundsHandler struct {
	deps RoundsDependencies
}

type roundsResponse struct {
	Ranked         []int `json:"ranked"`
	MissingResults []int `json:"missing_results"`
}

// NewRoundsHandler creates a new rounds handler.
func NewRoundsHandler(deps RoundsDependencies) *RoundsHandler {
	return &RoundsHandler{deps: deps}
}

// HandleGetRounds handles GET /rounds requests.
func (h *RoundsHandler) HandleGetRounds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ranked, missing, err := h.deps.Rounds(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	if ranked == nil {
		ranked = []int{}
	}
	if missing == nil {
		missing = []int{}
	}
	writeJSON(w, http.StatusOK, roundsResponse{Ranked: ranked, MissingResults: missing})
}

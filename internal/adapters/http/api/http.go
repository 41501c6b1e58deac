// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/maulas/internal/domain/types"
)

// Dependencies required by HTTP handlers. The bundle is read-only; the
// pipeline owns every write.
type Dependencies interface {
	RoundsDependencies
	RankingDependencies
	ForfeitsDependencies
}

// Entry mirrors one ranking row.
type Entry = types.Entry

// Assignment mirrors one forfeit assignment.
type Assignment = types.Assignment

// Server wires HTTP routes for the read API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	roundsHandler   *RoundsHandler
	rankingHandler  *RankingHandler
	forfeitsHandler *ForfeitsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		roundsHandler:   NewRoundsHandler(deps),
		rankingHandler:  NewRankingHandler(deps, maxLimit),
		forfeitsHandler: NewForfeitsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rounds", MetricsMiddleware(s.roundsHandler.HandleGetRounds, "rounds"))
	mux.HandleFunc("/ranking/", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/forfeits", MetricsMiddleware(s.forfeitsHandler.HandleGetForfeits, "forfeits"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gexray/internal/store"
)

// Server serves the latest calculated snapshots. It reads the store only;
// calculation happens in the refresher.
type Server struct {
	store  *store.SnapshotStore
	logger *zap.Logger
}

func NewServer(st *store.SnapshotStore, logger *zap.Logger) *Server {
	return &Server{store: st, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"symbols": s.store.Symbols()})
}

// handleFull returns the complete snapshot: zones, levels, heatmaps,
// analytics.
func (s *Server) handleFull(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	snap, ok := s.store.Get(symbol)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no snapshot for " + symbol})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleLevels returns the compact charting payload.
func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	snap, ok := s.store.Get(symbol)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no snapshot for " + symbol})
		return
	}
	writeJSON(w, http.StatusOK, snap.Levels())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package rest

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"

	"github.com/fortuna/hockeyhook/internal/sim"
)

// Broadcaster pushes simulated results to live subscribers.
type Broadcaster interface {
	BroadcastResult(result sim.Result)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	teams       []sim.TeamConfig
	history     *sim.History
	stats       *sim.StatBook
	broadcaster Broadcaster

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewHandler creates a new handler
func NewHandler(teams []sim.TeamConfig, history *sim.History, stats *sim.StatBook, broadcaster Broadcaster, rng *rand.Rand) *Handler {
	return &Handler{
		teams:       teams,
		history:     history,
		stats:       stats,
		broadcaster: broadcaster,
		rng:         rng,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "simd",
		"version": "1.0.0",
	})
}

// GetTeams returns the configured teams and their rosters
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": h.teams})
}

// SimulateGame plays one game between two randomly chosen teams,
// records it, and broadcasts the result
func (h *Handler) SimulateGame(w http.ResponseWriter, r *http.Request) {
	h.rngMu.Lock()
	result, err := sim.Simulate(h.teams, h.rng)
	h.rngMu.Unlock()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to simulate game", err)
		return
	}

	if err := h.history.Add(result); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save game to history", err)
		return
	}
	if err := h.stats.Apply(result.Events); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update player stats", err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastResult(result)
	}

	respondJSON(w, http.StatusOK, result)
}

// GetHistory returns all recorded games, oldest first
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	games := h.history.All()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// ClearHistory discards all recorded games
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Clear(); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clear history", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "History cleared"})
}

// GetStats returns running player totals
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"players": h.stats.All()})
}

// ClearStats zeroes all player totals
func (h *Handler) ClearStats(w http.ResponseWriter, r *http.Request) {
	if err := h.stats.Clear(); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clear stats", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "Stats cleared"})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}

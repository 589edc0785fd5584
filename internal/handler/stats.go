package handler

import (
	"net/http"

	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
)

type StatsHandler struct {
	voteSvc *service.VoteService
}

func NewStatsHandler(voteSvc *service.VoteService) *StatsHandler {
	return &StatsHandler{voteSvc: voteSvc}
}

// GetVotingPower serves /api/power/{identity}.
func (h *StatsHandler) GetVotingPower(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	parts := pathParts(r)
	if len(parts) != 3 || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "invalid path format, expected /api/power/{identity}")
		return
	}

	power, err := h.voteSvc.VotingPower(r.Context(), parts[2])
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, power)
}

// GetUserStats serves /api/stats/{user}.
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	parts := pathParts(r)
	if len(parts) != 3 || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "invalid path format, expected /api/stats/{user}")
		return
	}

	stats, err := h.voteSvc.GetUserStats(r.Context(), parts[2])
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	entries, err := h.voteSvc.Leaderboard(r.Context(), queryLimit(r, 10, 100))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

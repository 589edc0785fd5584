package handler

import (
	"net/http"

	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
)

type StakeHandler struct {
	stakeSvc *service.StakeService
}

func NewStakeHandler(stakeSvc *service.StakeService) *StakeHandler {
	return &StakeHandler{stakeSvc: stakeSvc}
}

// GetStake serves /api/stake/{owner}.
func (h *StakeHandler) GetStake(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	parts := pathParts(r)
	if len(parts) != 3 || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "invalid path format, expected /api/stake/{owner}")
		return
	}

	pos, err := h.stakeSvc.GetStake(r.Context(), parts[2])
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pos)
}

func (h *StakeHandler) OpenPosition(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	owner, ok := caller(w, r)
	if !ok {
		return
	}

	pos, err := h.stakeSvc.OpenPosition(r.Context(), owner)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pos)
}

func (h *StakeHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	owner, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Amount       uint64 `json:"amount"`
		LockDuration int64  `json:"lock_duration"`
	}
	if !decode(w, r, &req) {
		return
	}

	pos, err := h.stakeSvc.Deposit(r.Context(), owner, req.Amount, req.LockDuration)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pos)
}

func (h *StakeHandler) Unstake(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	owner, ok := caller(w, r)
	if !ok {
		return
	}

	amount, err := h.stakeSvc.Unstake(r.Context(), owner)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"amount": amount,
	})
}

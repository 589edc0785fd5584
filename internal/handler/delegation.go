package handler

import (
	"net/http"

	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
)

type DelegationHandler struct {
	delegationSvc *service.DelegationService
}

func NewDelegationHandler(delegationSvc *service.DelegationService) *DelegationHandler {
	return &DelegationHandler{delegationSvc: delegationSvc}
}

// RegisterDelegate serves POST /api/delegates. Admin only.
func (h *DelegationHandler) RegisterDelegate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	admin, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Target string `json:"target"`
	}
	if !decode(w, r, &req) {
		return
	}

	profile, err := h.delegationSvc.RegisterDelegate(r.Context(), admin, req.Target)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// Delegate serves GET and DELETE /api/delegates/{identity}.
func (h *DelegationHandler) Delegate(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r)
	if len(parts) != 3 || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "invalid path format, expected /api/delegates/{identity}")
		return
	}
	target := parts[2]

	switch r.Method {
	case http.MethodGet:
		view, err := h.delegationSvc.GetDelegate(r.Context(), target)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	case http.MethodDelete:
		admin, ok := caller(w, r)
		if !ok {
			return
		}
		if err := h.delegationSvc.RemoveDelegate(r.Context(), admin, target); err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"removed": target,
		})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Delegation serves POST (delegate) and DELETE (revoke) /api/delegation for
// the caller.
func (h *DelegationHandler) Delegation(w http.ResponseWriter, r *http.Request) {
	user, ok := caller(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req struct {
			Target string `json:"target"`
		}
		if !decode(w, r, &req) {
			return
		}
		record, err := h.delegationSvc.DelegateVote(r.Context(), user, req.Target)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, record)
	case http.MethodDelete:
		if err := h.delegationSvc.RevokeDelegation(r.Context(), user); err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"revoked": user,
		})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// GetDelegation serves /api/delegation/{user}.
func (h *DelegationHandler) GetDelegation(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	parts := pathParts(r)
	if len(parts) != 3 || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "invalid path format, expected /api/delegation/{user}")
		return
	}

	record, err := h.delegationSvc.GetDelegation(r.Context(), parts[2])
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

package handler

import (
	"net/http"

	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
)

type AdminHandler struct {
	adminSvc *service.AdminService
	auditSvc *service.AuditService
}

func NewAdminHandler(adminSvc *service.AdminService, auditSvc *service.AuditService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, auditSvc: auditSvc}
}

func (h *AdminHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	cfg, err := h.adminSvc.GetConfig(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *AdminHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	admin, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		TokenID string `json:"token_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	cfg, err := h.adminSvc.Initialize(r.Context(), admin, req.TokenID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cfg)
}

func (h *AdminHandler) ToggleCircuitBreaker(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	admin, ok := caller(w, r)
	if !ok {
		return
	}

	enabled, err := h.adminSvc.ToggleCircuitBreaker(r.Context(), admin)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"system_enabled": enabled,
	})
}

func (h *AdminHandler) Mint(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	admin, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		To     string `json:"to"`
		Amount uint64 `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}

	ref, err := h.adminSvc.Mint(r.Context(), admin, req.To, req.Amount)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"to":        req.To,
		"amount":    req.Amount,
		"reference": ref,
	})
}

func (h *AdminHandler) RecentAudits(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	audits, err := h.auditSvc.Recent(r.Context(), queryLimit(r, 20, 100))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, audits)
}

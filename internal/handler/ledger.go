package handler

import (
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
)

type LedgerHandler struct {
	ledgerSvc *service.LedgerService
}

func NewLedgerHandler(ledgerSvc *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// GetBalance serves /api/balance/{account}.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	parts := pathParts(r)
	if len(parts) != 3 || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "invalid path format, expected /api/balance/{account}")
		return
	}

	balance, err := h.ledgerSvc.Balance(r.Context(), parts[2])
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"account": parts[2],
		"balance": balance,
	})
}

// GetHistory serves /api/history/{account}.
func (h *LedgerHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	parts := pathParts(r)
	if len(parts) != 3 || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "invalid path format, expected /api/history/{account}")
		return
	}

	histories, err := h.ledgerSvc.History(r.Context(), parts[2], queryLimit(r, 20, 100))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	items := lo.Map(histories, func(entry models.BalanceHistory, _ int) map[string]interface{} {
		return map[string]interface{}{
			"timestamp":     time.Unix(entry.Timestamp, 0).UTC().Format(time.RFC3339),
			"changeType":    entry.ChangeType,
			"counterparty":  entry.Counterparty,
			"balanceBefore": entry.BalanceBefore,
			"balanceAfter":  entry.BalanceAfter,
			"changeAmount":  entry.ChangeAmount,
			"reference":     entry.Reference,
		}
	})
	writeJSON(w, http.StatusOK, items)
}

func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	from, ok := caller(w, r)
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

	ref, err := h.ledgerSvc.Transfer(r.Context(), from, req.To, req.Amount)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reference": ref,
	})
}

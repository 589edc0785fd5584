package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

// CallerHeader carries the identity of the authenticated caller. It is set by
// the gateway in front of this service.
const CallerHeader = "X-Caller-Address"

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// StatusFor maps an error to its HTTP status by taxonomy group.
func StatusFor(err error) int {
	code := errors.CodeOf(err)
	if errors.IsNotFound(err) {
		return http.StatusNotFound
	}
	switch errors.CategoryOf(code) {
	case errors.CategoryState:
		return http.StatusConflict
	case errors.CategoryAuthorization:
		return http.StatusForbidden
	case errors.CategoryResource:
		return http.StatusBadRequest
	case errors.CategorySystem:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := errors.CodeOf(err)

	fields := map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"code":   code,
		"error":  err,
	}
	if status >= http.StatusInternalServerError {
		logger.WithFields(fields).Error("Request failed")
	} else {
		logger.WithFields(fields).Debug("Request rejected")
	}

	message := err.Error()
	var appErr *errors.AppError
	if errors.As(err, &appErr) && status < http.StatusInternalServerError {
		message = appErr.Message
	}
	writeJSON(w, status, map[string]string{"error": message, "code": code})
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// caller returns the identity from CallerHeader, writing 401 when absent.
func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	c := strings.TrimSpace(r.Header.Get(CallerHeader))
	if c == "" {
		writeError(w, http.StatusUnauthorized, CallerHeader+" header is required")
		return "", false
	}
	return c, true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func pathParts(r *http.Request) []string {
	return strings.Split(strings.Trim(r.URL.Path, "/"), "/")
}

func queryLimit(r *http.Request, def, max int) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > max {
		limit = def
	}
	return limit
}

// Recover turns a panic in next into a 500. Overflow checks in the governance
// rules panic; the store transaction has already rolled back by then.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithFields(map[string]interface{}{
					"method": r.Method,
					"path":   r.URL.Path,
					"panic":  rec,
				}).Error("Recovered from panic")
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// NewRouter registers every endpoint on a ServeMux wrapped in Recover.
func NewRouter(svc *service.Services) http.Handler {
	router := http.NewServeMux()

	adminHandler := NewAdminHandler(svc.Admin, svc.Audit)
	ledgerHandler := NewLedgerHandler(svc.Ledger)
	stakeHandler := NewStakeHandler(svc.Stake)
	delegationHandler := NewDelegationHandler(svc.Delegation)
	proposalHandler := NewProposalHandler(svc.Proposal, svc.Vote, svc.Treasury, svc.Audit)
	statsHandler := NewStatsHandler(svc.Vote)

	router.HandleFunc("/api/config", adminHandler.GetConfig)
	router.HandleFunc("/api/admin/initialize", adminHandler.Initialize)
	router.HandleFunc("/api/admin/circuit-breaker", adminHandler.ToggleCircuitBreaker)
	router.HandleFunc("/api/admin/mint", adminHandler.Mint)
	router.HandleFunc("/api/audits", adminHandler.RecentAudits)

	router.HandleFunc("/api/balance/", ledgerHandler.GetBalance)
	router.HandleFunc("/api/history/", ledgerHandler.GetHistory)
	router.HandleFunc("/api/transfer", ledgerHandler.Transfer)

	router.HandleFunc("/api/stake/", stakeHandler.GetStake)
	router.HandleFunc("/api/stake/open", stakeHandler.OpenPosition)
	router.HandleFunc("/api/stake/deposit", stakeHandler.Deposit)
	router.HandleFunc("/api/stake/unstake", stakeHandler.Unstake)

	router.HandleFunc("/api/delegates", delegationHandler.RegisterDelegate)
	router.HandleFunc("/api/delegates/", delegationHandler.Delegate)
	router.HandleFunc("/api/delegation", delegationHandler.Delegation)
	router.HandleFunc("/api/delegation/", delegationHandler.GetDelegation)

	router.HandleFunc("/api/proposals", proposalHandler.Proposals)
	router.HandleFunc("/api/proposals/treasury", proposalHandler.CreateTreasuryProposal)
	router.HandleFunc("/api/proposals/", proposalHandler.Proposal)

	router.HandleFunc("/api/power/", statsHandler.GetVotingPower)
	router.HandleFunc("/api/stats/", statsHandler.GetUserStats)
	router.HandleFunc("/api/leaderboard", statsHandler.GetLeaderboard)

	router.HandleFunc("/health", HandleHealth)

	return Recover(router)
}

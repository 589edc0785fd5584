package handler

import (
	"net/http"
	"strconv"

	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
)

type ProposalHandler struct {
	proposalSvc *service.ProposalService
	voteSvc     *service.VoteService
	treasurySvc *service.TreasuryService
	auditSvc    *service.AuditService
}

func NewProposalHandler(
	proposalSvc *service.ProposalService,
	voteSvc *service.VoteService,
	treasurySvc *service.TreasuryService,
	auditSvc *service.AuditService,
) *ProposalHandler {
	return &ProposalHandler{
		proposalSvc: proposalSvc,
		voteSvc:     voteSvc,
		treasurySvc: treasurySvc,
		auditSvc:    auditSvc,
	}
}

// Proposals serves GET (list) and POST (create standard) /api/proposals.
func (h *ProposalHandler) Proposals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listProposals(w, r)
	case http.MethodPost:
		h.createProposal(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ProposalHandler) listProposals(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize

	proposals, total, err := h.proposalSvc.ListProposals(r.Context(), offset, pageSize)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":    proposals,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func (h *ProposalHandler) createProposal(w http.ResponseWriter, r *http.Request) {
	author, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Deadline    int64  `json:"deadline"`
	}
	if !decode(w, r, &req) {
		return
	}

	p, err := h.proposalSvc.CreateProposal(r.Context(), author, req.Title, req.Description, req.Deadline)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProposalHandler) CreateTreasuryProposal(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	author, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		Deadline        int64  `json:"deadline"`
		Amount          uint64 `json:"amount"`
		Destination     string `json:"destination"`
		TimelockSeconds int64  `json:"timelock_seconds"`
	}
	if !decode(w, r, &req) {
		return
	}

	p, err := h.proposalSvc.CreateTreasuryProposal(r.Context(), author, service.TreasuryDraft{
		Title:           req.Title,
		Description:     req.Description,
		Deadline:        req.Deadline,
		Amount:          req.Amount,
		Destination:     req.Destination,
		TimelockSeconds: req.TimelockSeconds,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Proposal dispatches /api/proposals/{number}[/{action}[/{voter}]].
func (h *ProposalHandler) Proposal(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r)
	if len(parts) < 3 {
		writeError(w, http.StatusBadRequest, "invalid path format, expected /api/proposals/{number}")
		return
	}
	number, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid proposal number: "+parts[2])
		return
	}

	if len(parts) == 3 {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		p, err := h.proposalSvc.GetProposal(r.Context(), number)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
		return
	}

	switch action := parts[3]; {
	case action == "votes" && len(parts) == 5:
		h.getVote(w, r, number, parts[4])
	case len(parts) != 4:
		writeError(w, http.StatusNotFound, "not found")
	case action == "escrow":
		h.getEscrow(w, r, number)
	case action == "vote":
		h.vote(w, r, number)
	case action == "withdraw":
		h.withdraw(w, r, number)
	case action == "proxy-vote":
		h.proxyVote(w, r, number)
	case action == "proxy-withdraw":
		h.proxyWithdraw(w, r, number)
	case action == "execute":
		h.execute(w, r, number)
	case action == "reclaim":
		h.reclaim(w, r, number)
	case action == "audit":
		h.audit(w, r, number)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *ProposalHandler) getEscrow(w http.ResponseWriter, r *http.Request, number uint64) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	escrow, err := h.proposalSvc.GetEscrow(r.Context(), number)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, escrow)
}

func (h *ProposalHandler) getVote(w http.ResponseWriter, r *http.Request, number uint64, voter string) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	rec, err := h.voteSvc.GetVote(r.Context(), number, voter)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type ballotRequest struct {
	Delegator string `json:"delegator"`
	Yes       *bool  `json:"yes"`
}

func (h *ProposalHandler) decodeBallot(w http.ResponseWriter, r *http.Request, needDelegator bool) (*ballotRequest, bool) {
	var req ballotRequest
	if !decode(w, r, &req) {
		return nil, false
	}
	if req.Yes == nil {
		writeError(w, http.StatusBadRequest, "yes is required")
		return nil, false
	}
	if needDelegator && req.Delegator == "" {
		writeError(w, http.StatusBadRequest, "delegator is required")
		return nil, false
	}
	return &req, true
}

func (h *ProposalHandler) vote(w http.ResponseWriter, r *http.Request, number uint64) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	voter, ok := caller(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeBallot(w, r, false)
	if !ok {
		return
	}

	rec, err := h.voteSvc.Vote(r.Context(), voter, number, *req.Yes)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ProposalHandler) withdraw(w http.ResponseWriter, r *http.Request, number uint64) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	voter, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.voteSvc.WithdrawVote(r.Context(), voter, number); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"proposal": number,
		"voter":    voter,
	})
}

func (h *ProposalHandler) proxyVote(w http.ResponseWriter, r *http.Request, number uint64) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	proxy, ok := caller(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeBallot(w, r, true)
	if !ok {
		return
	}

	rec, err := h.voteSvc.VoteAsProxy(r.Context(), proxy, number, req.Delegator, *req.Yes)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ProposalHandler) proxyWithdraw(w http.ResponseWriter, r *http.Request, number uint64) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	proxy, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Delegator string `json:"delegator"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Delegator == "" {
		writeError(w, http.StatusBadRequest, "delegator is required")
		return
	}

	if err := h.voteSvc.WithdrawAsProxy(r.Context(), proxy, number, req.Delegator); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"proposal":  number,
		"delegator": req.Delegator,
	})
}

func (h *ProposalHandler) execute(w http.ResponseWriter, r *http.Request, number uint64) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	executor, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Destination string `json:"destination"`
	}
	if !decode(w, r, &req) {
		return
	}

	settlement, err := h.treasurySvc.Execute(r.Context(), executor, number, req.Destination)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}

func (h *ProposalHandler) reclaim(w http.ResponseWriter, r *http.Request, number uint64) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	author, ok := caller(w, r)
	if !ok {
		return
	}

	settlement, err := h.treasurySvc.Reclaim(r.Context(), author, number)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}

func (h *ProposalHandler) audit(w http.ResponseWriter, r *http.Request, number uint64) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	audit, err := h.auditSvc.AuditProposal(r.Context(), number)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, audit)
}

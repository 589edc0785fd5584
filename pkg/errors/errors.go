package errors

import (
	stderrors "errors"
	"fmt"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target carries the same code, so wrapped AppErrors match
// the sentinels below through errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap attaches cause to a copy of a sentinel.
func Wrap(sentinel *AppError, err error) *AppError {
	return New(sentinel.Code, sentinel.Message, err)
}

const (
	CategoryState         = "state"
	CategoryAuthorization = "authorization"
	CategoryResource      = "resource"
	CategorySystem        = "system"
	CategoryInternal      = "internal"
)

var (
	ErrConfigLoad      = "CONFIG_LOAD_ERROR"
	ErrDatabaseConnect = "DATABASE_CONNECT_ERROR"
	ErrStore           = "STORE_ERROR"
)

// Governance codes.
const (
	CodeProposalNotActive   = "PROPOSAL_NOT_ACTIVE"
	CodeProposalExpired     = "PROPOSAL_EXPIRED"
	CodeAlreadyExecuted     = "ALREADY_EXECUTED"
	CodeAlreadyVoted        = "ALREADY_VOTED"
	CodeProposalNotEnded    = "PROPOSAL_NOT_ENDED"
	CodeTimelockNotPassed   = "TIMELOCK_NOT_PASSED"
	CodeProposalNotPassed   = "PROPOSAL_NOT_PASSED"
	CodeProposalPassed      = "PROPOSAL_PASSED"
	CodeNotTreasuryProposal = "NOT_TREASURY_PROPOSAL"
	CodeNoActiveVote        = "NO_ACTIVE_VOTE"
	CodeProxyVoteLocked     = "PROXY_VOTE_LOCKED"
	CodePositionExists      = "POSITION_EXISTS"
	CodeNotInitialized      = "NOT_INITIALIZED"
	CodeAlreadyInitialized  = "ALREADY_INITIALIZED"
	CodeConcurrentUpdate    = "CONCURRENT_UPDATE"

	CodeUnauthorized              = "UNAUTHORIZED"
	CodeInvalidDelegate           = "INVALID_DELEGATE"
	CodeDelegateCannotDelegate    = "DELEGATE_CANNOT_DELEGATE"
	CodeDelegatorCannotBeDelegate = "DELEGATOR_CANNOT_BE_DELEGATE"
	CodeDelegationLoop            = "DELEGATION_LOOP"
	CodeDelegatorsCannotVote      = "DELEGATORS_CANNOT_VOTE"
	CodeInvalidIdentity           = "INVALID_IDENTITY"

	CodeTokensLocked        = "TOKENS_LOCKED"
	CodeNoTokensToUnstake   = "NO_TOKENS_TO_UNSTAKE"
	CodeNoVotingPower       = "NO_VOTING_POWER"
	CodeInvalidLockDuration = "INVALID_LOCK_DURATION"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeProposalNotFound    = "PROPOSAL_NOT_FOUND"
	CodePositionNotFound    = "POSITION_NOT_FOUND"
	CodeDelegationNotFound  = "DELEGATION_NOT_FOUND"
	CodeDelegateNotFound    = "DELEGATE_NOT_FOUND"
	CodeVoteNotFound        = "VOTE_NOT_FOUND"
	CodeInvalidProposal     = "INVALID_PROPOSAL"
	CodeInvalidToken        = "INVALID_TOKEN"

	CodeCircuitBreakerTripped = "CIRCUIT_BREAKER_TRIPPED"
)

var (
	ErrProposalNotActive   = New(CodeProposalNotActive, "proposal is not active", nil)
	ErrProposalExpired     = New(CodeProposalExpired, "proposal has expired", nil)
	ErrAlreadyExecuted     = New(CodeAlreadyExecuted, "proposal has already been executed", nil)
	ErrAlreadyVoted        = New(CodeAlreadyVoted, "already voted for this option", nil)
	ErrProposalNotEnded    = New(CodeProposalNotEnded, "proposal voting has not ended yet", nil)
	ErrTimelockNotPassed   = New(CodeTimelockNotPassed, "timelock period has not passed yet", nil)
	ErrProposalNotPassed   = New(CodeProposalNotPassed, "proposal was not approved", nil)
	ErrProposalPassed      = New(CodeProposalPassed, "proposal passed, funds cannot be reclaimed", nil)
	ErrNotTreasuryProposal = New(CodeNotTreasuryProposal, "proposal is not a treasury proposal", nil)
	ErrNoActiveVote        = New(CodeNoActiveVote, "no active vote to withdraw", nil)
	ErrProxyVoteLocked     = New(CodeProxyVoteLocked, "vote was cast by proxy and is locked", nil)
	ErrPositionExists      = New(CodePositionExists, "stake position already exists", nil)
	ErrNotInitialized      = New(CodeNotInitialized, "governance is not initialized", nil)
	ErrAlreadyInitialized  = New(CodeAlreadyInitialized, "governance is already initialized", nil)
	ErrConcurrentUpdate    = New(CodeConcurrentUpdate, "record was modified concurrently", nil)

	ErrUnauthorized              = New(CodeUnauthorized, "unauthorized", nil)
	ErrInvalidDelegate           = New(CodeInvalidDelegate, "delegate is not authorized or inactive", nil)
	ErrDelegateCannotDelegate    = New(CodeDelegateCannotDelegate, "delegates cannot delegate", nil)
	ErrDelegatorCannotBeDelegate = New(CodeDelegatorCannotBeDelegate, "delegators cannot become delegates", nil)
	ErrDelegationLoop            = New(CodeDelegationLoop, "delegation loop detected", nil)
	ErrDelegatorsCannotVote      = New(CodeDelegatorsCannotVote, "voting power is delegated, revoke delegation to vote", nil)
	ErrInvalidIdentity           = New(CodeInvalidIdentity, "invalid identity", nil)

	ErrTokensLocked        = New(CodeTokensLocked, "tokens are still locked", nil)
	ErrNoTokensToUnstake   = New(CodeNoTokensToUnstake, "no tokens to unstake", nil)
	ErrNoVotingPower       = New(CodeNoVotingPower, "no voting power available", nil)
	ErrInvalidLockDuration = New(CodeInvalidLockDuration, "invalid lock duration", nil)
	ErrInvalidAmount       = New(CodeInvalidAmount, "amount must be greater than 0", nil)
	ErrInsufficientBalance = New(CodeInsufficientBalance, "insufficient balance", nil)
	ErrProposalNotFound    = New(CodeProposalNotFound, "proposal not found", nil)
	ErrPositionNotFound    = New(CodePositionNotFound, "stake position not found", nil)
	ErrDelegationNotFound  = New(CodeDelegationNotFound, "delegation not found", nil)
	ErrDelegateNotFound    = New(CodeDelegateNotFound, "delegate not found", nil)
	ErrVoteNotFound        = New(CodeVoteNotFound, "vote record not found", nil)
	ErrInvalidProposal     = New(CodeInvalidProposal, "invalid proposal parameters", nil)
	ErrInvalidToken        = New(CodeInvalidToken, "token id is required", nil)

	ErrCircuitBreakerTripped = New(CodeCircuitBreakerTripped, "system is offline (circuit breaker tripped)", nil)
)

var categories = map[string]string{
	CodeProposalNotActive:   CategoryState,
	CodeProposalExpired:     CategoryState,
	CodeAlreadyExecuted:     CategoryState,
	CodeAlreadyVoted:        CategoryState,
	CodeProposalNotEnded:    CategoryState,
	CodeTimelockNotPassed:   CategoryState,
	CodeProposalNotPassed:   CategoryState,
	CodeProposalPassed:      CategoryState,
	CodeNotTreasuryProposal: CategoryState,
	CodeNoActiveVote:        CategoryState,
	CodeProxyVoteLocked:     CategoryState,
	CodePositionExists:      CategoryState,
	CodeNotInitialized:      CategoryState,
	CodeAlreadyInitialized:  CategoryState,
	CodeConcurrentUpdate:    CategoryState,

	CodeUnauthorized:              CategoryAuthorization,
	CodeInvalidDelegate:           CategoryAuthorization,
	CodeDelegateCannotDelegate:    CategoryAuthorization,
	CodeDelegatorCannotBeDelegate: CategoryAuthorization,
	CodeDelegationLoop:            CategoryAuthorization,
	CodeDelegatorsCannotVote:      CategoryAuthorization,
	CodeInvalidIdentity:           CategoryAuthorization,

	CodeTokensLocked:        CategoryResource,
	CodeNoTokensToUnstake:   CategoryResource,
	CodeNoVotingPower:       CategoryResource,
	CodeInvalidLockDuration: CategoryResource,
	CodeInvalidAmount:       CategoryResource,
	CodeInsufficientBalance: CategoryResource,
	CodeProposalNotFound:    CategoryResource,
	CodePositionNotFound:    CategoryResource,
	CodeDelegationNotFound:  CategoryResource,
	CodeDelegateNotFound:    CategoryResource,
	CodeVoteNotFound:        CategoryResource,
	CodeInvalidProposal:     CategoryResource,
	CodeInvalidToken:        CategoryResource,

	CodeCircuitBreakerTripped: CategorySystem,
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// CategoryOf maps a code to its taxonomy group. Unknown codes are internal.
func CategoryOf(code string) string {
	if c, ok := categories[code]; ok {
		return c
	}
	return CategoryInternal
}

// IsNotFound reports whether err is one of the missing-record codes.
func IsNotFound(err error) bool {
	switch CodeOf(err) {
	case CodeProposalNotFound, CodePositionNotFound, CodeDelegationNotFound, CodeDelegateNotFound, CodeVoteNotFound:
		return true
	}
	return false
}

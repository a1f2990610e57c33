package errors

import "errors"

var (
	ErrInvalidVoteInput  = errors.New("invalid vote input")
	ErrInvalidVoteType   = errors.New("invalid vote type")
	ErrVoteNotFound      = errors.New("vote not found")
	ErrVoteRateLimited   = errors.New("vote rate limit exceeded")
	ErrLedgerUnavailable = errors.New("vote ledger unavailable")
)

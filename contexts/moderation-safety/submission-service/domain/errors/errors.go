package errors

import "errors"

var (
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrInvalidSubmissionInput  = errors.New("invalid submission input")
	ErrInvalidStatusTransition = errors.New("invalid submission status transition")
	ErrDuplicateSubmission     = errors.New("duplicate submission")
	ErrSubmissionRateLimited   = errors.New("submission rate limit exceeded")
	ErrAlreadyReviewed         = errors.New("submission already reviewed")
	ErrInvalidReviewDecision   = errors.New("invalid review decision")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrAnalysisRequired        = errors.New("analysis data is required before publishing")
	ErrRepositoryUnavailable   = errors.New("submission repository unavailable")
)

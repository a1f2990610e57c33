package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	submissionerrors "perseval/contexts/moderation-safety/submission-service/domain/errors"
	submissionhttp "perseval/contexts/moderation-safety/submission-service/transport/http"
	"perseval/internal/platform/ratelimit"
)

func writeSubmissionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, submissionerrors.ErrInvalidSubmissionInput),
		errors.Is(err, submissionerrors.ErrInvalidReviewDecision),
		errors.Is(err, submissionerrors.ErrRejectionReasonRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, submissionerrors.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, submissionerrors.ErrDuplicateSubmission):
		writeError(w, http.StatusConflict, "duplicate_submission", err.Error())
	case errors.Is(err, submissionerrors.ErrInvalidStatusTransition),
		errors.Is(err, submissionerrors.ErrAlreadyReviewed),
		errors.Is(err, submissionerrors.ErrAnalysisRequired):
		writeError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, submissionerrors.ErrSubmissionRateLimited):
		writeError(w, http.StatusTooManyRequests, "submission_rate_limited", err.Error())
	case errors.Is(err, submissionerrors.ErrRepositoryUnavailable):
		writeError(w, http.StatusServiceUnavailable, "repository_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, ratelimit.GroupSubmission) {
		return
	}

	var req submissionhttp.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.submissions.Handler.CreateSubmissionHandler(r.Context(), resolveCallerIdentity(r), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	submissionsCreatedCounter.Inc()
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMySubmissions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.ListMySubmissionsHandler(r.Context(), resolveCallerIdentity(r))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.GetSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminListSubmissions(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	query := r.URL.Query()
	limit, err := parseIntQuery(query.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return
	}
	offset, err := parseIntQuery(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_offset", "offset must be an integer")
		return
	}

	resp, err := s.submissions.Handler.ListSubmissionsHandler(r.Context(), query.Get("status"), limit, offset)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminTriggerAnalysis(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	resp, err := s.submissions.Handler.TriggerAnalysisHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdminReviewSubmission(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	var req submissionhttp.ReviewSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	reviewedBy := strings.TrimSpace(r.Header.Get("X-Admin-Id"))
	if reviewedBy == "" {
		reviewedBy = "admin"
	}

	resp, err := s.submissions.Handler.ReviewSubmissionHandler(
		r.Context(),
		reviewedBy,
		r.PathValue("submission_id"),
		req,
	)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	votingerrors "perseval/contexts/community-experience/voting-ledger/domain/errors"
	votinghttp "perseval/contexts/community-experience/voting-ledger/transport/http"
	"perseval/internal/platform/ratelimit"
)

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidVoteInput),
		errors.Is(err, votingerrors.ErrInvalidVoteType):
		writeError(w, http.StatusBadRequest, "invalid_vote", err.Error())
	case errors.Is(err, votingerrors.ErrVoteNotFound):
		writeError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrVoteRateLimited):
		writeError(w, http.StatusTooManyRequests, "vote_rate_limited", err.Error())
	case errors.Is(err, votingerrors.ErrLedgerUnavailable):
		writeError(w, http.StatusServiceUnavailable, "ledger_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.SubmitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.votes.Handler.SubmitVoteHandler(
		r.Context(),
		r.PathValue("handle"),
		resolvePlatform(r),
		resolveCallerIdentity(r),
		req,
	)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	votesRecordedCounter.WithLabelValues(resp.VoteType).Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVotes(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, ratelimit.GroupVoteRead) {
		return
	}

	resp, err := s.votes.Handler.GetVotesHandler(
		r.Context(),
		r.PathValue("handle"),
		resolvePlatform(r),
		resolveCallerIdentity(r),
	)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVote(w http.ResponseWriter, r *http.Request) {
	resp, err := s.votes.Handler.DeleteVoteHandler(
		r.Context(),
		r.PathValue("handle"),
		resolvePlatform(r),
		resolveCallerIdentity(r),
	)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListVoteStats(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, ratelimit.GroupVoteRead) {
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

	resp, err := s.votes.Handler.ListVoteStatsHandler(r.Context(), limit, offset)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

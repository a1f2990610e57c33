package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	assessmenterrors "perseval/contexts/trust-intelligence/assessment-service/domain/errors"
	assessmenthttp "perseval/contexts/trust-intelligence/assessment-service/transport/http"
	"perseval/internal/platform/ratelimit"
)

func writeAssessmentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assessmenterrors.ErrEmptyAnalysisText),
		errors.Is(err, assessmenterrors.ErrEmptyHandle),
		errors.Is(err, assessmenterrors.ErrEmptyEntityName),
		errors.Is(err, assessmenterrors.ErrUnsupportedEntityKind):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, assessmenterrors.ErrClassifierUnavailable),
		errors.Is(err, assessmenterrors.ErrProfileUnavailable):
		writeError(w, http.StatusBadGateway, "upstream_unavailable", err.Error())
	case errors.Is(err, assessmenterrors.ErrCacheUnavailable):
		writeError(w, http.StatusServiceUnavailable, "cache_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, ratelimit.GroupAnalysis) {
		return
	}

	var req assessmenthttp.AnalyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.assessment.Handler.AnalyzeTextHandler(r.Context(), req)
	if err != nil {
		writeAssessmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInfluencerTrust(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, ratelimit.GroupTrust) {
		return
	}

	var req assessmenthttp.InfluencerTrustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.assessment.Handler.InfluencerTrustHandler(r.Context(), req)
	if err != nil {
		writeAssessmentDomainError(w, err)
		return
	}
	assessmentsComputedCounter.WithLabelValues("influencer", cacheLabel(resp.FromCache)).Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompanyTrust(w http.ResponseWriter, r *http.Request) {
	s.handleEntityTrust(w, r, "company", s.assessment.Handler.CompanyTrustHandler)
}

func (s *Server) handleProductTrust(w http.ResponseWriter, r *http.Request) {
	s.handleEntityTrust(w, r, "product", s.assessment.Handler.ProductTrustHandler)
}

func (s *Server) handleEntityTrust(
	w http.ResponseWriter,
	r *http.Request,
	kind string,
	handler func(ctx context.Context, req assessmenthttp.EntityTrustRequest) (assessmenthttp.EntityTrustResponse, error),
) {
	if !s.allowRate(w, r, ratelimit.GroupTrust) {
		return
	}

	var req assessmenthttp.EntityTrustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := handler(r.Context(), req)
	if err != nil {
		writeAssessmentDomainError(w, err)
		return
	}
	assessmentsComputedCounter.WithLabelValues(kind, cacheLabel(resp.FromCache)).Inc()
	writeJSON(w, http.StatusOK, resp)
}

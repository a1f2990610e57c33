package httpserver

import (
	"errors"
	"net/http"

	marketplaceerrors "perseval/contexts/community-experience/marketplace-service/domain/errors"
)

func writeMarketplaceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, marketplaceerrors.ErrInvalidListingInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, marketplaceerrors.ErrListingNotFound):
		writeError(w, http.StatusNotFound, "listing_not_found", err.Error())
	case errors.Is(err, marketplaceerrors.ErrMarketplaceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "marketplace_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListMarketplace(w http.ResponseWriter, r *http.Request) {
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

	resp, err := s.marketplace.Handler.ListListingsHandler(
		r.Context(),
		query.Get("search"),
		query.Get("trust_label"),
		query.Get("sort_by"),
		query.Get("sort_order"),
		limit,
		offset,
	)
	if err != nil {
		writeMarketplaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	resp, err := s.marketplace.Handler.GetListingHandler(r.Context(), r.PathValue("handle"), resolvePlatform(r))
	if err != nil {
		writeMarketplaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveListing(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	resp, err := s.marketplace.Handler.RemoveListingHandler(r.Context(), r.PathValue("handle"), resolvePlatform(r))
	if err != nil {
		writeMarketplaceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

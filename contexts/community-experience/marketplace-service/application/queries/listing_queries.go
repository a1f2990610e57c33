package queries

import (
	"context"
	"log/slog"
	"strings"

	"perseval/contexts/community-experience/marketplace-service/domain/entities"
	domainerrors "perseval/contexts/community-experience/marketplace-service/domain/errors"
	"perseval/contexts/community-experience/marketplace-service/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	defaultPlatform  = "instagram"
)

type ListListingsQuery struct {
	Search     string
	TrustLabel string
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

type ListingPage struct {
	Items []entities.Listing
	Total int64
}

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetListing(ctx context.Context, handle, platform string) (entities.Listing, error) {
	normalized := entities.NormalizeHandle(handle)
	if normalized == "" {
		return entities.Listing{}, domainerrors.ErrInvalidListingInput
	}
	cleanPlatform := strings.ToLower(strings.TrimSpace(platform))
	if cleanPlatform == "" {
		cleanPlatform = defaultPlatform
	}
	return uc.Repository.GetListing(ctx, normalized, cleanPlatform)
}

func (uc QueryUseCase) ListListings(ctx context.Context, query ListListingsQuery) (ListingPage, error) {
	filter := ports.ListingFilter{
		Search:     strings.TrimSpace(query.Search),
		TrustLabel: strings.ToLower(strings.TrimSpace(query.TrustLabel)),
		SortBy:     normalizeSortBy(query.SortBy),
		SortOrder:  normalizeSortOrder(query.SortOrder),
		Limit:      query.Limit,
		Offset:     query.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	items, total, err := uc.Repository.ListListings(ctx, filter)
	if err != nil {
		return ListingPage{}, err
	}
	return ListingPage{Items: items, Total: total}, nil
}

func normalizeSortBy(sortBy string) string {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "followers":
		return "followers"
	case "user_trust_score":
		return "user_trust_score"
	case "created_at":
		return "created_at"
	default:
		return "trust_score"
	}
}

func normalizeSortOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		return "asc"
	}
	return "desc"
}

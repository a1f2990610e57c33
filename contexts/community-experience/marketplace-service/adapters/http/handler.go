package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"perseval/contexts/community-experience/marketplace-service/application/commands"
	"perseval/contexts/community-experience/marketplace-service/application/queries"
	"perseval/contexts/community-experience/marketplace-service/domain/entities"
	httptransport "perseval/contexts/community-experience/marketplace-service/transport/http"
)

type Handler struct {
	Marketplace commands.MarketplaceUseCase
	Queries     queries.QueryUseCase
	Logger      *slog.Logger
}

func (h Handler) GetListingHandler(ctx context.Context, handle, platform string) (httptransport.GetListingResponse, error) {
	item, err := h.Queries.GetListing(ctx, handle, platform)
	if err != nil {
		return httptransport.GetListingResponse{}, err
	}
	return httptransport.GetListingResponse{Listing: mapListing(item)}, nil
}

func (h Handler) ListListingsHandler(
	ctx context.Context,
	search, trustLabel, sortBy, sortOrder string,
	limit, offset int,
) (httptransport.ListListingsResponse, error) {
	page, err := h.Queries.ListListings(ctx, queries.ListListingsQuery{
		Search:     search,
		TrustLabel: trustLabel,
		SortBy:     sortBy,
		SortOrder:  sortOrder,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	items := make([]httptransport.ListingDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, mapListing(item))
	}
	return httptransport.ListListingsResponse{Items: items, Total: page.Total}, nil
}

func (h Handler) RemoveListingHandler(ctx context.Context, handle, platform string) (httptransport.RemoveListingResponse, error) {
	if err := h.Marketplace.Remove(ctx, handle, platform); err != nil {
		return httptransport.RemoveListingResponse{}, err
	}
	return httptransport.RemoveListingResponse{
		Removed: true,
		Handle:  entities.NormalizeHandle(handle),
	}, nil
}

func mapListing(item entities.Listing) httptransport.ListingDTO {
	return httptransport.ListingDTO{
		ID:             item.ListingID,
		Handle:         item.Handle,
		Platform:       item.Platform,
		FullName:       item.FullName,
		Followers:      item.Followers,
		Following:      item.Following,
		PostsCount:     item.PostsCount,
		IsVerified:     item.IsVerified,
		Bio:            item.Bio,
		ProfileURL:     item.ProfileURL,
		TrustScore:     item.TrustScore,
		TrustLabel:     item.TrustLabel,
		Notes:          item.Notes,
		UserTrustScore: item.UserTrustScore,
		TotalVotes:     item.TotalVotes,
		IsFeatured:     item.IsFeatured,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
}

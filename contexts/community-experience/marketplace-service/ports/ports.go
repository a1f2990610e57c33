package ports

import (
	"context"
	"time"

	"perseval/contexts/community-experience/marketplace-service/domain/entities"
)

type ListingFilter struct {
	// Search matches handle and full name, case-insensitive substring.
	Search     string
	TrustLabel string
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

type Repository interface {
	// UpsertListing inserts or refreshes the row for (handle, platform) and
	// returns the listing id.
	UpsertListing(ctx context.Context, listing entities.Listing) (string, error)
	GetListing(ctx context.Context, handle, platform string) (entities.Listing, error)
	// ListListings orders featured rows first, then by the filter sort.
	ListListings(ctx context.Context, filter ListingFilter) ([]entities.Listing, int64, error)
	RemoveListing(ctx context.Context, handle, platform string) error
	UpdateVoteStats(ctx context.Context, handle, platform string, userTrustScore float64, totalVotes int64) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

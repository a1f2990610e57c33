package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "perseval/contexts/community-experience/marketplace-service/application"
	"perseval/contexts/community-experience/marketplace-service/domain/entities"
	domainerrors "perseval/contexts/community-experience/marketplace-service/domain/errors"
	"perseval/contexts/community-experience/marketplace-service/ports"
)

type PublishListingCommand struct {
	Handle     string
	Platform   string
	FullName   string
	Followers  int64
	Following  int64
	PostsCount int64
	IsVerified bool
	Bio        string
	ProfileURL string
	TrustScore float64
	TrustLabel string
	Notes      string
}

// MarketplaceUseCase owns listing writes: publication on approval, vote stat
// sync, and admin removal.
type MarketplaceUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Publish inserts or refreshes the listing for the handle and returns its id.
// Vote stats on an existing row are preserved by the repository upsert.
func (uc MarketplaceUseCase) Publish(ctx context.Context, cmd PublishListingCommand) (string, error) {
	logger := application.ResolveLogger(uc.Logger)

	now := uc.Clock.Now().UTC()
	listing := entities.Listing{
		Handle:     entities.NormalizeHandle(cmd.Handle),
		Platform:   strings.ToLower(strings.TrimSpace(cmd.Platform)),
		FullName:   strings.TrimSpace(cmd.FullName),
		Followers:  cmd.Followers,
		Following:  cmd.Following,
		PostsCount: cmd.PostsCount,
		IsVerified: cmd.IsVerified,
		Bio:        cmd.Bio,
		ProfileURL: strings.TrimSpace(cmd.ProfileURL),
		TrustScore: cmd.TrustScore,
		TrustLabel: strings.TrimSpace(cmd.TrustLabel),
		Notes:      cmd.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if !listing.ValidatePublish() {
		return "", domainerrors.ErrInvalidListingInput
	}

	listingID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return "", err
	}
	listing.ListingID = listingID

	storedID, err := uc.Repository.UpsertListing(ctx, listing)
	if err != nil {
		return "", err
	}

	logger.Info("marketplace listing published",
		"event", "marketplace_listing_published",
		"module", "community-experience/marketplace-service",
		"layer", "application",
		"listing_id", storedID,
		"handle", listing.Handle,
		"trust_label", listing.TrustLabel,
	)
	return storedID, nil
}

// SyncVoteStats refreshes the cached community stats on a listing. A missing
// listing is not an error; votes can exist for entities never published.
func (uc MarketplaceUseCase) SyncVoteStats(
	ctx context.Context,
	handle, platform string,
	userTrustScore float64,
	totalVotes int64,
) error {
	err := uc.Repository.UpdateVoteStats(ctx,
		entities.NormalizeHandle(handle),
		strings.ToLower(strings.TrimSpace(platform)),
		userTrustScore,
		totalVotes,
	)
	if err != nil && !errors.Is(err, domainerrors.ErrListingNotFound) {
		return err
	}
	return nil
}

// Remove deletes a listing. Admin only; routed through the privileged surface.
func (uc MarketplaceUseCase) Remove(ctx context.Context, handle, platform string) error {
	logger := application.ResolveLogger(uc.Logger)
	normalized := entities.NormalizeHandle(handle)
	if normalized == "" {
		return domainerrors.ErrInvalidListingInput
	}
	cleanPlatform := strings.ToLower(strings.TrimSpace(platform))
	if cleanPlatform == "" {
		cleanPlatform = "instagram"
	}
	if err := uc.Repository.RemoveListing(ctx, normalized, cleanPlatform); err != nil {
		return err
	}
	logger.Info("marketplace listing removed",
		"event", "marketplace_listing_removed",
		"module", "community-experience/marketplace-service",
		"layer", "application",
		"handle", normalized,
	)
	return nil
}

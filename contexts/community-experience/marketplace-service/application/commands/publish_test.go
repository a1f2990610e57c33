package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"perseval/contexts/community-experience/marketplace-service/adapters/memory"
	"perseval/contexts/community-experience/marketplace-service/domain/entities"
	domainerrors "perseval/contexts/community-experience/marketplace-service/domain/errors"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newMarketplace(store *memory.Store) MarketplaceUseCase {
	return MarketplaceUseCase{
		Repository: store,
		Clock:      fixedClock{now: time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)},
		IDGen:      store,
	}
}

func TestPublishRefreshesExistingListing(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newMarketplace(store)

	firstID, err := uc.Publish(context.Background(), PublishListingCommand{
		Handle:     "@Guru",
		Platform:   "Instagram",
		Followers:  5000,
		TrustScore: 0.55,
		TrustLabel: "medium",
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if err := store.UpdateVoteStats(context.Background(), "guru", "instagram", 0.9, 12); err != nil {
		t.Fatalf("seed vote stats failed: %v", err)
	}

	secondID, err := uc.Publish(context.Background(), PublishListingCommand{
		Handle:     "guru",
		Platform:   "instagram",
		Followers:  6200,
		TrustScore: 0.81,
		TrustLabel: "high",
	})
	if err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	if secondID != firstID {
		t.Fatalf("republish must keep the listing id: %q vs %q", secondID, firstID)
	}

	listing, err := store.GetListing(context.Background(), "guru", "instagram")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if listing.Followers != 6200 || listing.TrustLabel != "high" {
		t.Fatalf("profile fields not refreshed: %+v", listing)
	}
	if listing.UserTrustScore != 0.9 || listing.TotalVotes != 12 {
		t.Fatalf("vote stats must survive republish: %+v", listing)
	}
}

func TestPublishValidatesHandle(t *testing.T) {
	uc := newMarketplace(memory.NewStore(nil))
	if _, err := uc.Publish(context.Background(), PublishListingCommand{Platform: "instagram"}); !errors.Is(err, domainerrors.ErrInvalidListingInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSyncVoteStatsIgnoresUnpublishedEntities(t *testing.T) {
	uc := newMarketplace(memory.NewStore(nil))
	if err := uc.SyncVoteStats(context.Background(), "nobody", "instagram", 0.7, 3); err != nil {
		t.Fatalf("missing listing must not be an error: %v", err)
	}
}

func TestRemoveListing(t *testing.T) {
	store := memory.NewStore([]entities.Listing{{
		ListingID: "mk-1",
		Handle:    "guru",
		Platform:  "instagram",
	}})
	uc := newMarketplace(store)

	if err := uc.Remove(context.Background(), "@Guru", ""); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := uc.Remove(context.Background(), "guru", "instagram"); !errors.Is(err, domainerrors.ErrListingNotFound) {
		t.Fatalf("second remove must report not found, got %v", err)
	}
}

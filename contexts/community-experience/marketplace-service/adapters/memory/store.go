package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"perseval/contexts/community-experience/marketplace-service/domain/entities"
	domainerrors "perseval/contexts/community-experience/marketplace-service/domain/errors"
	"perseval/contexts/community-experience/marketplace-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	listings map[string]entities.Listing
}

func NewStore(seed []entities.Listing) *Store {
	listings := make(map[string]entities.Listing, len(seed))
	for _, item := range seed {
		listings[listingKey(item.Handle, item.Platform)] = item
	}
	return &Store{listings: listings}
}

func (s *Store) UpsertListing(_ context.Context, listing entities.Listing) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := listingKey(listing.Handle, listing.Platform)
	if existing, ok := s.listings[key]; ok {
		existing.FullName = listing.FullName
		existing.Followers = listing.Followers
		existing.Following = listing.Following
		existing.PostsCount = listing.PostsCount
		existing.IsVerified = listing.IsVerified
		existing.Bio = listing.Bio
		existing.ProfileURL = listing.ProfileURL
		existing.TrustScore = listing.TrustScore
		existing.TrustLabel = listing.TrustLabel
		existing.Notes = listing.Notes
		existing.UpdatedAt = listing.UpdatedAt
		s.listings[key] = existing
		return existing.ListingID, nil
	}
	s.listings[key] = listing
	return listing.ListingID, nil
}

func (s *Store) GetListing(_ context.Context, handle, platform string) (entities.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.listings[listingKey(handle, platform)]
	if !ok {
		return entities.Listing{}, domainerrors.ErrListingNotFound
	}
	return item, nil
}

func (s *Store) ListListings(
	_ context.Context,
	filter ports.ListingFilter,
) ([]entities.Listing, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Listing, 0, len(s.listings))
	for _, item := range s.listings {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(item.Handle), needle) &&
				!strings.Contains(strings.ToLower(item.FullName), needle) {
				continue
			}
		}
		if filter.TrustLabel != "" && item.TrustLabel != filter.TrustLabel {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].IsFeatured != items[j].IsFeatured {
			return items[i].IsFeatured
		}
		less := compareListings(items[i], items[j], filter.SortBy)
		if filter.SortOrder == "asc" {
			return less
		}
		return !less
	})

	total := int64(len(items))
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return nil, total, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, total, nil
}

func (s *Store) RemoveListing(_ context.Context, handle, platform string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := listingKey(handle, platform)
	if _, ok := s.listings[key]; !ok {
		return domainerrors.ErrListingNotFound
	}
	delete(s.listings, key)
	return nil
}

func (s *Store) UpdateVoteStats(
	_ context.Context,
	handle, platform string,
	userTrustScore float64,
	totalVotes int64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := listingKey(handle, platform)
	item, ok := s.listings[key]
	if !ok {
		return domainerrors.ErrListingNotFound
	}
	item.UserTrustScore = userTrustScore
	item.TotalVotes = totalVotes
	item.UpdatedAt = time.Now().UTC()
	s.listings[key] = item
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func compareListings(a, b entities.Listing, sortBy string) bool {
	switch sortBy {
	case "followers":
		return a.Followers < b.Followers
	case "user_trust_score":
		return a.UserTrustScore < b.UserTrustScore
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return a.TrustScore < b.TrustScore
	}
}

func listingKey(handle, platform string) string {
	return handle + "|" + platform
}

var _ ports.Repository = (*Store)(nil)

package entities

import (
	"strings"
	"time"
)

// Listing is a published influencer entry. One row per (handle, platform);
// re-publication refreshes the profile and trust fields in place.
type Listing struct {
	ListingID      string
	Handle         string
	Platform       string
	FullName       string
	Followers      int64
	Following      int64
	PostsCount     int64
	IsVerified     bool
	Bio            string
	ProfileURL     string
	TrustScore     float64
	TrustLabel     string
	Notes          string
	UserTrustScore float64
	TotalVotes     int64
	IsFeatured     bool
	AdminNotes     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (l Listing) ValidatePublish() bool {
	return strings.TrimSpace(l.Handle) != "" && strings.TrimSpace(l.Platform) != ""
}

// NormalizeHandle strips a leading @ and lowercases for stable listing keys.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

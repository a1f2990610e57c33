package entities

import (
	"strings"
	"time"
)

type VoteType string

const (
	VoteTypeTrust    VoteType = "trust"
	VoteTypeDistrust VoteType = "distrust"
)

// Vote is keyed by (handle, platform, voter identity). A voter gets one row
// per entity; repeat submissions overwrite vote type and comment.
type Vote struct {
	Handle        string
	Platform      string
	VoterIdentity string
	VoteType      VoteType
	Comment       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type VoteStats struct {
	TrustVotes     int64
	DistrustVotes  int64
	TotalVotes     int64
	UserTrustScore float64
}

// NeutralUserTrustScore is reported when an entity has no votes yet.
const NeutralUserTrustScore = 0.5

// NormalizeHandle strips a leading @ and lowercases so vote rows and lookups
// agree regardless of input form.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

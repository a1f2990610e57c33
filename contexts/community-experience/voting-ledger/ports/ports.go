package ports

import (
	"context"
	"time"

	"perseval/contexts/community-experience/voting-ledger/domain/entities"
)

// EntityVoteTotals is the per-entity aggregate row backing vote stat listings.
type EntityVoteTotals struct {
	Handle        string
	Platform      string
	TrustVotes    int64
	DistrustVotes int64
}

type VoteRepository interface {
	// UpsertVote inserts or replaces the voter's row for the entity.
	UpsertVote(ctx context.Context, vote entities.Vote) error
	GetVote(ctx context.Context, handle, platform, voterIdentity string) (entities.Vote, bool, error)
	CountVotes(ctx context.Context, handle, platform string) (trustVotes, distrustVotes int64, err error)
	// DeleteVote reports whether a row existed.
	DeleteVote(ctx context.Context, handle, platform, voterIdentity string) (bool, error)
	// ListVoteTotals returns per-entity totals ordered by total votes
	// descending.
	ListVoteTotals(ctx context.Context, limit, offset int) ([]EntityVoteTotals, error)
}

// VoteRateStore tracks submit attempts per voter for the rolling-hour quota.
type VoteRateStore interface {
	RecordAttempt(ctx context.Context, voterIdentity string, at time.Time) error
	CountAttemptsSince(ctx context.Context, voterIdentity string, since time.Time) (int64, error)
}

// VoteScoreAggregate computes the community trust score for an entity. The
// formula is owned by the aggregate, not by this module; implementations must
// return the neutral 0.5 when the entity has no votes.
type VoteScoreAggregate interface {
	UserTrustScore(ctx context.Context, handle, platform string) (float64, error)
}

// MarketplaceSync mirrors fresh vote stats onto the marketplace listing.
// Callers treat failures as non-fatal.
type MarketplaceSync interface {
	SyncVoteStats(ctx context.Context, handle, platform string, userTrustScore float64, totalVotes int64) error
}

type Clock interface {
	Now() time.Time
}

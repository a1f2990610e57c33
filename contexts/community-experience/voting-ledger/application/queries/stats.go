package queries

import (
	"context"
	"log/slog"
	"strings"

	"perseval/contexts/community-experience/voting-ledger/domain/entities"
	domainerrors "perseval/contexts/community-experience/voting-ledger/domain/errors"
	"perseval/contexts/community-experience/voting-ledger/ports"
)

const (
	defaultListLimit = 50
	defaultPlatform  = "instagram"
)

// EntityStats pairs an entity key with its vote statistics for listings.
type EntityStats struct {
	Handle   string
	Platform string
	Stats    entities.VoteStats
}

type StatsUseCase struct {
	Votes     ports.VoteRepository
	Aggregate ports.VoteScoreAggregate
	Logger    *slog.Logger
}

func (uc StatsUseCase) GetVoteStats(ctx context.Context, handle, platform string) (entities.VoteStats, error) {
	normalized := entities.NormalizeHandle(handle)
	if normalized == "" {
		return entities.VoteStats{}, domainerrors.ErrInvalidVoteInput
	}
	return uc.statsFor(ctx, normalized, normalizePlatform(platform))
}

// GetUserVote returns the caller's vote type for the entity, when present.
func (uc StatsUseCase) GetUserVote(
	ctx context.Context,
	handle, platform, voterIdentity string,
) (entities.VoteType, bool, error) {
	normalized := entities.NormalizeHandle(handle)
	voter := strings.TrimSpace(voterIdentity)
	if normalized == "" || voter == "" {
		return "", false, domainerrors.ErrInvalidVoteInput
	}
	vote, found, err := uc.Votes.GetVote(ctx, normalized, normalizePlatform(platform), voter)
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}
	return vote.VoteType, true, nil
}

// ListVoteStats returns per-entity statistics ordered by total votes.
func (uc StatsUseCase) ListVoteStats(ctx context.Context, limit, offset int) ([]EntityStats, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	totals, err := uc.Votes.ListVoteTotals(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]EntityStats, 0, len(totals))
	for _, row := range totals {
		stats, err := uc.buildStats(ctx, row)
		if err != nil {
			return nil, err
		}
		items = append(items, EntityStats{
			Handle:   row.Handle,
			Platform: row.Platform,
			Stats:    stats,
		})
	}
	return items, nil
}

func (uc StatsUseCase) statsFor(ctx context.Context, handle, platform string) (entities.VoteStats, error) {
	trustVotes, distrustVotes, err := uc.Votes.CountVotes(ctx, handle, platform)
	if err != nil {
		return entities.VoteStats{}, err
	}
	return uc.buildStats(ctx, ports.EntityVoteTotals{
		Handle:        handle,
		Platform:      platform,
		TrustVotes:    trustVotes,
		DistrustVotes: distrustVotes,
	})
}

func (uc StatsUseCase) buildStats(ctx context.Context, totals ports.EntityVoteTotals) (entities.VoteStats, error) {
	stats := entities.VoteStats{
		TrustVotes:     totals.TrustVotes,
		DistrustVotes:  totals.DistrustVotes,
		TotalVotes:     totals.TrustVotes + totals.DistrustVotes,
		UserTrustScore: entities.NeutralUserTrustScore,
	}
	if stats.TotalVotes == 0 {
		return stats, nil
	}
	score, err := uc.Aggregate.UserTrustScore(ctx, totals.Handle, totals.Platform)
	if err != nil {
		return entities.VoteStats{}, err
	}
	stats.UserTrustScore = score
	return stats, nil
}

func normalizePlatform(platform string) string {
	cleaned := strings.ToLower(strings.TrimSpace(platform))
	if cleaned == "" {
		return defaultPlatform
	}
	return cleaned
}

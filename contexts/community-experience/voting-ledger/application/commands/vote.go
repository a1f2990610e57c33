package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "perseval/contexts/community-experience/voting-ledger/application"
	"perseval/contexts/community-experience/voting-ledger/domain/entities"
	domainerrors "perseval/contexts/community-experience/voting-ledger/domain/errors"
	"perseval/contexts/community-experience/voting-ledger/ports"
)

const (
	// Voters get twenty submissions per rolling hour.
	voterHourlyLimit = 20
	voterRateWindow  = time.Hour
	maxCommentLength = 500
	defaultPlatform  = "instagram"
)

type SubmitVoteCommand struct {
	Handle        string
	Platform      string
	VoterIdentity string
	VoteType      entities.VoteType
	Comment       string
}

type SubmitVoteResult struct {
	Vote  entities.Vote
	Stats entities.VoteStats
}

type DeleteVoteCommand struct {
	Handle        string
	Platform      string
	VoterIdentity string
}

// VoteUseCase orchestrates vote writes: quota check, upsert or delete, fresh
// stats, and the best-effort marketplace sync.
type VoteUseCase struct {
	Votes       ports.VoteRepository
	RateStore   ports.VoteRateStore
	Aggregate   ports.VoteScoreAggregate
	Marketplace ports.MarketplaceSync
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (uc VoteUseCase) SubmitVote(ctx context.Context, cmd SubmitVoteCommand) (SubmitVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	handle := entities.NormalizeHandle(cmd.Handle)
	platform := strings.ToLower(strings.TrimSpace(cmd.Platform))
	if platform == "" {
		platform = defaultPlatform
	}
	voter := strings.TrimSpace(cmd.VoterIdentity)
	if handle == "" || voter == "" {
		return SubmitVoteResult{}, domainerrors.ErrInvalidVoteInput
	}
	if cmd.VoteType != entities.VoteTypeTrust && cmd.VoteType != entities.VoteTypeDistrust {
		return SubmitVoteResult{}, domainerrors.ErrInvalidVoteType
	}
	comment := strings.TrimSpace(cmd.Comment)
	if len(comment) > maxCommentLength {
		comment = comment[:maxCommentLength]
	}

	now := uc.Clock.Now().UTC()
	attempts, err := uc.RateStore.CountAttemptsSince(ctx, voter, now.Add(-voterRateWindow))
	if err != nil {
		return SubmitVoteResult{}, err
	}
	if attempts >= voterHourlyLimit {
		return SubmitVoteResult{}, fmt.Errorf("%w: %d votes in the last hour",
			domainerrors.ErrVoteRateLimited, attempts)
	}
	if err := uc.RateStore.RecordAttempt(ctx, voter, now); err != nil {
		return SubmitVoteResult{}, err
	}

	existing, found, err := uc.Votes.GetVote(ctx, handle, platform, voter)
	if err != nil {
		return SubmitVoteResult{}, err
	}
	vote := entities.Vote{
		Handle:        handle,
		Platform:      platform,
		VoterIdentity: voter,
		VoteType:      cmd.VoteType,
		Comment:       comment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if found {
		vote.CreatedAt = existing.CreatedAt
	}
	if err := uc.Votes.UpsertVote(ctx, vote); err != nil {
		return SubmitVoteResult{}, err
	}

	stats, err := uc.voteStats(ctx, handle, platform)
	if err != nil {
		return SubmitVoteResult{}, err
	}
	uc.syncMarketplace(ctx, logger, handle, platform, stats)

	logger.Info("vote recorded",
		"event", "vote_recorded",
		"module", "community-experience/voting-ledger",
		"layer", "application",
		"handle", handle,
		"vote_type", string(cmd.VoteType),
		"updated", found,
	)
	return SubmitVoteResult{Vote: vote, Stats: stats}, nil
}

// DeleteVote removes the voter's row. Deleting an absent vote reports
// ErrVoteNotFound without touching anything else.
func (uc VoteUseCase) DeleteVote(ctx context.Context, cmd DeleteVoteCommand) (entities.VoteStats, error) {
	logger := application.ResolveLogger(uc.Logger)

	handle := entities.NormalizeHandle(cmd.Handle)
	platform := strings.ToLower(strings.TrimSpace(cmd.Platform))
	if platform == "" {
		platform = defaultPlatform
	}
	voter := strings.TrimSpace(cmd.VoterIdentity)
	if handle == "" || voter == "" {
		return entities.VoteStats{}, domainerrors.ErrInvalidVoteInput
	}

	deleted, err := uc.Votes.DeleteVote(ctx, handle, platform, voter)
	if err != nil {
		return entities.VoteStats{}, err
	}
	if !deleted {
		return entities.VoteStats{}, domainerrors.ErrVoteNotFound
	}

	stats, err := uc.voteStats(ctx, handle, platform)
	if err != nil {
		return entities.VoteStats{}, err
	}
	uc.syncMarketplace(ctx, logger, handle, platform, stats)

	logger.Info("vote deleted",
		"event", "vote_deleted",
		"module", "community-experience/voting-ledger",
		"layer", "application",
		"handle", handle,
	)
	return stats, nil
}

func (uc VoteUseCase) voteStats(ctx context.Context, handle, platform string) (entities.VoteStats, error) {
	trustVotes, distrustVotes, err := uc.Votes.CountVotes(ctx, handle, platform)
	if err != nil {
		return entities.VoteStats{}, err
	}
	stats := entities.VoteStats{
		TrustVotes:     trustVotes,
		DistrustVotes:  distrustVotes,
		TotalVotes:     trustVotes + distrustVotes,
		UserTrustScore: entities.NeutralUserTrustScore,
	}
	if stats.TotalVotes == 0 {
		return stats, nil
	}
	score, err := uc.Aggregate.UserTrustScore(ctx, handle, platform)
	if err != nil {
		return entities.VoteStats{}, err
	}
	stats.UserTrustScore = score
	return stats, nil
}

func (uc VoteUseCase) syncMarketplace(
	ctx context.Context,
	logger *slog.Logger,
	handle, platform string,
	stats entities.VoteStats,
) {
	if err := uc.Marketplace.SyncVoteStats(ctx, handle, platform, stats.UserTrustScore, stats.TotalVotes); err != nil {
		logger.Warn("marketplace vote stat sync failed",
			"event", "vote_marketplace_sync_failed",
			"module", "community-experience/voting-ledger",
			"layer", "application",
			"handle", handle,
			"error", err.Error(),
		)
	}
}

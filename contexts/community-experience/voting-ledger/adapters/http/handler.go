package httpadapter

import (
	"context"
	"log/slog"

	"perseval/contexts/community-experience/voting-ledger/application/commands"
	"perseval/contexts/community-experience/voting-ledger/application/queries"
	"perseval/contexts/community-experience/voting-ledger/domain/entities"
	httptransport "perseval/contexts/community-experience/voting-ledger/transport/http"
)

type Handler struct {
	Votes  commands.VoteUseCase
	Stats  queries.StatsUseCase
	Logger *slog.Logger
}

func (h Handler) SubmitVoteHandler(
	ctx context.Context,
	handle, platform, voterIdentity string,
	req httptransport.SubmitVoteRequest,
) (httptransport.SubmitVoteResponse, error) {
	result, err := h.Votes.SubmitVote(ctx, commands.SubmitVoteCommand{
		Handle:        handle,
		Platform:      platform,
		VoterIdentity: voterIdentity,
		VoteType:      entities.VoteType(req.VoteType),
		Comment:       req.Comment,
	})
	if err != nil {
		return httptransport.SubmitVoteResponse{}, err
	}
	return httptransport.SubmitVoteResponse{
		VoteType: string(result.Vote.VoteType),
		Stats:    mapStats(result.Stats),
	}, nil
}

func (h Handler) GetVotesHandler(
	ctx context.Context,
	handle, platform, voterIdentity string,
) (httptransport.GetVotesResponse, error) {
	stats, err := h.Stats.GetVoteStats(ctx, handle, platform)
	if err != nil {
		return httptransport.GetVotesResponse{}, err
	}
	response := httptransport.GetVotesResponse{Stats: mapStats(stats)}
	if voterIdentity != "" {
		voteType, found, err := h.Stats.GetUserVote(ctx, handle, platform, voterIdentity)
		if err != nil {
			return httptransport.GetVotesResponse{}, err
		}
		if found {
			response.UserVote = string(voteType)
		}
	}
	return response, nil
}

func (h Handler) DeleteVoteHandler(
	ctx context.Context,
	handle, platform, voterIdentity string,
) (httptransport.DeleteVoteResponse, error) {
	stats, err := h.Votes.DeleteVote(ctx, commands.DeleteVoteCommand{
		Handle:        handle,
		Platform:      platform,
		VoterIdentity: voterIdentity,
	})
	if err != nil {
		return httptransport.DeleteVoteResponse{}, err
	}
	return httptransport.DeleteVoteResponse{
		Deleted: true,
		Stats:   mapStats(stats),
	}, nil
}

func (h Handler) ListVoteStatsHandler(ctx context.Context, limit, offset int) (httptransport.ListVoteStatsResponse, error) {
	items, err := h.Stats.ListVoteStats(ctx, limit, offset)
	if err != nil {
		return httptransport.ListVoteStatsResponse{}, err
	}
	result := make([]httptransport.EntityStatsDTO, 0, len(items))
	for _, item := range items {
		result = append(result, httptransport.EntityStatsDTO{
			Handle:   item.Handle,
			Platform: item.Platform,
			Stats:    mapStats(item.Stats),
		})
	}
	return httptransport.ListVoteStatsResponse{Items: result}, nil
}

func mapStats(stats entities.VoteStats) httptransport.VoteStatsDTO {
	return httptransport.VoteStatsDTO{
		TrustVotes:     stats.TrustVotes,
		DistrustVotes:  stats.DistrustVotes,
		TotalVotes:     stats.TotalVotes,
		UserTrustScore: stats.UserTrustScore,
	}
}

package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"perseval/contexts/trust-intelligence/assessment-service/application/commands"
	"perseval/contexts/trust-intelligence/assessment-service/domain/entities"
	httptransport "perseval/contexts/trust-intelligence/assessment-service/transport/http"
)

type Handler struct {
	Trust  commands.TrustUseCase
	Logger *slog.Logger
}

func (h Handler) AnalyzeTextHandler(ctx context.Context, req httptransport.AnalyzeTextRequest) (httptransport.ScamPredictionResponse, error) {
	prediction, err := h.Trust.AnalyzeText(ctx, req.Text)
	if err != nil {
		return httptransport.ScamPredictionResponse{}, err
	}
	return httptransport.ScamPredictionResponse{
		Label:  string(prediction.Label),
		Score:  prediction.Score,
		Reason: prediction.Reason,
	}, nil
}

func (h Handler) InfluencerTrustHandler(ctx context.Context, req httptransport.InfluencerTrustRequest) (httptransport.InfluencerTrustResponse, error) {
	result, err := h.Trust.AssessInfluencer(ctx, req.Handle, req.MaxPosts)
	if err != nil {
		return httptransport.InfluencerTrustResponse{}, err
	}
	assessment := result.Assessment
	return httptransport.InfluencerTrustResponse{
		Stats: httptransport.ProfileStatsResponse{
			Platform:    assessment.Stats.Platform,
			Handle:      assessment.Stats.Handle,
			FullName:    assessment.Stats.FullName,
			Followers:   assessment.Stats.Followers,
			Following:   assessment.Stats.Following,
			PostsCount:  assessment.Stats.PostsCount,
			IsVerified:  assessment.Stats.IsVerified,
			Bio:         assessment.Stats.Bio,
			URL:         assessment.Stats.URL,
			SamplePosts: assessment.Stats.SamplePosts,
		},
		TrustScore:          assessment.Assessment.TrustScore,
		Label:               string(assessment.Assessment.Label),
		MessageHistoryScore: assessment.Assessment.MessageHistoryScore,
		FollowersScore:      assessment.Assessment.FollowersScore,
		WebReputationScore:  assessment.Assessment.WebReputationScore,
		DisclosureScore:     assessment.Assessment.DisclosureScore,
		Notes:               assessment.Assessment.Notes,
		Issues:              assessment.Issues,
		ComputedAt:          assessment.Assessment.ComputedAt.Format(time.RFC3339),
		FromCache:           result.FromCache,
	}, nil
}

func (h Handler) CompanyTrustHandler(ctx context.Context, req httptransport.EntityTrustRequest) (httptransport.EntityTrustResponse, error) {
	return h.reputationHandler(ctx, entities.EntityKindCompany, req)
}

func (h Handler) ProductTrustHandler(ctx context.Context, req httptransport.EntityTrustRequest) (httptransport.EntityTrustResponse, error) {
	return h.reputationHandler(ctx, entities.EntityKindProduct, req)
}

func (h Handler) reputationHandler(
	ctx context.Context,
	kind entities.EntityKind,
	req httptransport.EntityTrustRequest,
) (httptransport.EntityTrustResponse, error) {
	result, err := h.Trust.AssessReputation(ctx, kind, req.Name, req.MaxResults)
	if err != nil {
		return httptransport.EntityTrustResponse{}, err
	}
	return httptransport.EntityTrustResponse{
		Name:       result.Assessment.Name,
		TrustScore: result.Assessment.TrustScore,
		Label:      string(result.Assessment.Label),
		Summary:    result.Assessment.Summary,
		Issues:     result.Assessment.Issues,
		ComputedAt: result.Assessment.ComputedAt.Format(time.RFC3339),
		FromCache:  result.FromCache,
	}, nil
}

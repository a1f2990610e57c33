package bootstrap

import (
	"context"

	marketplacecommands "perseval/contexts/community-experience/marketplace-service/application/commands"
	submissionentities "perseval/contexts/moderation-safety/submission-service/domain/entities"
	submissionports "perseval/contexts/moderation-safety/submission-service/ports"
	assessmentcommands "perseval/contexts/trust-intelligence/assessment-service/application/commands"
)

// Cross-context glue lives here so the moderation and community contexts
// never import each other's application layers directly.

// analysisPipeline runs the trust-intelligence assessment for a submitted
// handle and flattens the result into the moderation context's analysis shape.
type analysisPipeline struct {
	trust assessmentcommands.TrustUseCase
}

func (p analysisPipeline) Assess(ctx context.Context, handle string) (submissionentities.AnalysisData, error) {
	result, err := p.trust.AssessInfluencer(ctx, handle, 0)
	if err != nil {
		return submissionentities.AnalysisData{}, err
	}

	stats := result.Assessment.Stats
	assessment := result.Assessment.Assessment
	return submissionentities.AnalysisData{
		Handle:              stats.Handle,
		Platform:            stats.Platform,
		FullName:            stats.FullName,
		Followers:           stats.Followers,
		Following:           stats.Following,
		PostsCount:          stats.PostsCount,
		IsVerified:          stats.IsVerified,
		Bio:                 stats.Bio,
		ProfileURL:          stats.URL,
		TrustScore:          assessment.TrustScore,
		TrustLabel:          string(assessment.Label),
		MessageHistoryScore: assessment.MessageHistoryScore,
		FollowersScore:      assessment.FollowersScore,
		WebReputationScore:  assessment.WebReputationScore,
		DisclosureScore:     assessment.DisclosureScore,
		Notes:               assessment.Notes,
	}, nil
}

// marketplacePublisher turns an approved submission's analysis snapshot into
// a marketplace listing.
type marketplacePublisher struct {
	marketplace marketplacecommands.MarketplaceUseCase
}

func (p marketplacePublisher) Publish(ctx context.Context, data submissionentities.AnalysisData) (string, error) {
	return p.marketplace.Publish(ctx, marketplacecommands.PublishListingCommand{
		Handle:     data.Handle,
		Platform:   data.Platform,
		FullName:   data.FullName,
		Followers:  data.Followers,
		Following:  data.Following,
		PostsCount: data.PostsCount,
		IsVerified: data.IsVerified,
		Bio:        data.Bio,
		ProfileURL: data.ProfileURL,
		TrustScore: data.TrustScore,
		TrustLabel: data.TrustLabel,
		Notes:      data.Notes,
	})
}

var _ submissionports.AnalysisPipeline = analysisPipeline{}
var _ submissionports.MarketplacePublisher = marketplacePublisher{}

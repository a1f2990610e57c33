package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"perseval/contexts/moderation-safety/submission-service/application/commands"
	"perseval/contexts/moderation-safety/submission-service/application/queries"
	"perseval/contexts/moderation-safety/submission-service/domain/entities"
	httptransport "perseval/contexts/moderation-safety/submission-service/transport/http"
)

type Handler struct {
	CreateSubmission commands.CreateSubmissionUseCase
	TriggerAnalysis  commands.TriggerAnalysisUseCase
	ReviewSubmission commands.ReviewSubmissionUseCase
	Queries          queries.QueryUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateSubmissionHandler(
	ctx context.Context,
	submitterIdentity string,
	req httptransport.CreateSubmissionRequest,
) (httptransport.CreateSubmissionResponse, error) {
	item, err := h.CreateSubmission.Execute(ctx, commands.CreateSubmissionCommand{
		Handle:            req.Handle,
		Platform:          req.Platform,
		Reason:            req.Reason,
		SubmitterIdentity: submitterIdentity,
	})
	if err != nil {
		return httptransport.CreateSubmissionResponse{}, err
	}
	return httptransport.CreateSubmissionResponse{
		ID:      item.SubmissionID,
		Status:  string(item.Status),
		Message: "submission received and awaiting review",
	}, nil
}

func (h Handler) GetSubmissionHandler(ctx context.Context, submissionID string) (httptransport.GetSubmissionResponse, error) {
	item, err := h.Queries.GetSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.GetSubmissionResponse{}, err
	}
	return httptransport.GetSubmissionResponse{Submission: mapSubmission(item)}, nil
}

func (h Handler) ListSubmissionsHandler(
	ctx context.Context,
	status string,
	limit, offset int,
) (httptransport.ListSubmissionsResponse, error) {
	page, err := h.Queries.ListSubmissions(ctx, queries.ListSubmissionsQuery{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	items := make([]httptransport.SubmissionDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, mapSubmission(item))
	}
	return httptransport.ListSubmissionsResponse{Items: items, Total: page.Total}, nil
}

func (h Handler) ListMySubmissionsHandler(
	ctx context.Context,
	submitterIdentity string,
) (httptransport.ListSubmissionsResponse, error) {
	list, err := h.Queries.ListBySubmitter(ctx, submitterIdentity)
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	items := make([]httptransport.SubmissionDTO, 0, len(list))
	for _, item := range list {
		items = append(items, mapSubmission(item))
	}
	return httptransport.ListSubmissionsResponse{Items: items, Total: int64(len(items))}, nil
}

func (h Handler) TriggerAnalysisHandler(ctx context.Context, submissionID string) (httptransport.TriggerAnalysisResponse, error) {
	item, err := h.TriggerAnalysis.Execute(ctx, commands.TriggerAnalysisCommand{
		SubmissionID: submissionID,
	})
	if err != nil {
		return httptransport.TriggerAnalysisResponse{}, err
	}
	message := "analysis completed"
	if item.AnalysisError != "" {
		message = "analysis failed; submission returned to pending"
	}
	return httptransport.TriggerAnalysisResponse{
		Submission: mapSubmission(item),
		Message:    message,
	}, nil
}

func (h Handler) ReviewSubmissionHandler(
	ctx context.Context,
	reviewedBy string,
	submissionID string,
	req httptransport.ReviewSubmissionRequest,
) (httptransport.ReviewSubmissionResponse, error) {
	result, err := h.ReviewSubmission.Execute(ctx, commands.ReviewSubmissionCommand{
		SubmissionID:     submissionID,
		Decision:         entities.ReviewDecision(req.Decision),
		ReviewedBy:       reviewedBy,
		AdminNotes:       req.AdminNotes,
		RejectionReason:  req.RejectionReason,
		AddToMarketplace: req.AddToMarketplace,
	})
	if err != nil {
		return httptransport.ReviewSubmissionResponse{}, err
	}
	message := "submission " + string(result.Submission.Status)
	if result.MarketplaceID != "" {
		message += " and published to marketplace"
	}
	return httptransport.ReviewSubmissionResponse{
		Submission:    mapSubmission(result.Submission),
		Message:       message,
		MarketplaceID: result.MarketplaceID,
	}, nil
}

func mapSubmission(item entities.Submission) httptransport.SubmissionDTO {
	dto := httptransport.SubmissionDTO{
		ID:                item.SubmissionID,
		Handle:            item.Handle,
		Platform:          item.Platform,
		Reason:            item.Reason,
		Status:            string(item.Status),
		TrustScore:        item.TrustScore,
		AnalysisError:     item.AnalysisError,
		ReviewedBy:        item.ReviewedBy,
		AdminNotes:        item.AdminNotes,
		RejectionReason:   item.RejectionReason,
		SubmitterIdentity: item.SubmitterIdentity,
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         item.UpdatedAt.Format(time.RFC3339),
	}
	if item.ReviewedAt != nil {
		dto.ReviewedAt = item.ReviewedAt.Format(time.RFC3339)
	}
	if item.AnalysisData != nil {
		data := mapAnalysisData(*item.AnalysisData)
		dto.AnalysisData = &data
	}
	return dto
}

func mapAnalysisData(data entities.AnalysisData) httptransport.AnalysisDataDTO {
	return httptransport.AnalysisDataDTO{
		Handle:              data.Handle,
		Platform:            data.Platform,
		FullName:            data.FullName,
		Followers:           data.Followers,
		Following:           data.Following,
		PostsCount:          data.PostsCount,
		IsVerified:          data.IsVerified,
		Bio:                 data.Bio,
		ProfileURL:          data.ProfileURL,
		TrustScore:          data.TrustScore,
		TrustLabel:          data.TrustLabel,
		MessageHistoryScore: data.MessageHistoryScore,
		FollowersScore:      data.FollowersScore,
		WebReputationScore:  data.WebReputationScore,
		DisclosureScore:     data.DisclosureScore,
		Notes:               data.Notes,
	}
}

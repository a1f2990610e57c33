package queries

import (
	"context"
	"log/slog"
	"strings"

	"perseval/contexts/moderation-safety/submission-service/domain/entities"
	"perseval/contexts/moderation-safety/submission-service/ports"
)

const defaultListLimit = 50

type ListSubmissionsQuery struct {
	Status string
	Limit  int
	Offset int
}

type SubmissionPage struct {
	Items []entities.Submission
	Total int64
}

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	return uc.Repository.GetSubmission(ctx, strings.TrimSpace(submissionID))
}

func (uc QueryUseCase) ListSubmissions(ctx context.Context, query ListSubmissionsQuery) (SubmissionPage, error) {
	filter := ports.SubmissionFilter{
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if strings.TrimSpace(query.Status) != "" {
		filter.Status = entities.SubmissionStatus(strings.TrimSpace(query.Status))
	}
	items, total, err := uc.Repository.ListSubmissions(ctx, filter)
	if err != nil {
		return SubmissionPage{}, err
	}
	return SubmissionPage{Items: items, Total: total}, nil
}

func (uc QueryUseCase) ListBySubmitter(ctx context.Context, submitterIdentity string) ([]entities.Submission, error) {
	return uc.Repository.ListBySubmitter(ctx, strings.TrimSpace(submitterIdentity))
}

package ports

import (
	"context"
	"time"

	"perseval/contexts/moderation-safety/submission-service/domain/entities"
)

type SubmissionFilter struct {
	Status entities.SubmissionStatus
	Limit  int
	Offset int
}

type Repository interface {
	CreateSubmission(ctx context.Context, submission entities.Submission) error
	UpdateSubmission(ctx context.Context, submission entities.Submission) error
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	// GetActiveSubmission returns the newest pending or analyzing submission
	// for the normalized handle and platform.
	GetActiveSubmission(ctx context.Context, handle, platform string) (entities.Submission, bool, error)
	CountBySubmitterSince(ctx context.Context, submitterIdentity string, since time.Time) (int64, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]entities.Submission, int64, error)
	ListBySubmitter(ctx context.Context, submitterIdentity string) ([]entities.Submission, error)
}

// AnalysisPipeline runs the trust assessment for a submission's handle. The
// concrete implementation lives outside this context and is injected at
// bootstrap.
type AnalysisPipeline interface {
	Assess(ctx context.Context, handle string) (entities.AnalysisData, error)
}

// MarketplacePublisher pushes an approved submission's profile and trust
// fields to the marketplace. Returns the published listing id.
type MarketplacePublisher interface {
	Publish(ctx context.Context, data entities.AnalysisData) (string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

package commands

import (
	"context"
	"log/slog"
	"strings"

	application "perseval/contexts/moderation-safety/submission-service/application"
	"perseval/contexts/moderation-safety/submission-service/domain/entities"
	domainerrors "perseval/contexts/moderation-safety/submission-service/domain/errors"
	"perseval/contexts/moderation-safety/submission-service/ports"
)

const maxAnalysisErrorLength = 500

type TriggerAnalysisCommand struct {
	SubmissionID string
}

type TriggerAnalysisUseCase struct {
	Repository ports.Repository
	Pipeline   ports.AnalysisPipeline
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute runs the trust pipeline for a submission. Success and failure both
// land the submission back in pending; only the pipeline outcome fields
// differ. A submission is never left in analyzing.
func (uc TriggerAnalysisUseCase) Execute(ctx context.Context, cmd TriggerAnalysisCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	submission, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(cmd.SubmissionID))
	if err != nil {
		return entities.Submission{}, err
	}
	if submission.Status != entities.SubmissionStatusPending && submission.Status != entities.SubmissionStatusAnalyzing {
		return entities.Submission{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	submission.Status = entities.SubmissionStatusAnalyzing
	submission.UpdatedAt = now
	if err := uc.Repository.UpdateSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	data, pipelineErr := uc.Pipeline.Assess(ctx, submission.Handle)

	now = uc.Clock.Now().UTC()
	submission.Status = entities.SubmissionStatusPending
	submission.UpdatedAt = now
	if pipelineErr != nil {
		submission.AnalysisError = truncateError(pipelineErr.Error())
		logger.Warn("submission analysis failed",
			"event", "submission_analysis_failed",
			"module", "moderation-safety/submission-service",
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"handle", submission.Handle,
			"error", pipelineErr.Error(),
		)
	} else {
		trustScore := data.TrustScore
		submission.AnalysisData = &data
		submission.TrustScore = &trustScore
		submission.AnalysisError = ""
		logger.Info("submission analysis completed",
			"event", "submission_analysis_completed",
			"module", "moderation-safety/submission-service",
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"handle", submission.Handle,
			"trust_score", trustScore,
		)
	}
	if err := uc.Repository.UpdateSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}
	return submission, nil
}

func truncateError(message string) string {
	if len(message) > maxAnalysisErrorLength {
		return message[:maxAnalysisErrorLength]
	}
	return message
}

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

type ReviewSubmissionCommand struct {
	SubmissionID     string
	Decision         entities.ReviewDecision
	ReviewedBy       string
	AdminNotes       string
	RejectionReason  string
	AddToMarketplace bool
}

type ReviewResult struct {
	Submission    entities.Submission
	MarketplaceID string
}

type ReviewSubmissionUseCase struct {
	Repository  ports.Repository
	Marketplace ports.MarketplacePublisher
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute settles a submission. The review decision is committed before the
// marketplace publish runs; a publish failure is logged and never rolls the
// decision back.
func (uc ReviewSubmissionUseCase) Execute(ctx context.Context, cmd ReviewSubmissionCommand) (ReviewResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	submission, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(cmd.SubmissionID))
	if err != nil {
		return ReviewResult{}, err
	}
	if submission.Status.IsTerminal() {
		return ReviewResult{}, domainerrors.ErrAlreadyReviewed
	}
	if cmd.Decision != entities.ReviewDecisionApproved && cmd.Decision != entities.ReviewDecisionRejected {
		return ReviewResult{}, domainerrors.ErrInvalidReviewDecision
	}
	if cmd.Decision == entities.ReviewDecisionRejected && strings.TrimSpace(cmd.RejectionReason) == "" {
		return ReviewResult{}, domainerrors.ErrRejectionReasonRequired
	}
	if cmd.Decision == entities.ReviewDecisionApproved && cmd.AddToMarketplace && submission.AnalysisData == nil {
		return ReviewResult{}, domainerrors.ErrAnalysisRequired
	}

	now := uc.Clock.Now().UTC()
	submission.ReviewedBy = strings.TrimSpace(cmd.ReviewedBy)
	submission.ReviewedAt = &now
	submission.AdminNotes = strings.TrimSpace(cmd.AdminNotes)
	submission.UpdatedAt = now
	if cmd.Decision == entities.ReviewDecisionApproved {
		submission.Status = entities.SubmissionStatusApproved
	} else {
		submission.Status = entities.SubmissionStatusRejected
		submission.RejectionReason = strings.TrimSpace(cmd.RejectionReason)
	}
	if err := uc.Repository.UpdateSubmission(ctx, submission); err != nil {
		return ReviewResult{}, err
	}

	logger.Info("submission reviewed",
		"event", "submission_reviewed",
		"module", "moderation-safety/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"decision", string(cmd.Decision),
	)

	result := ReviewResult{Submission: submission}
	if cmd.Decision == entities.ReviewDecisionApproved && cmd.AddToMarketplace {
		marketplaceID, err := uc.Marketplace.Publish(ctx, *submission.AnalysisData)
		if err != nil {
			logger.Warn("marketplace publish failed; review decision stands",
				"event", "submission_marketplace_publish_failed",
				"module", "moderation-safety/submission-service",
				"layer", "application",
				"submission_id", submission.SubmissionID,
				"handle", submission.Handle,
				"error", err.Error(),
			)
		} else {
			result.MarketplaceID = marketplaceID
		}
	}
	return result, nil
}

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "perseval/contexts/moderation-safety/submission-service/application"
	"perseval/contexts/moderation-safety/submission-service/domain/entities"
	domainerrors "perseval/contexts/moderation-safety/submission-service/domain/errors"
	"perseval/contexts/moderation-safety/submission-service/ports"
)

const (
	// Submitters get three creations per trailing 24 hours.
	submitterDailyLimit = 3
	submitterRateWindow = 24 * time.Hour
	maxReasonLength     = 500
	defaultPlatform     = "instagram"
)

var reasonScriptMarkers = []string{"<script", "javascript:", "onerror="}

type CreateSubmissionCommand struct {
	Handle            string
	Platform          string
	Reason            string
	SubmitterIdentity string
}

type CreateSubmissionUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CreateSubmissionUseCase) Execute(ctx context.Context, cmd CreateSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)

	handle := entities.NormalizeHandle(cmd.Handle)
	platform := strings.ToLower(strings.TrimSpace(cmd.Platform))
	if platform == "" {
		platform = defaultPlatform
	}
	reason, err := sanitizeReason(cmd.Reason)
	if err != nil {
		return entities.Submission{}, err
	}

	now := uc.Clock.Now().UTC()
	submission := entities.Submission{
		Handle:            handle,
		Platform:          platform,
		Reason:            reason,
		Status:            entities.SubmissionStatusPending,
		SubmitterIdentity: strings.TrimSpace(cmd.SubmitterIdentity),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if !submission.ValidateCreate() {
		return entities.Submission{}, domainerrors.ErrInvalidSubmissionInput
	}

	count, err := uc.Repository.CountBySubmitterSince(ctx, submission.SubmitterIdentity, now.Add(-submitterRateWindow))
	if err != nil {
		return entities.Submission{}, err
	}
	if count >= submitterDailyLimit {
		return entities.Submission{}, fmt.Errorf("%w: %d submissions in the last 24 hours",
			domainerrors.ErrSubmissionRateLimited, count)
	}

	if _, exists, err := uc.Repository.GetActiveSubmission(ctx, handle, platform); err != nil {
		return entities.Submission{}, err
	} else if exists {
		return entities.Submission{}, domainerrors.ErrDuplicateSubmission
	}

	submission.SubmissionID, err = uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	if err := uc.Repository.CreateSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("submission created",
		"event", "submission_created",
		"module", "moderation-safety/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"handle", submission.Handle,
		"platform", submission.Platform,
	)
	return submission, nil
}

func sanitizeReason(reason string) (string, error) {
	cleaned := strings.TrimSpace(reason)
	if len(cleaned) > maxReasonLength {
		cleaned = cleaned[:maxReasonLength]
	}
	lowered := strings.ToLower(cleaned)
	for _, marker := range reasonScriptMarkers {
		if strings.Contains(lowered, marker) {
			return "", domainerrors.ErrInvalidSubmissionInput
		}
	}
	return cleaned, nil
}

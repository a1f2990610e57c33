package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"perseval/contexts/moderation-safety/submission-service/domain/entities"
	domainerrors "perseval/contexts/moderation-safety/submission-service/domain/errors"
	"perseval/contexts/moderation-safety/submission-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) error {
	row, err := submissionModelFromEntity(submission)
	if err != nil {
		return r.logError("submission_repo_encode_failed", err, "submission_id", submission.SubmissionID)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateSubmission
		}
		return r.logError("submission_repo_create_failed", err, "submission_id", submission.SubmissionID)
	}
	return nil
}

func (r *Repository) UpdateSubmission(ctx context.Context, submission entities.Submission) error {
	row, err := submissionModelFromEntity(submission)
	if err != nil {
		return r.logError("submission_repo_encode_failed", err, "submission_id", submission.SubmissionID)
	}
	result := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"status":           row.Status,
			"analysis_data":    row.AnalysisData,
			"trust_score":      row.TrustScore,
			"analysis_error":   row.AnalysisError,
			"reviewed_by":      row.ReviewedBy,
			"reviewed_at":      row.ReviewedAt,
			"admin_notes":      row.AdminNotes,
			"rejection_reason": row.RejectionReason,
			"updated_at":       row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("submission_repo_update_failed", result.Error, "submission_id", submission.SubmissionID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSubmissionNotFound
	}
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, r.logError("submission_repo_get_failed", err,
			"submission_id", strings.TrimSpace(submissionID),
		)
	}
	return row.toEntity(r.logger)
}

func (r *Repository) GetActiveSubmission(ctx context.Context, handle, platform string) (entities.Submission, bool, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("handle = ?", entities.NormalizeHandle(handle)).
		Where("platform = ?", strings.ToLower(strings.TrimSpace(platform))).
		Where("status IN ?", []string{
			string(entities.SubmissionStatusPending),
			string(entities.SubmissionStatusAnalyzing),
		}).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, false, nil
		}
		return entities.Submission{}, false, r.logError("submission_repo_get_active_failed", err,
			"handle", entities.NormalizeHandle(handle),
		)
	}
	item, err := row.toEntity(r.logger)
	if err != nil {
		return entities.Submission{}, false, err
	}
	return item, true, nil
}

func (r *Repository) CountBySubmitterSince(ctx context.Context, submitterIdentity string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("submitter_identity = ?", strings.TrimSpace(submitterIdentity)).
		Where("created_at >= ?", since.UTC()).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("submission_repo_count_by_submitter_failed", err)
	}
	return count, nil
}

func (r *Repository) ListSubmissions(
	ctx context.Context,
	filter ports.SubmissionFilter,
) ([]entities.Submission, int64, error) {
	tx := r.db.WithContext(ctx).Model(&submissionModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, r.logError("submission_repo_list_count_failed", err)
	}

	var rows []submissionModel
	if err := tx.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, r.logError("submission_repo_list_failed", err)
	}
	items, err := r.toEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository) ListBySubmitter(ctx context.Context, submitterIdentity string) ([]entities.Submission, error) {
	var rows []submissionModel
	if err := r.db.WithContext(ctx).
		Where("submitter_identity = ?", strings.TrimSpace(submitterIdentity)).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("submission_repo_list_by_submitter_failed", err)
	}
	return r.toEntities(rows)
}

func (r *Repository) toEntities(rows []submissionModel) ([]entities.Submission, error) {
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity(r.logger)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "moderation-safety/submission-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("submission repository operation failed", fields...)
	return err
}

type submissionModel struct {
	ID                string          `gorm:"column:id;primaryKey"`
	Handle            string          `gorm:"column:handle"`
	Platform          string          `gorm:"column:platform"`
	Reason            string          `gorm:"column:reason"`
	Status            string          `gorm:"column:status"`
	AnalysisData      json.RawMessage `gorm:"column:analysis_data;type:jsonb"`
	TrustScore        *float64        `gorm:"column:trust_score"`
	AnalysisError     string          `gorm:"column:analysis_error"`
	ReviewedBy        string          `gorm:"column:reviewed_by"`
	ReviewedAt        *time.Time      `gorm:"column:reviewed_at"`
	AdminNotes        string          `gorm:"column:admin_notes"`
	RejectionReason   string          `gorm:"column:rejection_reason"`
	SubmitterIdentity string          `gorm:"column:submitter_identity"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (submissionModel) TableName() string {
	return "submissions"
}

type analysisDataPayload struct {
	Handle              string  `json:"handle"`
	Platform            string  `json:"platform"`
	FullName            string  `json:"full_name"`
	Followers           int64   `json:"followers"`
	Following           int64   `json:"following"`
	PostsCount          int64   `json:"posts_count"`
	IsVerified          bool    `json:"is_verified"`
	Bio                 string  `json:"bio"`
	ProfileURL          string  `json:"profile_url"`
	TrustScore          float64 `json:"trust_score"`
	TrustLabel          string  `json:"trust_label"`
	MessageHistoryScore float64 `json:"message_history_score"`
	FollowersScore      float64 `json:"followers_score"`
	WebReputationScore  float64 `json:"web_reputation_score"`
	DisclosureScore     float64 `json:"disclosure_score"`
	Notes               string  `json:"notes"`
}

func submissionModelFromEntity(item entities.Submission) (submissionModel, error) {
	row := submissionModel{
		ID:                strings.TrimSpace(item.SubmissionID),
		Handle:            entities.NormalizeHandle(item.Handle),
		Platform:          strings.ToLower(strings.TrimSpace(item.Platform)),
		Reason:            item.Reason,
		Status:            string(item.Status),
		TrustScore:        item.TrustScore,
		AnalysisError:     item.AnalysisError,
		ReviewedBy:        item.ReviewedBy,
		ReviewedAt:        normalizeOptionalTime(item.ReviewedAt),
		AdminNotes:        item.AdminNotes,
		RejectionReason:   item.RejectionReason,
		SubmitterIdentity: strings.TrimSpace(item.SubmitterIdentity),
		CreatedAt:         item.CreatedAt.UTC(),
		UpdatedAt:         item.UpdatedAt.UTC(),
	}
	if item.AnalysisData != nil {
		payload, err := json.Marshal(analysisPayloadFromEntity(*item.AnalysisData))
		if err != nil {
			return submissionModel{}, err
		}
		row.AnalysisData = payload
	}
	return row, nil
}

func (m submissionModel) toEntity(logger *slog.Logger) (entities.Submission, error) {
	item := entities.Submission{
		SubmissionID:      m.ID,
		Handle:            m.Handle,
		Platform:          m.Platform,
		Reason:            m.Reason,
		Status:            entities.SubmissionStatus(m.Status),
		TrustScore:        m.TrustScore,
		AnalysisError:     m.AnalysisError,
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        normalizeOptionalTime(m.ReviewedAt),
		AdminNotes:        m.AdminNotes,
		RejectionReason:   m.RejectionReason,
		SubmitterIdentity: m.SubmitterIdentity,
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
	if len(m.AnalysisData) > 0 {
		var payload analysisDataPayload
		if err := json.Unmarshal(m.AnalysisData, &payload); err != nil {
			// Unreadable analysis payloads degrade to "not analyzed" instead
			// of failing reads.
			logger.Warn("submission analysis payload unreadable",
				"event", "submission_repo_payload_unreadable",
				"module", "moderation-safety/submission-service",
				"layer", "adapter",
				"submission_id", m.ID,
				"error", err.Error(),
			)
			return item, nil
		}
		data := payload.toEntity()
		item.AnalysisData = &data
	}
	return item, nil
}

func analysisPayloadFromEntity(data entities.AnalysisData) analysisDataPayload {
	return analysisDataPayload{
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

func (p analysisDataPayload) toEntity() entities.AnalysisData {
	return entities.AnalysisData{
		Handle:              p.Handle,
		Platform:            p.Platform,
		FullName:            p.FullName,
		Followers:           p.Followers,
		Following:           p.Following,
		PostsCount:          p.PostsCount,
		IsVerified:          p.IsVerified,
		Bio:                 p.Bio,
		ProfileURL:          p.ProfileURL,
		TrustScore:          p.TrustScore,
		TrustLabel:          p.TrustLabel,
		MessageHistoryScore: p.MessageHistoryScore,
		FollowersScore:      p.FollowersScore,
		WebReputationScore:  p.WebReputationScore,
		DisclosureScore:     p.DisclosureScore,
		Notes:               p.Notes,
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)

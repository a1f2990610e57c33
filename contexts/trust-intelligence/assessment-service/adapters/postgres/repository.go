package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"perseval/contexts/trust-intelligence/assessment-service/domain/entities"
	domainerrors "perseval/contexts/trust-intelligence/assessment-service/domain/errors"
	"perseval/contexts/trust-intelligence/assessment-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists computed assessments in the shared assessment_cache
// table. Upserts are resolved last-write-wins by the store; no in-process
// locking is involved since many instances share the table.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) GetInfluencer(
	ctx context.Context,
	handle, platform string,
	now time.Time,
) (entities.InfluencerAssessment, bool, error) {
	row, found, err := r.latest(ctx, string(entities.EntityKindInfluencer), entities.NormalizeEntityKey(handle), platform, now)
	if err != nil || !found {
		return entities.InfluencerAssessment{}, false, err
	}
	var payload influencerPayload
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		// Unreadable rows behave like a miss so the caller recomputes.
		r.logger.Warn("cached influencer payload is unreadable",
			"event", "trust_cache_payload_unreadable",
			"module", "trust-intelligence/assessment-service",
			"layer", "adapter",
			"handle", handle,
			"error", err.Error(),
		)
		return entities.InfluencerAssessment{}, false, nil
	}
	return payload.toEntity(), true, nil
}

func (r *Repository) PutInfluencer(
	ctx context.Context,
	handle, platform string,
	assessment entities.InfluencerAssessment,
	now time.Time,
) error {
	raw, err := json.Marshal(influencerPayloadFromEntity(assessment))
	if err != nil {
		return err
	}
	return r.upsert(ctx, cacheModel{
		EntityKind: string(entities.EntityKindInfluencer),
		EntityKey:  entities.NormalizeEntityKey(handle),
		Platform:   platform,
		Payload:    raw,
		UpdatedAt:  now,
	})
}

func (r *Repository) GetReputation(
	ctx context.Context,
	kind entities.EntityKind,
	name string,
	now time.Time,
) (entities.ReputationAssessment, bool, error) {
	row, found, err := r.latest(ctx, string(kind), entities.NormalizeEntityKey(name), "", now)
	if err != nil || !found {
		return entities.ReputationAssessment{}, false, err
	}
	var payload reputationPayload
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		r.logger.Warn("cached reputation payload is unreadable",
			"event", "trust_cache_payload_unreadable",
			"module", "trust-intelligence/assessment-service",
			"layer", "adapter",
			"kind", string(kind),
			"name", name,
			"error", err.Error(),
		)
		return entities.ReputationAssessment{}, false, nil
	}
	return payload.toEntity(kind), true, nil
}

func (r *Repository) PutReputation(ctx context.Context, assessment entities.ReputationAssessment, now time.Time) error {
	raw, err := json.Marshal(reputationPayloadFromEntity(assessment))
	if err != nil {
		return err
	}
	return r.upsert(ctx, cacheModel{
		EntityKind: string(assessment.Kind),
		EntityKey:  entities.NormalizeEntityKey(assessment.Name),
		Platform:   "",
		Payload:    raw,
		UpdatedAt:  now,
	})
}

func (r *Repository) latest(
	ctx context.Context,
	kind, key, platform string,
	now time.Time,
) (cacheModel, bool, error) {
	var row cacheModel
	err := r.db.WithContext(ctx).
		Where("entity_kind = ?", kind).
		Where("entity_key = ?", key).
		Where("platform = ?", platform).
		Order("updated_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cacheModel{}, false, nil
		}
		r.logger.Error("assessment cache read failed",
			"event", "trust_cache_repo_read_failed",
			"module", "trust-intelligence/assessment-service",
			"layer", "adapter",
			"entity_kind", kind,
			"entity_key", key,
			"error", err.Error(),
		)
		return cacheModel{}, false, domainerrors.ErrCacheUnavailable
	}
	if now.Sub(row.UpdatedAt.UTC()) > entities.CacheTTL {
		return cacheModel{}, false, nil
	}
	return row, true, nil
}

func (r *Repository) upsert(ctx context.Context, row cacheModel) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_kind"}, {Name: "entity_key"}, {Name: "platform"}},
		DoUpdates: clause.Assignments(map[string]any{
			"payload":    row.Payload,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		r.logger.Error("assessment cache upsert failed",
			"event", "trust_cache_repo_upsert_failed",
			"module", "trust-intelligence/assessment-service",
			"layer", "adapter",
			"entity_kind", row.EntityKind,
			"entity_key", row.EntityKey,
			"error", err.Error(),
		)
		return domainerrors.ErrCacheUnavailable
	}
	return nil
}

type cacheModel struct {
	EntityKind string          `gorm:"column:entity_kind;primaryKey"`
	EntityKey  string          `gorm:"column:entity_key;primaryKey"`
	Platform   string          `gorm:"column:platform;primaryKey"`
	Payload    json.RawMessage `gorm:"column:payload;type:jsonb"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (cacheModel) TableName() string {
	return "assessment_cache"
}

type profilePayload struct {
	Platform    string   `json:"platform"`
	Handle      string   `json:"handle"`
	FullName    string   `json:"full_name,omitempty"`
	Followers   int64    `json:"followers"`
	Following   int64    `json:"following"`
	PostsCount  int64    `json:"posts_count"`
	IsVerified  bool     `json:"is_verified"`
	Bio         string   `json:"bio,omitempty"`
	URL         string   `json:"url,omitempty"`
	SamplePosts []string `json:"sample_posts,omitempty"`
}

type influencerPayload struct {
	Stats               profilePayload `json:"stats"`
	MessageHistoryScore float64        `json:"message_history_score"`
	FollowersScore      float64        `json:"followers_score"`
	WebReputationScore  float64        `json:"web_reputation_score"`
	DisclosureScore     float64        `json:"disclosure_score"`
	TrustScore          float64        `json:"trust_score"`
	Label               string         `json:"label"`
	Notes               string         `json:"notes"`
	Issues              []string       `json:"issues,omitempty"`
	WebSummary          string         `json:"web_summary,omitempty"`
	ComputedAt          time.Time      `json:"computed_at"`
}

type reputationPayload struct {
	Name       string    `json:"name"`
	TrustScore float64   `json:"trust_score"`
	Label      string    `json:"label"`
	Summary    string    `json:"summary"`
	Issues     []string  `json:"issues,omitempty"`
	ComputedAt time.Time `json:"computed_at"`
}

func influencerPayloadFromEntity(assessment entities.InfluencerAssessment) influencerPayload {
	return influencerPayload{
		Stats: profilePayload{
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
		MessageHistoryScore: assessment.Assessment.MessageHistoryScore,
		FollowersScore:      assessment.Assessment.FollowersScore,
		WebReputationScore:  assessment.Assessment.WebReputationScore,
		DisclosureScore:     assessment.Assessment.DisclosureScore,
		TrustScore:          assessment.Assessment.TrustScore,
		Label:               string(assessment.Assessment.Label),
		Notes:               assessment.Assessment.Notes,
		Issues:              assessment.Issues,
		WebSummary:          assessment.WebSummary,
		ComputedAt:          assessment.Assessment.ComputedAt,
	}
}

func (p influencerPayload) toEntity() entities.InfluencerAssessment {
	return entities.InfluencerAssessment{
		Stats: entities.ProfileStats{
			Platform:    p.Stats.Platform,
			Handle:      p.Stats.Handle,
			FullName:    p.Stats.FullName,
			Followers:   p.Stats.Followers,
			Following:   p.Stats.Following,
			PostsCount:  p.Stats.PostsCount,
			IsVerified:  p.Stats.IsVerified,
			Bio:         p.Stats.Bio,
			URL:         p.Stats.URL,
			SamplePosts: p.Stats.SamplePosts,
		},
		Assessment: entities.TrustAssessment{
			EntityKey:           entities.NormalizeEntityKey(p.Stats.Handle),
			MessageHistoryScore: p.MessageHistoryScore,
			FollowersScore:      p.FollowersScore,
			WebReputationScore:  p.WebReputationScore,
			DisclosureScore:     p.DisclosureScore,
			TrustScore:          p.TrustScore,
			Label:               entities.TrustLabel(p.Label),
			Notes:               p.Notes,
			ComputedAt:          p.ComputedAt,
		},
		Issues:     p.Issues,
		WebSummary: p.WebSummary,
	}
}

func reputationPayloadFromEntity(assessment entities.ReputationAssessment) reputationPayload {
	return reputationPayload{
		Name:       assessment.Name,
		TrustScore: assessment.TrustScore,
		Label:      string(assessment.Label),
		Summary:    assessment.Summary,
		Issues:     assessment.Issues,
		ComputedAt: assessment.ComputedAt,
	}
}

func (p reputationPayload) toEntity(kind entities.EntityKind) entities.ReputationAssessment {
	return entities.ReputationAssessment{
		Kind:       kind,
		Name:       p.Name,
		TrustScore: p.TrustScore,
		Label:      entities.TrustLabel(p.Label),
		Summary:    p.Summary,
		Issues:     p.Issues,
		ComputedAt: p.ComputedAt,
	}
}

var _ ports.AssessmentCache = (*Repository)(nil)

package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"perseval/contexts/community-experience/marketplace-service/domain/entities"
	domainerrors "perseval/contexts/community-experience/marketplace-service/domain/errors"
	"perseval/contexts/community-experience/marketplace-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

// UpsertListing refreshes profile and trust fields on conflict. Community
// stats and the featured flag belong to other flows and are left untouched on
// re-publication.
func (r *Repository) UpsertListing(ctx context.Context, listing entities.Listing) (string, error) {
	row := listingModelFromEntity(listing)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "handle"}, {Name: "platform"}},
		DoUpdates: clause.Assignments(map[string]any{
			"full_name":   row.FullName,
			"followers":   row.Followers,
			"following":   row.Following,
			"posts_count": row.PostsCount,
			"is_verified": row.IsVerified,
			"bio":         row.Bio,
			"profile_url": row.ProfileURL,
			"trust_score": row.TrustScore,
			"trust_label": row.TrustLabel,
			"notes":       row.Notes,
			"updated_at":  row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return "", r.logError("marketplace_repo_upsert_failed", create.Error,
			"handle", listing.Handle,
		)
	}

	var stored listingModel
	err := r.db.WithContext(ctx).
		Select("id").
		Where("handle = ?", row.Handle).
		Where("platform = ?", row.Platform).
		First(&stored).
		Error
	if err != nil {
		return "", r.logError("marketplace_repo_load_id_failed", err, "handle", listing.Handle)
	}
	return stored.ID, nil
}

func (r *Repository) GetListing(ctx context.Context, handle, platform string) (entities.Listing, error) {
	var row listingModel
	err := r.db.WithContext(ctx).
		Where("handle = ?", handle).
		Where("platform = ?", platform).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Listing{}, domainerrors.ErrListingNotFound
		}
		return entities.Listing{}, r.logError("marketplace_repo_get_failed", err, "handle", handle)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListListings(
	ctx context.Context,
	filter ports.ListingFilter,
) ([]entities.Listing, int64, error) {
	tx := r.db.WithContext(ctx).Model(&listingModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("handle ILIKE ? OR full_name ILIKE ?", pattern, pattern)
	}
	if filter.TrustLabel != "" {
		tx = tx.Where("trust_label = ?", filter.TrustLabel)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, r.logError("marketplace_repo_list_count_failed", err)
	}

	var rows []listingModel
	if err := tx.Order("is_featured DESC").
		Order(orderClause(filter.SortBy, filter.SortOrder)).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, r.logError("marketplace_repo_list_failed", err)
	}

	items := make([]entities.Listing, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, total, nil
}

func (r *Repository) RemoveListing(ctx context.Context, handle, platform string) error {
	result := r.db.WithContext(ctx).
		Where("handle = ?", handle).
		Where("platform = ?", platform).
		Delete(&listingModel{})
	if result.Error != nil {
		return r.logError("marketplace_repo_remove_failed", result.Error, "handle", handle)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrListingNotFound
	}
	return nil
}

func (r *Repository) UpdateVoteStats(
	ctx context.Context,
	handle, platform string,
	userTrustScore float64,
	totalVotes int64,
) error {
	result := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Where("handle = ?", handle).
		Where("platform = ?", platform).
		Updates(map[string]any{
			"user_trust_score": userTrustScore,
			"total_votes":      totalVotes,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return r.logError("marketplace_repo_update_vote_stats_failed", result.Error, "handle", handle)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrListingNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "community-experience/marketplace-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("marketplace repository operation failed", fields...)
	return err
}

func orderClause(sortBy, sortOrder string) string {
	column := "trust_score"
	switch sortBy {
	case "followers", "user_trust_score", "created_at":
		column = sortBy
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

type listingModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Handle         string    `gorm:"column:handle"`
	Platform       string    `gorm:"column:platform"`
	FullName       string    `gorm:"column:full_name"`
	Followers      int64     `gorm:"column:followers"`
	Following      int64     `gorm:"column:following"`
	PostsCount     int64     `gorm:"column:posts_count"`
	IsVerified     bool      `gorm:"column:is_verified"`
	Bio            string    `gorm:"column:bio"`
	ProfileURL     string    `gorm:"column:profile_url"`
	TrustScore     float64   `gorm:"column:trust_score"`
	TrustLabel     string    `gorm:"column:trust_label"`
	Notes          string    `gorm:"column:notes"`
	UserTrustScore float64   `gorm:"column:user_trust_score"`
	TotalVotes     int64     `gorm:"column:total_votes"`
	IsFeatured     bool      `gorm:"column:is_featured"`
	AdminNotes     string    `gorm:"column:admin_notes"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (listingModel) TableName() string {
	return "marketplace_influencers"
}

func listingModelFromEntity(listing entities.Listing) listingModel {
	return listingModel{
		ID:             listing.ListingID,
		Handle:         listing.Handle,
		Platform:       listing.Platform,
		FullName:       listing.FullName,
		Followers:      listing.Followers,
		Following:      listing.Following,
		PostsCount:     listing.PostsCount,
		IsVerified:     listing.IsVerified,
		Bio:            listing.Bio,
		ProfileURL:     listing.ProfileURL,
		TrustScore:     listing.TrustScore,
		TrustLabel:     listing.TrustLabel,
		Notes:          listing.Notes,
		UserTrustScore: listing.UserTrustScore,
		TotalVotes:     listing.TotalVotes,
		IsFeatured:     listing.IsFeatured,
		AdminNotes:     listing.AdminNotes,
		CreatedAt:      listing.CreatedAt.UTC(),
		UpdatedAt:      listing.UpdatedAt.UTC(),
	}
}

func (m listingModel) toEntity() entities.Listing {
	return entities.Listing{
		ListingID:      m.ID,
		Handle:         m.Handle,
		Platform:       m.Platform,
		FullName:       m.FullName,
		Followers:      m.Followers,
		Following:      m.Following,
		PostsCount:     m.PostsCount,
		IsVerified:     m.IsVerified,
		Bio:            m.Bio,
		ProfileURL:     m.ProfileURL,
		TrustScore:     m.TrustScore,
		TrustLabel:     m.TrustLabel,
		Notes:          m.Notes,
		UserTrustScore: m.UserTrustScore,
		TotalVotes:     m.TotalVotes,
		IsFeatured:     m.IsFeatured,
		AdminNotes:     m.AdminNotes,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

var _ ports.Repository = (*Repository)(nil)

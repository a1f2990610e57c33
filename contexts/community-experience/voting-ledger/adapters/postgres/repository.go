package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"perseval/contexts/community-experience/voting-ledger/domain/entities"
	"perseval/contexts/community-experience/voting-ledger/ports"

	"github.com/jackc/pgx/v5/pgconn"
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

func (r *Repository) UpsertVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "handle"},
			{Name: "platform"},
			{Name: "voter_identity"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"vote_type":  row.VoteType,
			"comment":    row.Comment,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("vote_repo_upsert_failed", create.Error,
			"handle", vote.Handle,
			"voter_identity", vote.VoterIdentity,
		)
	}
	return nil
}

func (r *Repository) GetVote(ctx context.Context, handle, platform, voterIdentity string) (entities.Vote, bool, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("handle = ?", handle).
		Where("platform = ?", platform).
		Where("voter_identity = ?", voterIdentity).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, false, nil
		}
		return entities.Vote{}, false, r.logError("vote_repo_get_failed", err,
			"handle", handle,
			"voter_identity", voterIdentity,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CountVotes(ctx context.Context, handle, platform string) (int64, int64, error) {
	var totals struct {
		TrustVotes    int64
		DistrustVotes int64
	}
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Select(
			"COUNT(*) FILTER (WHERE vote_type = ?) AS trust_votes, "+
				"COUNT(*) FILTER (WHERE vote_type = ?) AS distrust_votes",
			string(entities.VoteTypeTrust),
			string(entities.VoteTypeDistrust),
		).
		Where("handle = ?", handle).
		Where("platform = ?", platform).
		Scan(&totals).
		Error
	if err != nil {
		return 0, 0, r.logError("vote_repo_count_failed", err, "handle", handle)
	}
	return totals.TrustVotes, totals.DistrustVotes, nil
}

func (r *Repository) DeleteVote(ctx context.Context, handle, platform, voterIdentity string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("handle = ?", handle).
		Where("platform = ?", platform).
		Where("voter_identity = ?", voterIdentity).
		Delete(&voteModel{})
	if result.Error != nil {
		return false, r.logError("vote_repo_delete_failed", result.Error,
			"handle", handle,
			"voter_identity", voterIdentity,
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListVoteTotals(ctx context.Context, limit, offset int) ([]ports.EntityVoteTotals, error) {
	var rows []struct {
		Handle        string
		Platform      string
		TrustVotes    int64
		DistrustVotes int64
	}
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Select(
			"handle, platform, "+
				"COUNT(*) FILTER (WHERE vote_type = ?) AS trust_votes, "+
				"COUNT(*) FILTER (WHERE vote_type = ?) AS distrust_votes",
			string(entities.VoteTypeTrust),
			string(entities.VoteTypeDistrust),
		).
		Group("handle, platform").
		Order("COUNT(*) DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("vote_repo_list_totals_failed", err)
	}
	items := make([]ports.EntityVoteTotals, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.EntityVoteTotals{
			Handle:        row.Handle,
			Platform:      row.Platform,
			TrustVotes:    row.TrustVotes,
			DistrustVotes: row.DistrustVotes,
		})
	}
	return items, nil
}

func (r *Repository) RecordAttempt(ctx context.Context, voterIdentity string, at time.Time) error {
	row := voteAttemptModel{
		VoterIdentity: voterIdentity,
		AttemptedAt:   at.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("vote_repo_record_attempt_failed", err, "voter_identity", voterIdentity)
	}
	return nil
}

func (r *Repository) CountAttemptsSince(ctx context.Context, voterIdentity string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&voteAttemptModel{}).
		Where("voter_identity = ?", voterIdentity).
		Where("attempted_at >= ?", since.UTC()).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("vote_repo_count_attempts_failed", err, "voter_identity", voterIdentity)
	}
	return count, nil
}

// UserTrustScore delegates to the calculate_user_trust_score database
// function; the formula lives in the schema, not in application code.
func (r *Repository) UserTrustScore(ctx context.Context, handle, platform string) (float64, error) {
	var score float64
	err := r.db.WithContext(ctx).
		Raw("SELECT calculate_user_trust_score(?, ?)", handle, platform).
		Scan(&score).
		Error
	if err != nil {
		if isUndefinedFunction(err) {
			// Optional schema in local development; fall back to neutral.
			return entities.NeutralUserTrustScore, nil
		}
		return 0, r.logError("vote_repo_user_trust_score_failed", err, "handle", handle)
	}
	return score, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "community-experience/voting-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting ledger repository operation failed", fields...)
	return err
}

type voteModel struct {
	Handle        string    `gorm:"column:handle;primaryKey"`
	Platform      string    `gorm:"column:platform;primaryKey"`
	VoterIdentity string    `gorm:"column:voter_identity;primaryKey"`
	VoteType      string    `gorm:"column:vote_type"`
	Comment       string    `gorm:"column:comment"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (voteModel) TableName() string {
	return "influencer_votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		Handle:        vote.Handle,
		Platform:      vote.Platform,
		VoterIdentity: vote.VoterIdentity,
		VoteType:      string(vote.VoteType),
		Comment:       vote.Comment,
		CreatedAt:     vote.CreatedAt.UTC(),
		UpdatedAt:     vote.UpdatedAt.UTC(),
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		Handle:        m.Handle,
		Platform:      m.Platform,
		VoterIdentity: m.VoterIdentity,
		VoteType:      entities.VoteType(m.VoteType),
		Comment:       m.Comment,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type voteAttemptModel struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VoterIdentity string    `gorm:"column:voter_identity"`
	AttemptedAt   time.Time `gorm:"column:attempted_at"`
}

func (voteAttemptModel) TableName() string {
	return "vote_attempts"
}

func isUndefinedFunction(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42883"
}

var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.VoteRateStore = (*Repository)(nil)
var _ ports.VoteScoreAggregate = (*Repository)(nil)

package ratelimit

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"
)

// PostgresStore keeps counters in a single table keyed by client, group, and
// day. The increment runs as one upsert so concurrent requests never lose
// counts.
type PostgresStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPostgresStore(db *gorm.DB, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

func (s *PostgresStore) IncrementAndGet(ctx context.Context, clientKey, group, day string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Raw(
		`INSERT INTO rate_limit_counters (client_key, rate_group, day, count)
		 VALUES (?, ?, ?, 1)
		 ON CONFLICT (client_key, rate_group, day)
		 DO UPDATE SET count = rate_limit_counters.count + 1
		 RETURNING count`,
		clientKey, group, day,
	).Scan(&count).Error
	if err != nil {
		s.logger.Error("rate limit counter upsert failed",
			"event", "rate_limit_counter_upsert_failed",
			"module", "platform/ratelimit",
			"layer", "adapter",
			"group", group,
			"day", day,
			"error", err.Error(),
		)
		return 0, err
	}
	return count, nil
}

func (s *PostgresStore) GetCount(ctx context.Context, clientKey, group, day string) (int64, error) {
	var row counterModel
	err := s.db.WithContext(ctx).
		Where("client_key = ?", clientKey).
		Where("rate_group = ?", group).
		Where("day = ?", day).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		s.logger.Error("rate limit counter read failed",
			"event", "rate_limit_counter_read_failed",
			"module", "platform/ratelimit",
			"layer", "adapter",
			"group", group,
			"day", day,
			"error", err.Error(),
		)
		return 0, err
	}
	return row.Count, nil
}

type counterModel struct {
	ClientKey string `gorm:"column:client_key;primaryKey"`
	RateGroup string `gorm:"column:rate_group;primaryKey"`
	Day       string `gorm:"column:day;primaryKey"`
	Count     int64  `gorm:"column:count"`
}

func (counterModel) TableName() string {
	return "rate_limit_counters"
}

var _ CounterStore = (*PostgresStore)(nil)

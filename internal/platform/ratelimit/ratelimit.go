// Package ratelimit enforces fixed-window daily quotas per client and
// endpoint group. Windows reset at UTC midnight. When the counter store is
// unreachable the limiter denies the request instead of letting traffic
// through unmetered.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	GroupAnalysis   = "analysis"
	GroupTrust      = "trust"
	GroupSubmission = "submission"
	GroupVoteRead   = "vote-read"

	DefaultDailyLimit = 100

	dayFormat = "2006-01-02"
)

// ErrStoreUnavailable marks a counter store failure. Callers treat it as a
// denied request.
var ErrStoreUnavailable = errors.New("rate limit counter store unavailable")

// Result describes the outcome of a single quota check.
type Result struct {
	Allowed      bool
	CurrentCount int64
	Limit        int64
	Remaining    int64
	ResetAt      time.Time
}

// CounterStore persists per-client, per-group, per-day request counters.
// IncrementAndGet must be atomic across concurrent callers.
type CounterStore interface {
	IncrementAndGet(ctx context.Context, clientKey, group, day string) (int64, error)
	GetCount(ctx context.Context, clientKey, group, day string) (int64, error)
}

type Limiter struct {
	store  CounterStore
	limit  int64
	logger *slog.Logger
}

func NewLimiter(store CounterStore, limit int64, logger *slog.Logger) *Limiter {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{
		store:  store,
		limit:  limit,
		logger: logger,
	}
}

func (l *Limiter) Limit() int64 {
	return l.limit
}

// Allow counts the request and reports whether it fits today's quota. The
// increment happens before the comparison, so a denied request still consumed
// one slot for the day.
func (l *Limiter) Allow(ctx context.Context, clientKey, group string, now time.Time) (Result, error) {
	day := now.UTC().Format(dayFormat)
	count, err := l.store.IncrementAndGet(ctx, clientKey, group, day)
	if err != nil {
		l.logger.Error("rate limit counter increment failed; denying request",
			"event", "rate_limit_store_failed",
			"module", "platform/ratelimit",
			"layer", "platform",
			"group", group,
			"error", err.Error(),
		)
		return Result{Limit: l.limit, ResetAt: nextUTCMidnight(now)}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	result := Result{
		Allowed:      count <= l.limit,
		CurrentCount: count,
		Limit:        l.limit,
		Remaining:    l.limit - count,
		ResetAt:      nextUTCMidnight(now),
	}
	if result.CurrentCount > l.limit {
		result.CurrentCount = l.limit
	}
	if result.Remaining < 0 {
		result.Remaining = 0
	}
	return result, nil
}

// Peek reports current usage without consuming a slot.
func (l *Limiter) Peek(ctx context.Context, clientKey, group string, now time.Time) (Result, error) {
	day := now.UTC().Format(dayFormat)
	count, err := l.store.GetCount(ctx, clientKey, group, day)
	if err != nil {
		return Result{Limit: l.limit, ResetAt: nextUTCMidnight(now)}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:      count < l.limit,
		CurrentCount: count,
		Limit:        l.limit,
		Remaining:    remaining,
		ResetAt:      nextUTCMidnight(now),
	}, nil
}

// ClientKey derives the stable storage key for a caller. Raw addresses never
// reach the counter store.
func ClientKey(clientIP string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(clientIP)))
	return hex.EncodeToString(sum[:])
}

func nextUTCMidnight(now time.Time) time.Time {
	utc := now.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

func counterKey(clientKey, group, day string) string {
	return clientKey + "|" + group + "|" + day
}

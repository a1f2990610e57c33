package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type failingStore struct{}

func (failingStore) IncrementAndGet(context.Context, string, string, string) (int64, error) {
	return 0, errors.New("connection refused")
}

func (failingStore) GetCount(context.Context, string, string, string) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestAllowWithinDailyQuota(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 3, nil)
	now := time.Date(2026, time.March, 5, 14, 0, 0, 0, time.UTC)
	client := ClientKey("203.0.113.7")

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(context.Background(), client, GroupAnalysis, now)
		if err != nil {
			t.Fatalf("allow %d failed: %v", i+1, err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if result.Remaining != int64(3-i-1) {
			t.Fatalf("request %d remaining: got %d", i+1, result.Remaining)
		}
	}

	result, err := limiter.Allow(context.Background(), client, GroupAnalysis, now)
	if err != nil {
		t.Fatalf("fourth allow errored: %v", err)
	}
	if result.Allowed {
		t.Fatalf("fourth request should be denied")
	}
	if result.CurrentCount != 3 || result.Remaining != 0 {
		t.Fatalf("denied result: count=%d remaining=%d", result.CurrentCount, result.Remaining)
	}
}

func TestGroupsCountIndependently(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 1, nil)
	now := time.Now().UTC()
	client := ClientKey("203.0.113.7")

	if result, _ := limiter.Allow(context.Background(), client, GroupAnalysis, now); !result.Allowed {
		t.Fatalf("analysis request should be allowed")
	}
	if result, _ := limiter.Allow(context.Background(), client, GroupTrust, now); !result.Allowed {
		t.Fatalf("quota in one group must not spill into another")
	}
	if result, _ := limiter.Allow(context.Background(), client, GroupAnalysis, now); result.Allowed {
		t.Fatalf("second analysis request should be denied")
	}
}

func TestQuotaResetsAtUTCMidnight(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 1, nil)
	client := ClientKey("203.0.113.7")
	day1 := time.Date(2026, time.March, 5, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, time.March, 6, 0, 1, 0, 0, time.UTC)

	if result, _ := limiter.Allow(context.Background(), client, GroupTrust, day1); !result.Allowed {
		t.Fatalf("first request should be allowed")
	}
	if result, _ := limiter.Allow(context.Background(), client, GroupTrust, day1); result.Allowed {
		t.Fatalf("second same-day request should be denied")
	}

	result, err := limiter.Allow(context.Background(), client, GroupTrust, day2)
	if err != nil {
		t.Fatalf("next-day allow failed: %v", err)
	}
	if !result.Allowed {
		t.Fatalf("quota should reset on the new UTC day")
	}
	want := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	if !result.ResetAt.Equal(want) {
		t.Fatalf("reset at: got %v want %v", result.ResetAt, want)
	}
}

func TestStoreFailureDeniesRequest(t *testing.T) {
	limiter := NewLimiter(failingStore{}, 10, nil)
	result, err := limiter.Allow(context.Background(), ClientKey("203.0.113.7"), GroupSubmission, time.Now())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
	if result.Allowed {
		t.Fatalf("store failure must not admit traffic")
	}
}

func TestClientKeyHidesRawAddress(t *testing.T) {
	key := ClientKey(" 203.0.113.7 ")
	if key != ClientKey("203.0.113.7") {
		t.Fatalf("key must be stable under whitespace")
	}
	if len(key) != 64 {
		t.Fatalf("key length: got %d", len(key))
	}
	if key == "203.0.113.7" {
		t.Fatalf("raw address leaked into key")
	}
}

package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	marketplaceservice "perseval/contexts/community-experience/marketplace-service"
	marketplaceentities "perseval/contexts/community-experience/marketplace-service/domain/entities"
	votingledger "perseval/contexts/community-experience/voting-ledger"
	submissionservice "perseval/contexts/moderation-safety/submission-service"
	assessmentservice "perseval/contexts/trust-intelligence/assessment-service"
	"perseval/internal/platform/ratelimit"
)

func newTestServerWithListings(seed []marketplaceentities.Listing) *Server {
	logger := slog.Default()
	marketplace := marketplaceservice.NewInMemoryModule(seed, logger)
	return New(
		assessmentservice.NewInMemoryModule(stubProfiles{}, stubClassifier{}, stubSearch{}, stubJudge{}, logger),
		votingledger.NewInMemoryModule(marketplace.Marketplace, logger),
		submissionservice.NewInMemoryModule(nil, stubPipeline{}, stubPublisher{}, logger),
		marketplace,
		ratelimit.NewLimiter(ratelimit.NewMemoryStore(), ratelimit.DefaultDailyLimit, logger),
		testAdminKey,
		logger,
		":0",
	)
}

func seedListings() []marketplaceentities.Listing {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []marketplaceentities.Listing{
		{
			ListingID:  "listing-a",
			Handle:     "creator_a",
			Platform:   "instagram",
			FullName:   "Creator A",
			Followers:  12000,
			TrustScore: 0.81,
			TrustLabel: "high",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ListingID:  "listing-b",
			Handle:     "creator_b",
			Platform:   "instagram",
			FullName:   "Creator B",
			Followers:  3000,
			TrustScore: 0.45,
			TrustLabel: "medium",
			IsFeatured: true,
			CreatedAt:  now.Add(time.Hour),
			UpdatedAt:  now.Add(time.Hour),
		},
	}
}

func TestListMarketplaceRanksFeaturedFirst(t *testing.T) {
	server := newTestServerWithListings(seedListings())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/marketplace", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	items, ok := payload["items"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 listings, got %s", rr.Body.String())
	}
	first := items[0].(map[string]any)
	if first["handle"] != "creator_b" {
		t.Fatalf("expected featured listing first, got %#v", first["handle"])
	}
}

func TestGetListingByHandle(t *testing.T) {
	server := newTestServerWithListings(seedListings())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/marketplace/creator_a", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	listing, ok := payload["listing"].(map[string]any)
	if !ok || listing["trust_label"] != "high" {
		t.Fatalf("expected high trust listing, got %s", rr.Body.String())
	}
}

func TestGetUnknownListingReturnsNotFound(t *testing.T) {
	server := newTestServerWithListings(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/marketplace/nobody", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRemoveListingRequiresAdmin(t *testing.T) {
	server := newTestServerWithListings(seedListings())
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/marketplace/creator_a", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRemoveListingDeletesAndReports(t *testing.T) {
	server := newTestServerWithListings(seedListings())
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/marketplace/creator_a", nil)
	req.Header.Set("Authorization", "Bearer "+testAdminKey)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/marketplace/creator_a", nil)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, getReq)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after removal, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVoteSyncUpdatesListingStats(t *testing.T) {
	server := newTestServerWithListings(seedListings())
	castTestVote(t, server, "creator_a", "voter-1", "trust")
	castTestVote(t, server, "creator_a", "voter-2", "trust")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/marketplace/creator_a", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	listing := payload["listing"].(map[string]any)
	if listing["total_votes"] != float64(2) {
		t.Fatalf("expected synced vote total 2, got %#v", listing["total_votes"])
	}
}

package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	marketplaceservice "perseval/contexts/community-experience/marketplace-service"
	votingledger "perseval/contexts/community-experience/voting-ledger"
	submissionservice "perseval/contexts/moderation-safety/submission-service"
	submissionentities "perseval/contexts/moderation-safety/submission-service/domain/entities"
	assessmentservice "perseval/contexts/trust-intelligence/assessment-service"
	assessmententities "perseval/contexts/trust-intelligence/assessment-service/domain/entities"
	"perseval/internal/platform/ratelimit"
)

const testAdminKey = "test-admin-key"

type stubProfiles struct{}

func (stubProfiles) FetchProfile(_ context.Context, handle string, _ int) (assessmententities.ProfileStats, error) {
	return assessmententities.ProfileStats{
		Platform:    "instagram",
		Handle:      handle,
		FullName:    "Test Account",
		Followers:   5000,
		Following:   100,
		PostsCount:  40,
		IsVerified:  false,
		SamplePosts: []string{"big giveaway, check the link in bio #ad"},
	}, nil
}

type stubClassifier struct{}

func (stubClassifier) ClassifyText(_ context.Context, _ string) (assessmententities.Classification, error) {
	return assessmententities.Classification{
		Label:  assessmententities.ClassificationNotScam,
		Score:  0.9,
		Reason: "no scam markers",
	}, nil
}

type stubSearch struct{}

func (stubSearch) Search(_ context.Context, _ []string, _ int) ([]assessmententities.SearchSnippet, error) {
	return []assessmententities.SearchSnippet{
		{Title: "review", Snippet: "generally positive reviews", Link: "https://example.com/review"},
	}, nil
}

type stubJudge struct{}

func (stubJudge) JudgeReputation(
	_ context.Context,
	_ assessmententities.EntityKind,
	_ string,
	_ []assessmententities.SearchSnippet,
) (assessmententities.ReputationVerdict, error) {
	return assessmententities.ReputationVerdict{
		Reliability: 0.8,
		Summary:     "no credible complaints found",
	}, nil
}

type stubPublisher struct{}

func (stubPublisher) Publish(_ context.Context, _ submissionentities.AnalysisData) (string, error) {
	return "listing-1", nil
}

type stubPipeline struct{}

func (stubPipeline) Assess(_ context.Context, handle string) (submissionentities.AnalysisData, error) {
	return submissionentities.AnalysisData{
		Handle:     handle,
		Platform:   "instagram",
		Followers:  5000,
		TrustScore: 0.7,
		TrustLabel: "medium",
	}, nil
}

func newTestServer() *Server {
	return newTestServerWithLimit(ratelimit.DefaultDailyLimit)
}

func newTestServerWithLimit(limit int64) *Server {
	logger := slog.Default()
	marketplace := marketplaceservice.NewInMemoryModule(nil, logger)
	return New(
		assessmentservice.NewInMemoryModule(stubProfiles{}, stubClassifier{}, stubSearch{}, stubJudge{}, logger),
		votingledger.NewInMemoryModule(marketplace.Marketplace, logger),
		submissionservice.NewInMemoryModule(nil, stubPipeline{}, stubPublisher{}, logger),
		marketplace,
		ratelimit.NewLimiter(ratelimit.NewMemoryStore(), limit, logger),
		testAdminKey,
		logger,
		":0",
	)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if payload["status"] != "ok" {
		t.Fatalf("expected ok status, got %#v", payload["status"])
	}
}

func TestAnalyzeTextRejectsInvalidJSON(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/text", bytes.NewReader([]byte("{not json")))

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAnalyzeTextRejectsEmptyText(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/text", bytes.NewReader([]byte(`{"text":"  "}`)))

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAnalyzeTextReturnsClassification(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/text", bytes.NewReader([]byte(`{"text":"hello there"}`)))

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if payload["label"] != "not_scam" {
		t.Fatalf("expected not_scam label, got %#v", payload["label"])
	}
}

func TestInfluencerTrustReturnsCompositeScore(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/influencer/trust", bytes.NewReader([]byte(`{"handle":"@SomeCreator"}`)))

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	score, ok := payload["trust_score"].(float64)
	if !ok {
		t.Fatalf("expected numeric trust_score, got %#v", payload["trust_score"])
	}
	if score < 0 || score > 1 {
		t.Fatalf("trust score out of range: %v", score)
	}
	if payload["label"] == "" {
		t.Fatalf("expected non-empty label")
	}
}

func TestCompanyTrustRequiresName(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/company/trust", bytes.NewReader([]byte(`{"name":""}`)))

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAnalysisRoutesShareDailyQuota(t *testing.T) {
	server := newTestServerWithLimit(2)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/text", bytes.NewReader([]byte(`{"text":"hello"}`)))
		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d body=%s", i+1, rr.Code, rr.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/text", bytes.NewReader([]byte(`{"text":"hello"}`)))
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("expected zero remaining, got %q", rr.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimitStatusRejectsUnknownGroup(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rate-limit/status?group=uploads", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRateLimitStatusDoesNotConsumeQuota(t *testing.T) {
	server := newTestServer()

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rate-limit/status?group=analysis", nil)
		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
		}
		var payload map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
		if payload["current_count"] != float64(0) {
			t.Fatalf("status check must not consume quota, got count %#v", payload["current_count"])
		}
	}
}

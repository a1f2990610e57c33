package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func createTestSubmission(t *testing.T, server *Server, handle string) string {
	t.Helper()
	body := []byte(`{"handle":"` + handle + `","platform":"instagram","reason":"suspected fake followers"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader(body))
	req.Header.Set("X-User-Id", "member-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatalf("expected submission id in response, got %s", rr.Body.String())
	}
	return id
}

func TestCreateSubmissionReturnsPending(t *testing.T) {
	server := newTestServer()
	id := createTestSubmission(t, server, "someone")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/"+id, nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	submission, ok := payload["submission"].(map[string]any)
	if !ok {
		t.Fatalf("expected submission object, got %s", rr.Body.String())
	}
	if submission["status"] != "pending" {
		t.Fatalf("expected pending status, got %#v", submission["status"])
	}
}

func TestCreateSubmissionRejectsDuplicate(t *testing.T) {
	server := newTestServer()
	createTestSubmission(t, server, "dupe_target")

	body := []byte(`{"handle":"@Dupe_Target","platform":"instagram"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader(body))
	req.Header.Set("X-User-Id", "member-2")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListSubmissionsScopedToCaller(t *testing.T) {
	server := newTestServer()
	createTestSubmission(t, server, "mine_one")
	createTestSubmission(t, server, "mine_two")

	otherBody := []byte(`{"handle":"theirs","platform":"instagram"}`)
	otherReq := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader(otherBody))
	otherReq.Header.Set("X-User-Id", "member-9")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, otherReq)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions", nil)
	req.Header.Set("X-User-Id", "member-1")
	rr = httptest.NewRecorder()
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
		t.Fatalf("expected 2 submissions for caller, got %s", rr.Body.String())
	}
}

func TestGetUnknownSubmissionReturnsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/missing-id", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdminListSubmissionsRequiresBearer(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/submissions", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdminListSubmissionsRejectsWrongKey(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdminRoutesDisabledWithoutConfiguredKey(t *testing.T) {
	server := newTestServer()
	server.adminAPIKey = ""

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+testAdminKey)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdminReviewFlowPublishesToMarketplace(t *testing.T) {
	server := newTestServer()
	id := createTestSubmission(t, server, "approve_me")

	analyzeReq := httptest.NewRequest(http.MethodPost, "/api/v1/admin/submissions/"+id+"/analyze", nil)
	analyzeReq.Header.Set("Authorization", "Bearer "+testAdminKey)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, analyzeReq)
	if rr.Code != http.StatusOK {
		t.Fatalf("analyze: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	reviewBody := []byte(`{"decision":"approved","add_to_marketplace":true}`)
	reviewReq := httptest.NewRequest(http.MethodPost, "/api/v1/admin/submissions/"+id+"/review", bytes.NewReader(reviewBody))
	reviewReq.Header.Set("Authorization", "Bearer "+testAdminKey)
	reviewReq.Header.Set("X-Admin-Id", "admin-7")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, reviewReq)
	if rr.Code != http.StatusOK {
		t.Fatalf("review: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if payload["marketplace_id"] == "" || payload["marketplace_id"] == nil {
		t.Fatalf("expected marketplace id, got %s", rr.Body.String())
	}
	submission, ok := payload["submission"].(map[string]any)
	if !ok || submission["status"] != "approved" {
		t.Fatalf("expected approved submission, got %s", rr.Body.String())
	}
}

func TestAdminRejectRequiresReason(t *testing.T) {
	server := newTestServer()
	id := createTestSubmission(t, server, "reject_me")

	reviewBody := []byte(`{"decision":"rejected"}`)
	reviewReq := httptest.NewRequest(http.MethodPost, "/api/v1/admin/submissions/"+id+"/review", bytes.NewReader(reviewBody))
	reviewReq.Header.Set("Authorization", "Bearer "+testAdminKey)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, reviewReq)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

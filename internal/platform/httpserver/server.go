package httpserver

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	marketplaceservice "perseval/contexts/community-experience/marketplace-service"
	votingledger "perseval/contexts/community-experience/voting-ledger"
	submissionservice "perseval/contexts/moderation-safety/submission-service"
	assessmentservice "perseval/contexts/trust-intelligence/assessment-service"
	"perseval/internal/platform/ratelimit"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "perseval/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	adminAPIKey string
	limiter     *ratelimit.Limiter
	assessment  assessmentservice.Module
	votes       votingledger.Module
	submissions submissionservice.Module
	marketplace marketplaceservice.Module
}

func New(
	assessment assessmentservice.Module,
	votes votingledger.Module,
	submissions submissionservice.Module,
	marketplace marketplaceservice.Module,
	limiter *ratelimit.Limiter,
	adminAPIKey string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		adminAPIKey: strings.TrimSpace(adminAPIKey),
		limiter:     limiter,
		assessment:  assessment,
		votes:       votes,
		submissions: submissions,
		marketplace: marketplace,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/analyze/text", s.handleAnalyzeText)
	s.mux.HandleFunc("POST /api/v1/influencer/trust", s.handleInfluencerTrust)
	s.mux.HandleFunc("POST /api/v1/company/trust", s.handleCompanyTrust)
	s.mux.HandleFunc("POST /api/v1/product/trust", s.handleProductTrust)
	s.mux.HandleFunc("GET /api/v1/rate-limit/status", s.handleRateLimitStatus)

	s.mux.HandleFunc("POST /api/v1/influencers/{handle}/votes", s.handleSubmitVote)
	s.mux.HandleFunc("GET /api/v1/influencers/{handle}/votes", s.handleGetVotes)
	s.mux.HandleFunc("DELETE /api/v1/influencers/{handle}/votes", s.handleDeleteVote)
	s.mux.HandleFunc("GET /api/v1/votes/stats", s.handleListVoteStats)

	s.mux.HandleFunc("POST /api/v1/submissions", s.handleCreateSubmission)
	s.mux.HandleFunc("GET /api/v1/submissions", s.handleListMySubmissions)
	s.mux.HandleFunc("GET /api/v1/submissions/{submission_id}", s.handleGetSubmission)

	s.mux.HandleFunc("GET /api/v1/admin/submissions", s.handleAdminListSubmissions)
	s.mux.HandleFunc("POST /api/v1/admin/submissions/{submission_id}/analyze", s.handleAdminTriggerAnalysis)
	s.mux.HandleFunc("POST /api/v1/admin/submissions/{submission_id}/review", s.handleAdminReviewSubmission)

	s.mux.HandleFunc("GET /api/v1/marketplace", s.handleListMarketplace)
	s.mux.HandleFunc("GET /api/v1/marketplace/{handle}", s.handleGetListing)
	s.mux.HandleFunc("DELETE /api/v1/marketplace/{handle}", s.handleRemoveListing)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "perseval",
	})
}

func (s *Server) handleRateLimitStatus(w http.ResponseWriter, r *http.Request) {
	group := strings.TrimSpace(r.URL.Query().Get("group"))
	switch group {
	case ratelimit.GroupAnalysis, ratelimit.GroupTrust, ratelimit.GroupSubmission, ratelimit.GroupVoteRead:
	default:
		writeError(w, http.StatusBadRequest, "invalid_group", "group must be one of analysis, trust, submission, vote-read")
		return
	}

	result, err := s.limiter.Peek(r.Context(), ratelimit.ClientKey(resolveClientIP(r)), group, time.Now())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "rate_limit_unavailable", "rate limit store is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, rateLimitStatusResponse{
		Group:        group,
		Limit:        result.Limit,
		CurrentCount: result.CurrentCount,
		Remaining:    result.Remaining,
		ResetAt:      result.ResetAt.Format(time.RFC3339),
	})
}

type rateLimitStatusResponse struct {
	Group        string `json:"group"`
	Limit        int64  `json:"limit"`
	CurrentCount int64  `json:"current_count"`
	Remaining    int64  `json:"remaining"`
	ResetAt      string `json:"reset_at"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// allowRate consumes one quota slot for the caller and writes the 429 or 503
// response itself when the request cannot proceed.
func (s *Server) allowRate(w http.ResponseWriter, r *http.Request, group string) bool {
	result, err := s.limiter.Allow(r.Context(), ratelimit.ClientKey(resolveClientIP(r)), group, time.Now())
	if err != nil {
		if errors.Is(err, ratelimit.ErrStoreUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "rate_limit_unavailable", "rate limit store is unavailable")
			return false
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return false
	}

	w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
	w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
	w.Header().Set("X-RateLimit-Reset", result.ResetAt.Format(time.RFC3339))

	if !result.Allowed {
		rateLimitDenialsCounter.WithLabelValues(group).Inc()
		writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "daily request limit reached for this endpoint group")
		return false
	}
	return true
}

// requireAdmin enforces the bearer key on privileged routes. An unconfigured
// key disables the admin surface entirely instead of leaving it open.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if s.adminAPIKey == "" {
		writeError(w, http.StatusNotImplemented, "admin_disabled", "admin API key is not configured")
		return false
	}

	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(parts[1])), []byte(s.adminAPIKey)) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid admin token")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.Index(forwarded, ","); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	return host
}

// resolveCallerIdentity keys votes and submissions to the caller. An explicit
// user id wins; anonymous callers fall back to the hashed client address.
func resolveCallerIdentity(r *http.Request) string {
	if userID := strings.TrimSpace(r.Header.Get("X-User-Id")); userID != "" {
		return userID
	}
	return ratelimit.ClientKey(resolveClientIP(r))
}

func parseIntQuery(raw string, fallback int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func resolvePlatform(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("platform"))
}

package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

type ScamPredictionResponse struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

type InfluencerTrustRequest struct {
	Handle   string `json:"handle"`
	MaxPosts int    `json:"max_posts,omitempty"`
}

type ProfileStatsResponse struct {
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

type InfluencerTrustResponse struct {
	Stats               ProfileStatsResponse `json:"stats"`
	TrustScore          float64              `json:"trust_score"`
	Label               string               `json:"label"`
	MessageHistoryScore float64              `json:"message_history_score"`
	FollowersScore      float64              `json:"followers_score"`
	WebReputationScore  float64              `json:"web_reputation_score"`
	DisclosureScore     float64              `json:"disclosure_score"`
	Notes               string               `json:"notes"`
	Issues              []string             `json:"issues,omitempty"`
	ComputedAt          string               `json:"computed_at"`
	FromCache           bool                 `json:"from_cache"`
}

type EntityTrustRequest struct {
	Name       string `json:"name"`
	MaxResults int    `json:"max_results,omitempty"`
}

type EntityTrustResponse struct {
	Name       string   `json:"name"`
	TrustScore float64  `json:"trust_score"`
	Label      string   `json:"label"`
	Summary    string   `json:"summary"`
	Issues     []string `json:"issues,omitempty"`
	ComputedAt string   `json:"computed_at"`
	FromCache  bool     `json:"from_cache"`
}

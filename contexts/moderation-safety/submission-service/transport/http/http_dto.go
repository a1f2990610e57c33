package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateSubmissionRequest struct {
	Handle   string `json:"handle"`
	Platform string `json:"platform"`
	Reason   string `json:"reason,omitempty"`
}

type CreateSubmissionResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AnalysisDataDTO struct {
	Handle              string  `json:"handle"`
	Platform            string  `json:"platform"`
	FullName            string  `json:"full_name,omitempty"`
	Followers           int64   `json:"followers"`
	Following           int64   `json:"following"`
	PostsCount          int64   `json:"posts_count"`
	IsVerified          bool    `json:"is_verified"`
	Bio                 string  `json:"bio,omitempty"`
	ProfileURL          string  `json:"profile_url,omitempty"`
	TrustScore          float64 `json:"trust_score"`
	TrustLabel          string  `json:"trust_label"`
	MessageHistoryScore float64 `json:"message_history_score"`
	FollowersScore      float64 `json:"followers_score"`
	WebReputationScore  float64 `json:"web_reputation_score"`
	DisclosureScore     float64 `json:"disclosure_score"`
	Notes               string  `json:"notes,omitempty"`
}

type SubmissionDTO struct {
	ID                string           `json:"id"`
	Handle            string           `json:"handle"`
	Platform          string           `json:"platform"`
	Reason            string           `json:"reason,omitempty"`
	Status            string           `json:"status"`
	AnalysisData      *AnalysisDataDTO `json:"analysis_data,omitempty"`
	TrustScore        *float64         `json:"trust_score,omitempty"`
	AnalysisError     string           `json:"analysis_error,omitempty"`
	ReviewedBy        string           `json:"reviewed_by,omitempty"`
	ReviewedAt        string           `json:"reviewed_at,omitempty"`
	AdminNotes        string           `json:"admin_notes,omitempty"`
	RejectionReason   string           `json:"rejection_reason,omitempty"`
	SubmitterIdentity string           `json:"submitter_identity,omitempty"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
}

type GetSubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type ListSubmissionsResponse struct {
	Items []SubmissionDTO `json:"items"`
	Total int64           `json:"total"`
}

type TriggerAnalysisResponse struct {
	Submission SubmissionDTO `json:"submission"`
	Message    string        `json:"message"`
}

type ReviewSubmissionRequest struct {
	Decision         string `json:"decision"`
	AdminNotes       string `json:"admin_notes,omitempty"`
	RejectionReason  string `json:"rejection_reason,omitempty"`
	AddToMarketplace bool   `json:"add_to_marketplace"`
}

type ReviewSubmissionResponse struct {
	Submission    SubmissionDTO `json:"submission"`
	Message       string        `json:"message"`
	MarketplaceID string        `json:"marketplace_id,omitempty"`
}

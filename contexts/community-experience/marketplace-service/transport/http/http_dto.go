package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ListingDTO struct {
	ID             string  `json:"id"`
	Handle         string  `json:"handle"`
	Platform       string  `json:"platform"`
	FullName       string  `json:"full_name,omitempty"`
	Followers      int64   `json:"followers"`
	Following      int64   `json:"following"`
	PostsCount     int64   `json:"posts_count"`
	IsVerified     bool    `json:"is_verified"`
	Bio            string  `json:"bio,omitempty"`
	ProfileURL     string  `json:"profile_url,omitempty"`
	TrustScore     float64 `json:"trust_score"`
	TrustLabel     string  `json:"trust_label"`
	Notes          string  `json:"notes,omitempty"`
	UserTrustScore float64 `json:"user_trust_score"`
	TotalVotes     int64   `json:"total_votes"`
	IsFeatured     bool    `json:"is_featured"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type GetListingResponse struct {
	Listing ListingDTO `json:"listing"`
}

type ListListingsResponse struct {
	Items []ListingDTO `json:"items"`
	Total int64        `json:"total"`
}

type RemoveListingResponse struct {
	Removed bool   `json:"removed"`
	Handle  string `json:"handle"`
}

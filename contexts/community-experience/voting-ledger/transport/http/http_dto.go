package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitVoteRequest struct {
	VoteType string `json:"vote_type"`
	Comment  string `json:"comment,omitempty"`
}

type VoteStatsDTO struct {
	TrustVotes     int64   `json:"trust_votes"`
	DistrustVotes  int64   `json:"distrust_votes"`
	TotalVotes     int64   `json:"total_votes"`
	UserTrustScore float64 `json:"user_trust_score"`
}

type SubmitVoteResponse struct {
	VoteType string       `json:"vote_type"`
	Stats    VoteStatsDTO `json:"stats"`
}

type GetVotesResponse struct {
	Stats    VoteStatsDTO `json:"stats"`
	UserVote string       `json:"user_vote,omitempty"`
}

type DeleteVoteResponse struct {
	Deleted bool         `json:"deleted"`
	Stats   VoteStatsDTO `json:"stats"`
}

type EntityStatsDTO struct {
	Handle   string       `json:"handle"`
	Platform string       `json:"platform"`
	Stats    VoteStatsDTO `json:"stats"`
}

type ListVoteStatsResponse struct {
	Items []EntityStatsDTO `json:"items"`
}

package entities

import (
	"strings"
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusAnalyzing SubmissionStatus = "analyzing"
	SubmissionStatusApproved  SubmissionStatus = "approved"
	SubmissionStatusRejected  SubmissionStatus = "rejected"
)

// IsTerminal reports whether review already settled the submission.
// Terminal submissions never change again.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

type ReviewDecision string

const (
	ReviewDecisionApproved ReviewDecision = "approved"
	ReviewDecisionRejected ReviewDecision = "rejected"
)

// AnalysisData is the snapshot of the trust pipeline's output stored on the
// submission and later published to the marketplace.
type AnalysisData struct {
	Handle              string
	Platform            string
	FullName            string
	Followers           int64
	Following           int64
	PostsCount          int64
	IsVerified          bool
	Bio                 string
	ProfileURL          string
	TrustScore          float64
	TrustLabel          string
	MessageHistoryScore float64
	FollowersScore      float64
	WebReputationScore  float64
	DisclosureScore     float64
	Notes               string
}

type Submission struct {
	SubmissionID      string
	Handle            string
	Platform          string
	Reason            string
	Status            SubmissionStatus
	AnalysisData      *AnalysisData
	TrustScore        *float64
	AnalysisError     string
	ReviewedBy        string
	ReviewedAt        *time.Time
	AdminNotes        string
	RejectionReason   string
	SubmitterIdentity string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (s Submission) ValidateCreate() bool {
	return strings.TrimSpace(s.Handle) != "" &&
		strings.TrimSpace(s.Platform) != "" &&
		strings.TrimSpace(s.SubmitterIdentity) != ""
}

// NormalizeHandle strips a leading @ and lowercases so duplicate checks and
// storage keys agree regardless of how the submitter typed the handle.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

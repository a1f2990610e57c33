package entities

import (
	"strings"
	"time"
)

// CacheTTL bounds how long a computed assessment stays logically valid.
// Older rows are treated as absent regardless of physical presence.
const CacheTTL = 7 * 24 * time.Hour

type EntityKind string

const (
	EntityKindInfluencer EntityKind = "influencer"
	EntityKindCompany    EntityKind = "company"
	EntityKindProduct    EntityKind = "product"
)

type TrustLabel string

const (
	TrustLabelHigh   TrustLabel = "high"
	TrustLabelMedium TrustLabel = "medium"
	TrustLabelLow    TrustLabel = "low"
)

type ClassificationLabel string

const (
	ClassificationScam      ClassificationLabel = "scam"
	ClassificationNotScam   ClassificationLabel = "not_scam"
	ClassificationUncertain ClassificationLabel = "uncertain"
)

// Classification is the scam-classifier verdict for a single piece of text.
type Classification struct {
	Label  ClassificationLabel
	Score  float64
	Reason string
}

// ProfileStats is the raw profile snapshot fetched for a handle.
type ProfileStats struct {
	Platform    string
	Handle      string
	FullName    string
	Followers   int64
	Following   int64
	PostsCount  int64
	IsVerified  bool
	Bio         string
	URL         string
	SamplePosts []string
}

// TrustAssessment is the composite trust verdict for an entity. Sub-scores and
// the combined score are always within [0,1]; the record is immutable once
// computed and only superseded by a fresh computation after cache expiry.
type TrustAssessment struct {
	EntityKey           string
	MessageHistoryScore float64
	FollowersScore      float64
	WebReputationScore  float64
	DisclosureScore     float64
	TrustScore          float64
	Label               TrustLabel
	Notes               string
	ComputedAt          time.Time
}

// InfluencerAssessment bundles the assessment with the profile snapshot it was
// computed from. This is the shape cached and returned to callers.
type InfluencerAssessment struct {
	Stats      ProfileStats
	Assessment TrustAssessment
	Issues     []string
	WebSummary string
}

// ReputationAssessment is the web-reputation-only verdict used for companies
// and products.
type ReputationAssessment struct {
	Kind       EntityKind
	Name       string
	TrustScore float64
	Label      TrustLabel
	Summary    string
	Issues     []string
	ComputedAt time.Time
}

// SearchSnippet is one deduplicated web search result.
type SearchSnippet struct {
	Title   string
	Snippet string
	Link    string
}

// ReputationVerdict is what the reputation judge returns for a snippet set.
type ReputationVerdict struct {
	Reliability float64
	Issues      []string
	Summary     string
}

// NormalizeEntityKey lowercases an identity and strips the leading @ used on
// social handles, so cache rows and votes converge on one key per entity.
func NormalizeEntityKey(raw string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "@"))
}

package ports

import (
	"context"
	"time"

	"perseval/contexts/trust-intelligence/assessment-service/domain/entities"
)

// Classifier evaluates one piece of text for scam signals.
type Classifier interface {
	ClassifyText(ctx context.Context, text string) (entities.Classification, error)
}

// SearchProvider runs web searches and returns snippets deduplicated by link.
type SearchProvider interface {
	Search(ctx context.Context, queries []string, maxResults int) ([]entities.SearchSnippet, error)
}

// ReputationJudge condenses search snippets into a reliability verdict.
type ReputationJudge interface {
	JudgeReputation(
		ctx context.Context,
		kind entities.EntityKind,
		entityName string,
		snippets []entities.SearchSnippet,
	) (entities.ReputationVerdict, error)
}

// ProfileProvider fetches profile stats and recent captions for a handle.
type ProfileProvider interface {
	FetchProfile(ctx context.Context, handle string, maxPosts int) (entities.ProfileStats, error)
}

// AssessmentCache is the shared TTL cache of computed assessments. Reads must
// treat rows older than the TTL as absent; writes are atomic per-key upserts
// resolved last-write-wins across instances.
type AssessmentCache interface {
	GetInfluencer(ctx context.Context, handle, platform string, now time.Time) (entities.InfluencerAssessment, bool, error)
	PutInfluencer(ctx context.Context, handle, platform string, assessment entities.InfluencerAssessment, now time.Time) error
	GetReputation(ctx context.Context, kind entities.EntityKind, name string, now time.Time) (entities.ReputationAssessment, bool, error)
	PutReputation(ctx context.Context, assessment entities.ReputationAssessment, now time.Time) error
}

type Clock interface {
	Now() time.Time
}

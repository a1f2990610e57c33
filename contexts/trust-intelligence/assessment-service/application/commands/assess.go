package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "perseval/contexts/trust-intelligence/assessment-service/application"
	"perseval/contexts/trust-intelligence/assessment-service/domain/entities"
	domainerrors "perseval/contexts/trust-intelligence/assessment-service/domain/errors"
	"perseval/contexts/trust-intelligence/assessment-service/domain/scoring"
	"perseval/contexts/trust-intelligence/assessment-service/ports"
)

const (
	// Only Instagram profiles are probed in this build.
	DefaultPlatform = "instagram"

	defaultMaxPosts      = 5
	defaultMaxSnippets   = 8
	neutralReliability   = 0.5
	neutralIssue         = "Insufficient public data"
	neutralSummary       = "No meaningful search results to evaluate reputation."
	noResultsSummaryNote = "Little public information available."
)

// AssessmentResult reports whether the response came from the shared cache.
type AssessmentResult struct {
	Assessment entities.InfluencerAssessment
	FromCache  bool
}

// ReputationResult is the cache-aware company/product counterpart.
type ReputationResult struct {
	Assessment entities.ReputationAssessment
	FromCache  bool
}

// TrustUseCase orchestrates trust computation: cache lookup, collaborator
// fan-in, score aggregation, and cache write-back. It holds no mutable state;
// all cross-request state lives behind the cache port.
type TrustUseCase struct {
	Cache      ports.AssessmentCache
	Profiles   ports.ProfileProvider
	Classifier ports.Classifier
	Search     ports.SearchProvider
	Judge      ports.ReputationJudge
	Clock      ports.Clock
	Logger     *slog.Logger
}

// AnalyzeText classifies caller-supplied text directly. This is the primary
// classification path: a classifier outage here fails the request instead of
// degrading to a neutral verdict.
func (uc TrustUseCase) AnalyzeText(ctx context.Context, text string) (entities.Classification, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return entities.Classification{}, domainerrors.ErrEmptyAnalysisText
	}
	prediction, err := uc.Classifier.ClassifyText(ctx, cleaned)
	if err != nil {
		return entities.Classification{}, fmt.Errorf("%w: %v", domainerrors.ErrClassifierUnavailable, err)
	}
	return prediction, nil
}

// AssessInfluencer returns the cached assessment when fresh, otherwise
// computes the four-factor trust score from live collaborator signals and
// writes it back.
func (uc TrustUseCase) AssessInfluencer(ctx context.Context, handle string, maxPosts int) (AssessmentResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	normalized := entities.NormalizeEntityKey(handle)
	if normalized == "" {
		return AssessmentResult{}, domainerrors.ErrEmptyHandle
	}
	if maxPosts <= 0 {
		maxPosts = defaultMaxPosts
	}
	now := uc.Clock.Now().UTC()

	if cached, found, err := uc.Cache.GetInfluencer(ctx, normalized, DefaultPlatform, now); err != nil {
		logger.Warn("assessment cache read failed; recomputing",
			"event", "trust_cache_read_failed",
			"module", "trust-intelligence/assessment-service",
			"layer", "application",
			"handle", normalized,
			"error", err.Error(),
		)
	} else if found {
		logger.Info("assessment served from cache",
			"event", "trust_cache_hit",
			"module", "trust-intelligence/assessment-service",
			"layer", "application",
			"handle", normalized,
		)
		return AssessmentResult{Assessment: cached, FromCache: true}, nil
	}

	stats, err := uc.Profiles.FetchProfile(ctx, normalized, maxPosts)
	if err != nil {
		return AssessmentResult{}, fmt.Errorf("%w: %v", domainerrors.ErrProfileUnavailable, err)
	}

	messageHistoryScore := uc.classifyHistory(ctx, logger, normalized, stats.SamplePosts)
	followersScore := scoring.FollowersScore(stats.Followers, stats.Following)
	disclosureScore := scoring.DisclosureScore(stats.SamplePosts)

	verdict := uc.judgeReputation(ctx, logger, entities.EntityKindInfluencer, normalized,
		influencerQueries(normalized, stats.FullName), defaultMaxSnippets)

	trustScore := scoring.Combine(messageHistoryScore, followersScore, verdict.Reliability, disclosureScore)
	assessment := entities.InfluencerAssessment{
		Stats: stats,
		Assessment: entities.TrustAssessment{
			EntityKey:           normalized,
			MessageHistoryScore: messageHistoryScore,
			FollowersScore:      followersScore,
			WebReputationScore:  verdict.Reliability,
			DisclosureScore:     disclosureScore,
			TrustScore:          trustScore,
			Label:               scoring.LabelFor(trustScore),
			Notes:               scoring.Notes(messageHistoryScore, followersScore, disclosureScore, verdict.Summary),
			ComputedAt:          now,
		},
		Issues:     verdict.Issues,
		WebSummary: verdict.Summary,
	}

	if err := uc.Cache.PutInfluencer(ctx, normalized, DefaultPlatform, assessment, now); err != nil {
		logger.Warn("assessment cache write failed",
			"event", "trust_cache_write_failed",
			"module", "trust-intelligence/assessment-service",
			"layer", "application",
			"handle", normalized,
			"error", err.Error(),
		)
	}

	logger.Info("influencer assessment computed",
		"event", "trust_assessment_computed",
		"module", "trust-intelligence/assessment-service",
		"layer", "application",
		"handle", normalized,
		"trust_score", trustScore,
		"label", string(assessment.Assessment.Label),
	)
	return AssessmentResult{Assessment: assessment}, nil
}

// AssessReputation computes the web-reputation-only verdict for companies and
// products.
func (uc TrustUseCase) AssessReputation(
	ctx context.Context,
	kind entities.EntityKind,
	name string,
	maxResults int,
) (ReputationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if kind != entities.EntityKindCompany && kind != entities.EntityKindProduct {
		return ReputationResult{}, domainerrors.ErrUnsupportedEntityKind
	}
	key := entities.NormalizeEntityKey(name)
	if key == "" {
		return ReputationResult{}, domainerrors.ErrEmptyEntityName
	}
	if maxResults <= 0 {
		maxResults = defaultMaxSnippets
	}
	now := uc.Clock.Now().UTC()

	if cached, found, err := uc.Cache.GetReputation(ctx, kind, key, now); err != nil {
		logger.Warn("reputation cache read failed; recomputing",
			"event", "trust_cache_read_failed",
			"module", "trust-intelligence/assessment-service",
			"layer", "application",
			"kind", string(kind),
			"name", key,
			"error", err.Error(),
		)
	} else if found {
		return ReputationResult{Assessment: cached, FromCache: true}, nil
	}

	verdict := uc.judgeReputation(ctx, logger, kind, strings.TrimSpace(name), reputationQueries(kind, name), maxResults)

	assessment := entities.ReputationAssessment{
		Kind:       kind,
		Name:       key,
		TrustScore: verdict.Reliability,
		Label:      scoring.LabelFor(verdict.Reliability),
		Summary:    verdict.Summary,
		Issues:     verdict.Issues,
		ComputedAt: now,
	}
	if err := uc.Cache.PutReputation(ctx, assessment, now); err != nil {
		logger.Warn("reputation cache write failed",
			"event", "trust_cache_write_failed",
			"module", "trust-intelligence/assessment-service",
			"layer", "application",
			"kind", string(kind),
			"name", key,
			"error", err.Error(),
		)
	}
	return ReputationResult{Assessment: assessment}, nil
}

// classifyHistory scores recent captions. History classification is a
// secondary signal: a classifier failure downgrades the post to uncertain
// instead of failing the assessment.
func (uc TrustUseCase) classifyHistory(
	ctx context.Context,
	logger *slog.Logger,
	handle string,
	posts []string,
) float64 {
	var labels []entities.ClassificationLabel
	for _, post := range posts {
		if strings.TrimSpace(post) == "" {
			continue
		}
		prediction, err := uc.Classifier.ClassifyText(ctx, post)
		if err != nil {
			logger.Warn("history classification failed; counting post as uncertain",
				"event", "trust_history_classification_failed",
				"module", "trust-intelligence/assessment-service",
				"layer", "application",
				"handle", handle,
				"error", err.Error(),
			)
			labels = append(labels, entities.ClassificationUncertain)
			continue
		}
		labels = append(labels, prediction.Label)
	}
	return scoring.MessageHistoryScore(labels)
}

// judgeReputation gathers snippets and asks the judge for a verdict. Empty
// snippet sets and collaborator failures both resolve to the documented
// neutral default rather than failing the assessment.
func (uc TrustUseCase) judgeReputation(
	ctx context.Context,
	logger *slog.Logger,
	kind entities.EntityKind,
	entityName string,
	queries []string,
	maxResults int,
) entities.ReputationVerdict {
	snippets, err := uc.Search.Search(ctx, queries, maxResults)
	if err != nil {
		logger.Warn("web search failed; using neutral reputation",
			"event", "trust_web_search_failed",
			"module", "trust-intelligence/assessment-service",
			"layer", "application",
			"kind", string(kind),
			"entity", entityName,
			"error", err.Error(),
		)
		snippets = nil
	}
	if len(snippets) == 0 {
		return neutralVerdict()
	}

	verdict, err := uc.Judge.JudgeReputation(ctx, kind, entityName, snippets)
	if err != nil {
		logger.Warn("reputation judge failed; using neutral reputation",
			"event", "trust_reputation_judge_failed",
			"module", "trust-intelligence/assessment-service",
			"layer", "application",
			"kind", string(kind),
			"entity", entityName,
			"error", err.Error(),
		)
		return neutralVerdict()
	}
	if verdict.Reliability < 0 {
		verdict.Reliability = 0
	}
	if verdict.Reliability > 1 {
		verdict.Reliability = 1
	}
	if strings.TrimSpace(verdict.Summary) == "" {
		verdict.Summary = noResultsSummaryNote
	}
	return verdict
}

func neutralVerdict() entities.ReputationVerdict {
	return entities.ReputationVerdict{
		Reliability: neutralReliability,
		Issues:      []string{neutralIssue},
		Summary:     neutralSummary,
	}
}

func influencerQueries(handle, fullName string) []string {
	queries := []string{
		fmt.Sprintf("%q influencer scam controversy", handle),
		fmt.Sprintf("%q sponsored posts disclosure", handle),
	}
	if trimmed := strings.TrimSpace(fullName); trimmed != "" {
		queries = append(queries, fmt.Sprintf("%q influencer reputation reviews", trimmed))
	}
	return queries
}

func reputationQueries(kind entities.EntityKind, name string) []string {
	trimmed := strings.TrimSpace(name)
	if kind == entities.EntityKindProduct {
		return []string{
			fmt.Sprintf("%q product reviews", trimmed),
			fmt.Sprintf("%q complaints scam safety issues", trimmed),
		}
	}
	return []string{
		fmt.Sprintf("%q reviews", trimmed),
		fmt.Sprintf("%q scam lawsuit complaints", trimmed),
	}
}

package commands

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"perseval/contexts/trust-intelligence/assessment-service/adapters/memory"
	"perseval/contexts/trust-intelligence/assessment-service/domain/entities"
	domainerrors "perseval/contexts/trust-intelligence/assessment-service/domain/errors"
)

type fakeClassifier struct {
	labels map[string]entities.ClassificationLabel
	err    error
	calls  int
}

func (f *fakeClassifier) ClassifyText(_ context.Context, text string) (entities.Classification, error) {
	f.calls++
	if f.err != nil {
		return entities.Classification{}, f.err
	}
	label, ok := f.labels[text]
	if !ok {
		label = entities.ClassificationUncertain
	}
	return entities.Classification{Label: label, Score: 0.9, Reason: "test"}, nil
}

type fakeProfiles struct {
	stats entities.ProfileStats
	err   error
}

func (f *fakeProfiles) FetchProfile(_ context.Context, _ string, _ int) (entities.ProfileStats, error) {
	if f.err != nil {
		return entities.ProfileStats{}, f.err
	}
	return f.stats, nil
}

type fakeSearch struct {
	snippets []entities.SearchSnippet
	err      error
}

func (f *fakeSearch) Search(_ context.Context, _ []string, _ int) ([]entities.SearchSnippet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snippets, nil
}

type fakeJudge struct {
	verdict entities.ReputationVerdict
	err     error
	calls   int
}

func (f *fakeJudge) JudgeReputation(
	_ context.Context,
	_ entities.EntityKind,
	_ string,
	_ []entities.SearchSnippet,
) (entities.ReputationVerdict, error) {
	f.calls++
	if f.err != nil {
		return entities.ReputationVerdict{}, f.err
	}
	return f.verdict, nil
}

type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time { return c.now }

func newTrustUseCase(
	classifier *fakeClassifier,
	profiles *fakeProfiles,
	search *fakeSearch,
	judge *fakeJudge,
	clock *movableClock,
) TrustUseCase {
	return TrustUseCase{
		Cache:      memory.NewStore(),
		Profiles:   profiles,
		Classifier: classifier,
		Search:     search,
		Judge:      judge,
		Clock:      clock,
	}
}

func TestAnalyzeTextRejectsEmptyInput(t *testing.T) {
	uc := newTrustUseCase(&fakeClassifier{}, &fakeProfiles{}, &fakeSearch{}, &fakeJudge{}, &movableClock{now: time.Now()})
	if _, err := uc.AnalyzeText(context.Background(), "   "); !errors.Is(err, domainerrors.ErrEmptyAnalysisText) {
		t.Fatalf("expected empty text error, got %v", err)
	}
}

func TestAnalyzeTextClassifierFailureIsFatal(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("capacity exceeded")}
	uc := newTrustUseCase(classifier, &fakeProfiles{}, &fakeSearch{}, &fakeJudge{}, &movableClock{now: time.Now()})
	if _, err := uc.AnalyzeText(context.Background(), "win free crypto now"); !errors.Is(err, domainerrors.ErrClassifierUnavailable) {
		t.Fatalf("expected classifier unavailable, got %v", err)
	}
}

func TestAssessInfluencerComputesCompositeScore(t *testing.T) {
	classifier := &fakeClassifier{labels: map[string]entities.ClassificationLabel{
		"clean post": entities.ClassificationNotScam,
		"scam post":  entities.ClassificationScam,
	}}
	profiles := &fakeProfiles{stats: entities.ProfileStats{
		Platform:    "instagram",
		Handle:      "healthyfit_queen",
		Followers:   10000,
		Following:   500,
		SamplePosts: []string{"clean post", "scam post"},
	}}
	search := &fakeSearch{snippets: []entities.SearchSnippet{{Title: "t", Snippet: "s", Link: "https://a"}}}
	judge := &fakeJudge{verdict: entities.ReputationVerdict{Reliability: 0.8, Summary: "Mostly clean."}}
	clock := &movableClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}
	uc := newTrustUseCase(classifier, profiles, search, judge, clock)

	result, err := uc.AssessInfluencer(context.Background(), "@HealthyFit_Queen", 5)
	if err != nil {
		t.Fatalf("assess failed: %v", err)
	}
	assessment := result.Assessment.Assessment
	if assessment.MessageHistoryScore != 0.5 {
		t.Fatalf("history score: got %v", assessment.MessageHistoryScore)
	}
	if math.Abs(assessment.FollowersScore-0.7666666666) > 1e-6 {
		t.Fatalf("followers score: got %v", assessment.FollowersScore)
	}
	if assessment.WebReputationScore != 0.8 {
		t.Fatalf("web score: got %v", assessment.WebReputationScore)
	}
	if assessment.DisclosureScore != 0.3 {
		t.Fatalf("disclosure score: got %v", assessment.DisclosureScore)
	}
	want := 0.30*0.5 + 0.15*assessment.FollowersScore + 0.40*0.8 + 0.15*0.3
	if math.Abs(assessment.TrustScore-want) > 1e-9 {
		t.Fatalf("trust score: got %v want %v", assessment.TrustScore, want)
	}
	if assessment.EntityKey != "healthyfit_queen" {
		t.Fatalf("entity key not normalized: %q", assessment.EntityKey)
	}
	if result.FromCache {
		t.Fatalf("first computation must not come from cache")
	}
}

func TestAssessInfluencerCacheHitAndExpiry(t *testing.T) {
	classifier := &fakeClassifier{}
	profiles := &fakeProfiles{stats: entities.ProfileStats{Handle: "acct", Followers: 1000}}
	judge := &fakeJudge{verdict: entities.ReputationVerdict{Reliability: 0.6, Summary: "ok"}}
	search := &fakeSearch{snippets: []entities.SearchSnippet{{Link: "https://a"}}}
	clock := &movableClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}
	uc := newTrustUseCase(classifier, profiles, search, judge, clock)

	if _, err := uc.AssessInfluencer(context.Background(), "acct", 5); err != nil {
		t.Fatalf("first assess failed: %v", err)
	}
	cached, err := uc.AssessInfluencer(context.Background(), "acct", 5)
	if err != nil {
		t.Fatalf("second assess failed: %v", err)
	}
	if !cached.FromCache {
		t.Fatalf("expected cache hit within ttl")
	}

	clock.now = clock.now.Add(8 * 24 * time.Hour)
	fresh, err := uc.AssessInfluencer(context.Background(), "acct", 5)
	if err != nil {
		t.Fatalf("post-expiry assess failed: %v", err)
	}
	if fresh.FromCache {
		t.Fatalf("expected recomputation after ttl expiry")
	}
}

func TestAssessInfluencerDegradesJudgeFailure(t *testing.T) {
	profiles := &fakeProfiles{stats: entities.ProfileStats{Handle: "acct", Followers: 1000}}
	search := &fakeSearch{snippets: []entities.SearchSnippet{{Link: "https://a"}}}
	judge := &fakeJudge{err: errors.New("judge down")}
	clock := &movableClock{now: time.Now().UTC()}
	uc := newTrustUseCase(&fakeClassifier{}, profiles, search, judge, clock)

	result, err := uc.AssessInfluencer(context.Background(), "acct", 5)
	if err != nil {
		t.Fatalf("assess failed: %v", err)
	}
	if result.Assessment.Assessment.WebReputationScore != 0.5 {
		t.Fatalf("expected neutral web score, got %v", result.Assessment.Assessment.WebReputationScore)
	}
	if len(result.Assessment.Issues) != 1 || result.Assessment.Issues[0] != "Insufficient public data" {
		t.Fatalf("expected neutral issues, got %v", result.Assessment.Issues)
	}
}

func TestAssessInfluencerEmptySnippetsSkipJudge(t *testing.T) {
	profiles := &fakeProfiles{stats: entities.ProfileStats{Handle: "acct", Followers: 1000}}
	judge := &fakeJudge{verdict: entities.ReputationVerdict{Reliability: 0.9}}
	clock := &movableClock{now: time.Now().UTC()}
	uc := newTrustUseCase(&fakeClassifier{}, profiles, &fakeSearch{}, judge, clock)

	result, err := uc.AssessInfluencer(context.Background(), "acct", 5)
	if err != nil {
		t.Fatalf("assess failed: %v", err)
	}
	if judge.calls != 0 {
		t.Fatalf("judge must not run without snippets")
	}
	if result.Assessment.WebSummary != "No meaningful search results to evaluate reputation." {
		t.Fatalf("unexpected summary %q", result.Assessment.WebSummary)
	}
}

func TestAssessInfluencerHistoryFailureCountsUncertain(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("flaky")}
	profiles := &fakeProfiles{stats: entities.ProfileStats{
		Handle:      "acct",
		Followers:   1000,
		SamplePosts: []string{"post one", "post two"},
	}}
	clock := &movableClock{now: time.Now().UTC()}
	uc := newTrustUseCase(classifier, profiles, &fakeSearch{}, &fakeJudge{}, clock)

	result, err := uc.AssessInfluencer(context.Background(), "acct", 5)
	if err != nil {
		t.Fatalf("history classification failures must degrade, got %v", err)
	}
	if result.Assessment.Assessment.MessageHistoryScore != 0.5 {
		t.Fatalf("expected uncertain history score, got %v", result.Assessment.Assessment.MessageHistoryScore)
	}
}

func TestAssessInfluencerProfileFailureIsFatal(t *testing.T) {
	profiles := &fakeProfiles{err: errors.New("fetch blocked")}
	uc := newTrustUseCase(&fakeClassifier{}, profiles, &fakeSearch{}, &fakeJudge{}, &movableClock{now: time.Now()})
	if _, err := uc.AssessInfluencer(context.Background(), "acct", 5); !errors.Is(err, domainerrors.ErrProfileUnavailable) {
		t.Fatalf("expected profile unavailable, got %v", err)
	}
}

func TestAssessReputationValidatesKindAndName(t *testing.T) {
	uc := newTrustUseCase(&fakeClassifier{}, &fakeProfiles{}, &fakeSearch{}, &fakeJudge{}, &movableClock{now: time.Now()})
	if _, err := uc.AssessReputation(context.Background(), entities.EntityKindInfluencer, "name", 8); !errors.Is(err, domainerrors.ErrUnsupportedEntityKind) {
		t.Fatalf("expected unsupported kind, got %v", err)
	}
	if _, err := uc.AssessReputation(context.Background(), entities.EntityKindCompany, " ", 8); !errors.Is(err, domainerrors.ErrEmptyEntityName) {
		t.Fatalf("expected empty name, got %v", err)
	}
}

func TestAssessReputationCachesVerdict(t *testing.T) {
	search := &fakeSearch{snippets: []entities.SearchSnippet{{Link: "https://a"}}}
	judge := &fakeJudge{verdict: entities.ReputationVerdict{Reliability: 0.31, Summary: "complaints"}}
	clock := &movableClock{now: time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)}
	uc := newTrustUseCase(&fakeClassifier{}, &fakeProfiles{}, search, judge, clock)

	first, err := uc.AssessReputation(context.Background(), entities.EntityKindCompany, "Acme Corp", 8)
	if err != nil {
		t.Fatalf("assess failed: %v", err)
	}
	if first.Assessment.Label != entities.TrustLabelLow {
		t.Fatalf("expected low label, got %v", first.Assessment.Label)
	}
	second, err := uc.AssessReputation(context.Background(), entities.EntityKindCompany, "acme corp", 8)
	if err != nil {
		t.Fatalf("cached assess failed: %v", err)
	}
	if !second.FromCache {
		t.Fatalf("expected cache hit for normalized name")
	}
	if judge.calls != 1 {
		t.Fatalf("judge should run once, ran %d times", judge.calls)
	}
}

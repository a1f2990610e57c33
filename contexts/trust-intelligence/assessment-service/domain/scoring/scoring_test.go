package scoring

import (
	"math"
	"strings"
	"testing"

	"perseval/contexts/trust-intelligence/assessment-service/domain/entities"
)

func TestMessageHistoryScoreMapsLabels(t *testing.T) {
	cases := []struct {
		name   string
		labels []entities.ClassificationLabel
		want   float64
	}{
		{"no posts", nil, 0.5},
		{"all clean", []entities.ClassificationLabel{entities.ClassificationNotScam, entities.ClassificationNotScam}, 1.0},
		{"all scam", []entities.ClassificationLabel{entities.ClassificationScam, entities.ClassificationScam}, 0.0},
		{"mixed", []entities.ClassificationLabel{entities.ClassificationScam, entities.ClassificationNotScam}, 0.5},
		{"uncertain", []entities.ClassificationLabel{entities.ClassificationUncertain}, 0.5},
	}
	for _, tc := range cases {
		if got := MessageHistoryScore(tc.labels); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestFollowersScoreKnownValues(t *testing.T) {
	// 0.7*(log10(10000)-2)/3 + 0.3*1
	if got := FollowersScore(10000, 500); math.Abs(got-0.7666666666) > 1e-6 {
		t.Fatalf("got %v", got)
	}
	if got := FollowersScore(0, 500); got != 0.5 {
		t.Fatalf("zero followers: got %v", got)
	}
	if got := FollowersScore(-1, 0); got != 0.5 {
		t.Fatalf("unknown followers: got %v", got)
	}
	// 100 followers sit at the bottom of the size window.
	if got := FollowersScore(100, 0); math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("100 followers: got %v", got)
	}
	// 100k followers max out the size component.
	if got := FollowersScore(100000, 0); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("100k followers: got %v", got)
	}
}

func TestFollowersScorePenalizesInvertedRatio(t *testing.T) {
	balanced := FollowersScore(1000, 1000)
	inverted := FollowersScore(1000, 3000)
	if inverted >= balanced {
		t.Fatalf("expected penalty, got balanced=%v inverted=%v", balanced, inverted)
	}
	if inverted < 0 || inverted > 1 {
		t.Fatalf("out of bounds: %v", inverted)
	}
}

func TestDisclosureScoreBuckets(t *testing.T) {
	if got := DisclosureScore(nil); got != 0.3 {
		t.Fatalf("no posts: got %v", got)
	}
	if got := DisclosureScore([]string{"", "   "}); got != 0.3 {
		t.Fatalf("blank posts: got %v", got)
	}
	all := []string{"New drop #AD", "Paid Partnership with brand", "#sponsored giveaway"}
	if got := DisclosureScore(all); got != 1.0 {
		t.Fatalf("full disclosure: got %v", got)
	}
	some := []string{"check this out", "#ad todays look", "morning routine"}
	if got := DisclosureScore(some); got != 0.6 {
		t.Fatalf("partial disclosure: got %v", got)
	}
	none := []string{"check this out", "morning routine"}
	if got := DisclosureScore(none); got != 0.3 {
		t.Fatalf("no disclosure: got %v", got)
	}
}

func TestCombineBounds(t *testing.T) {
	if got := Combine(1, 1, 1, 1); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("combine(1,1,1,1)=%v", got)
	}
	if got := Combine(0, 0, 0, 0); got != 0 {
		t.Fatalf("combine(0,0,0,0)=%v", got)
	}
	if got := Combine(0.8, 0.5, 0.6, 0.3); got < 0 || got > 1 {
		t.Fatalf("out of bounds: %v", got)
	}
}

func TestLabelThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  entities.TrustLabel
	}{
		{0.75, entities.TrustLabelHigh},
		{0.749999, entities.TrustLabelMedium},
		{0.4, entities.TrustLabelMedium},
		{0.399999, entities.TrustLabelLow},
		{1.0, entities.TrustLabelHigh},
		{0.0, entities.TrustLabelLow},
	}
	for _, tc := range cases {
		if got := LabelFor(tc.score); got != tc.want {
			t.Fatalf("LabelFor(%v)=%v want %v", tc.score, got, tc.want)
		}
	}
}

func TestNotesMentionsEachFactor(t *testing.T) {
	notes := Notes(0.9, 0.2, 1.0, "Clean record across review sites.")
	for _, fragment := range []string{
		"mostly safe",
		"unusual",
		"ads clearly disclosed",
		"Clean record across review sites.",
	} {
		if !strings.Contains(notes, fragment) {
			t.Fatalf("notes missing %q: %s", fragment, notes)
		}
	}
}

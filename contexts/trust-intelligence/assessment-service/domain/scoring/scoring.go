package scoring

import (
	"math"
	"strings"

	"perseval/contexts/trust-intelligence/assessment-service/domain/entities"
)

// Composite weights. They sum to 1.0 and are not caller-configurable.
const (
	WeightMessageHistory = 0.30
	WeightFollowers      = 0.15
	WeightWebReputation  = 0.40
	WeightDisclosure     = 0.15
)

// Label thresholds on the combined score.
const (
	HighTrustThreshold   = 0.75
	MediumTrustThreshold = 0.40
)

// NeutralScore is the default sub-score when there is not enough evidence to
// judge either way.
const NeutralScore = 0.5

var disclosureMarkers = []string{"#ad", "#sponsored", "paid partnership"}

// MessageHistoryScore maps per-post classifier verdicts to a mean history
// score: scam posts count 0, clean posts count 1, uncertain posts count 0.5.
// No classified posts means lack of evidence, not failure.
func MessageHistoryScore(labels []entities.ClassificationLabel) float64 {
	if len(labels) == 0 {
		return NeutralScore
	}
	total := 0.0
	for _, label := range labels {
		switch label {
		case entities.ClassificationScam:
			// counts as 0
		case entities.ClassificationNotScam:
			total += 1.0
		default:
			total += NeutralScore
		}
	}
	return total / float64(len(labels))
}

// FollowersScore is a heuristic over audience size and follow ratio. The size
// component maps 100 followers to 0 and 100k to 1 on a log scale; the ratio
// component penalizes accounts following more people than follow them.
func FollowersScore(followers, following int64) float64 {
	if followers <= 0 {
		return NeutralScore
	}

	sizeScore := clamp01((math.Log10(float64(followers)) - 2) / 3)

	ratioScore := 1.0
	if following > followers {
		ratio := float64(following) / float64(followers)
		ratioScore = math.Max(0, 1.0-(ratio-1))
	}

	return 0.7*sizeScore + 0.3*ratioScore
}

// DisclosureScore inspects recent captions for sponsored-content markers.
// Absence of posts cannot confirm disclosure behavior and scores weak.
func DisclosureScore(posts []string) float64 {
	disclosed := 0
	total := 0
	for _, raw := range posts {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		total++
		normalized := strings.ToLower(raw)
		for _, marker := range disclosureMarkers {
			if strings.Contains(normalized, marker) {
				disclosed++
				break
			}
		}
	}
	if total == 0 {
		return 0.3
	}

	ratio := float64(disclosed) / float64(total)
	switch {
	case ratio >= 0.6:
		return 1.0
	case ratio > 0:
		return 0.6
	default:
		return 0.3
	}
}

// Combine folds the four sub-scores into the composite trust score.
func Combine(messageHistory, followers, webReputation, disclosure float64) float64 {
	return WeightMessageHistory*messageHistory +
		WeightFollowers*followers +
		WeightWebReputation*webReputation +
		WeightDisclosure*disclosure
}

// LabelFor buckets a composite score into the published trust label.
func LabelFor(score float64) entities.TrustLabel {
	switch {
	case score >= HighTrustThreshold:
		return entities.TrustLabelHigh
	case score >= MediumTrustThreshold:
		return entities.TrustLabelMedium
	default:
		return entities.TrustLabelLow
	}
}

// Notes renders the human-readable explanation published alongside the score.
func Notes(messageHistory, followers, disclosure float64, webSummary string) string {
	recent := "often risky"
	if messageHistory > 0.7 {
		recent = "mostly safe"
	} else if messageHistory > 0.4 {
		recent = "mixed"
	}

	followerNote := "unclear"
	if followers > 0.7 {
		followerNote = "plausible"
	} else if followers < 0.4 {
		followerNote = "unusual"
	}

	disclosureNote := "ads rarely flagged as sponsored"
	if disclosure >= 0.9 {
		disclosureNote = "ads clearly disclosed"
	} else if disclosure >= 0.6 {
		disclosureNote = "disclosures are sporadic"
	}

	web := strings.TrimSpace(webSummary)
	if web == "" {
		web = "Little public information available."
	}

	var b strings.Builder
	b.WriteString("Recent posts look ")
	b.WriteString(recent)
	b.WriteString(". Followers profile looks ")
	b.WriteString(followerNote)
	b.WriteString(". Web reputation: ")
	b.WriteString(web)
	b.WriteString(" Disclosure behavior: ")
	b.WriteString(disclosureNote)
	b.WriteString(".")
	return b.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

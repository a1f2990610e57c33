package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var assessmentsComputedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "perseval_assessments_computed_total",
	Help: "The total number of trust assessments served, by entity kind and cache outcome",
}, []string{"kind", "cache"})

var rateLimitDenialsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "perseval_rate_limit_denials_total",
	Help: "The total number of requests denied by the daily quota, by endpoint group",
}, []string{"group"})

var votesRecordedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "perseval_votes_recorded_total",
	Help: "The total number of community votes recorded, by vote type",
}, []string{"vote_type"})

var submissionsCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "perseval_submissions_created_total",
	Help: "The total number of influencer submissions accepted for review",
})

func cacheLabel(fromCache bool) string {
	if fromCache {
		return "hit"
	}
	return "miss"
}

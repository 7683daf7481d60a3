// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_recommendations_total",
			Help: "Total number of recommendation computations by detected industry",
		},
		[]string{"industry"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "onboarding_recommendation_duration_seconds",
			Help: "Duration of recommendation scoring in seconds",
		},
	)

	OnboardingSaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_state_saves_total",
			Help: "Total number of onboarding state writes",
		},
	)

	OnboardingExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_state_expired_total",
			Help: "Total number of onboarding records discarded as expired or stale",
		},
	)

	SelectionsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_selections_rejected_total",
			Help: "Total number of template selections refused at the capacity limit",
		},
	)

	OnboardingProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_processed_total",
			Help: "Total number of onboarding records materialized into project records",
		},
	)
)

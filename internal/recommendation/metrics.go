package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendationScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vivafit_recommendation_scores",
		Help:    "Distribution of recommendation scores",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vivafit_recommendation_refreshes_total",
		Help: "Total recommendation refreshes by trigger",
	}, []string{"trigger"})

	interactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vivafit_recommendation_interactions_total",
		Help: "Total tracked content interactions by type",
	}, []string{"type"})

	preferenceDriftsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vivafit_recommendation_preference_drifts_total",
		Help: "Total automatic workout difficulty adjustments",
	})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Resolution metrics
var (
	// MatchOperationsTotal counts findMatches calls by outcome
	// ("cache_hit", "fanout", "empty").
	MatchOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_operations_total",
			Help: "Total number of cross-provider match operations.",
		},
		[]string{"outcome"},
	)

	// ProviderCallsTotal counts provider callback invocations by provider,
	// operation (search/details/episodes) and status (ok/error).
	ProviderCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_calls_total",
			Help: "Total number of provider callback invocations.",
		},
		[]string{"provider", "operation", "status"},
	)

	// MatchConfidence observes the confidence of accepted matches per provider.
	MatchConfidence = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_confidence",
			Help:    "Confidence scores of accepted cross-provider matches.",
			Buckets: prometheus.LinearBuckets(0.5, 0.05, 11),
		},
		[]string{"provider"},
	)

	// AggregationDuration observes wall time of aggregation passes by kind
	// ("details", "episodes").
	AggregationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "Duration of media aggregation passes.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		MatchOperationsTotal,
		ProviderCallsTotal,
		MatchConfidence,
		AggregationDuration,
	)
}

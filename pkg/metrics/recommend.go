package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommend HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_recommend_latency_seconds",
		Help:    "Latency of the recommend handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommend requests received
	RecommendRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_recommend_requests_total",
		Help: "Total number of recommend requests",
	})

	// Recommendations returned, labelled by scoring tier
	RecommendationsServedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reco_recommendations_served_total",
		Help: "Total recommendations served, by source tier",
	}, []string{"source"})

	// Catalog calls degraded to empty results
	TMDBErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reco_tmdb_errors_total",
		Help: "Total TMDB calls that failed and degraded to empty results",
	}, []string{"endpoint"})

	// Static fallback recommendations emitted
	FallbackRecommendationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_fallback_recommendations_total",
		Help: "Total static fallback recommendations emitted",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequestsTotal,
		RecommendationsServedTotal,
		TMDBErrorsTotal,
		FallbackRecommendationsTotal,
	)
}

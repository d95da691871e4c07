// Package metrics registers the Prometheus collectors for the API and the
// recommendation and pricing engines.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommender
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clicksy_recommendations_served_total",
			Help: "Total number of recommendation lists returned",
		},
		[]string{"view"}, // "compact", "all"
	)

	RecommendScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clicksy_recommendation_score",
			Help:    "Distribution of match scores returned to clients",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clicksy_recommendation_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clicksy_recommendation_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Pricing
	PriceEstimates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clicksy_price_estimates_total",
			Help: "Total number of price estimates by outcome",
		},
		[]string{"outcome"}, // "estimated", "insufficient_data", "suppressed"
	)

	CorpusSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clicksy_market_corpus_listings",
			Help: "Number of listings in the active market corpus",
		},
	)

	CorpusRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clicksy_market_corpus_refreshes_total",
			Help: "Total number of market corpus regenerations",
		},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clicksy_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clicksy_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clicksy_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clicksy_events_published_total",
			Help: "Total number of events published to Redis",
		},
		[]string{"event", "result"},
	)
)

// RecordAPIRequest records one finished request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRecommendations records a served list and the scores in it.
func RecordRecommendations(view string, scores []int) {
	RecommendationsServed.WithLabelValues(view).Inc()
	for _, s := range scores {
		RecommendScore.Observe(float64(s))
	}
}

// RecordEstimate records the outcome of a price estimate.
func RecordEstimate(outcome string) {
	PriceEstimates.WithLabelValues(outcome).Inc()
}

// RecordCorpusRefresh updates the corpus gauge after a regeneration.
func RecordCorpusRefresh(size int) {
	CorpusRefreshes.Inc()
	CorpusSize.Set(float64(size))
}

// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Search Metrics
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_search_duration_seconds",
			Help:    "Duration of ranked searches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_search_results",
			Help:    "Number of results returned per search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	SearchCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_search_cache_hits_total",
			Help: "Searches answered from the result cache",
		},
	)

	SearchCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_search_cache_misses_total",
			Help: "Searches that had to be ranked",
		},
	)

	// Recency Metrics
	RecentAccessTrimmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_access_trimmed_total",
			Help: "Access records removed to keep each user within the recency bound",
		},
	)

	// Data integrity
	InvalidFilterCriteria = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_predefined_invalid_filter_total",
			Help: "Predefined catalogs whose stored filter failed validation",
		},
		[]string{"catalog"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSearch records a ranked search
func RecordSearch(duration time.Duration, results int, cached bool) {
	if cached {
		SearchCacheHits.Inc()
	} else {
		SearchCacheMisses.Inc()
		SearchDuration.Observe(duration.Seconds())
	}
	SearchResults.Observe(float64(results))
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

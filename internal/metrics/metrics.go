package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_api_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restaurant_api_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "restaurant_api_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	PicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurant_picks_total",
			Help: "Pick requests served, by strategy",
		},
		[]string{"strategy"},
	)

	SearchResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restaurant_search_results",
			Help:    "Number of restaurants returned per search",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		},
		[]string{"mode"}, // "text", "nearby"
	)
)

// RecordRequest records one served HTTP request.
func RecordRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPick counts a successful pick.
func RecordPick(strategy string) {
	PicksTotal.WithLabelValues(strategy).Inc()
}

// RecordSearch observes the size of a search result.
func RecordSearch(mode string, results int) {
	SearchResults.WithLabelValues(mode).Observe(float64(results))
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	authorizationDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_authorization_denials_total",
		Help: "Authorization denials by action and reason",
	}, []string{"action", "reason"})

	ratingRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_rating_recomputes_total",
		Help: "Product rating recomputations by trigger",
	}, []string{"trigger"})

	busyRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_busy_retries_total",
		Help: "Retries of operations that failed on row lock contention",
	}, []string{"operation", "outcome"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_lookups_total",
		Help: "Cache lookups by kind and result",
	}, []string{"kind", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveDenial counts a refused authorization decision.
func ObserveDenial(action, reason string) {
	authorizationDenials.WithLabelValues(action, reason).Inc()
}

// ObserveRecompute counts an aggregate rating recomputation. trigger is add, delete or reconcile.
func ObserveRecompute(trigger string) {
	ratingRecomputes.WithLabelValues(trigger).Inc()
}

func ObserveBusyRetry(operation, outcome string) {
	busyRetries.WithLabelValues(operation, outcome).Inc()
}

func ObserveCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(kind, result).Inc()
}

// Package observability exposes the application's Prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheHits counts cache hits by cache name.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_hits_total",
		Help: "Total number of cache hits by cache name",
	}, []string{"cache"})

	// CacheMisses counts cache misses by cache name.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_misses_total",
		Help: "Total number of cache misses by cache name",
	}, []string{"cache"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsCreated counts posts created, labelled by whether they carry a group.
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_posts_created_total",
		Help: "Total number of posts created",
	}, []string{"grouped"})

	// FollowEvents counts follow/unfollow operations by action.
	FollowEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_follow_events_total",
		Help: "Total number of follow and unfollow operations",
	}, []string{"action"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}

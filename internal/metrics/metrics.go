// Package metrics provides Prometheus metrics for the monster lookup service.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padguide_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "padguide_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "padguide_http_rate_limited_total",
			Help: "Requests rejected by the query rate limiter",
		},
	)

	// Index Build Metrics
	IndexBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padguide_index_builds_total",
			Help: "Total number of monster index builds",
		},
		[]string{"result"}, // "success", "load_failed", "build_failed", "panic"
	)

	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "padguide_index_build_duration_seconds",
			Help:    "Time taken to load the catalog and build the monster index",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	IndexLastBuildTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "padguide_index_last_build_timestamp_seconds",
			Help: "Unix time of the last successful index build",
		},
	)

	IndexMonsters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "padguide_index_monsters",
			Help: "Number of monsters in the active index",
		},
	)

	IndexNicknames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "padguide_index_nicknames",
			Help: "Number of distinct nicknames in the active index",
		},
	)

	IndexContestedNicknames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "padguide_index_contested_nicknames",
			Help: "Nickname claims lost to a higher precedence monster in the active index",
		},
	)

	IndexPrefixes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "padguide_index_prefixes",
			Help: "Number of distinct prefixes in the active index",
		},
	)

	// Query Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "padguide_queries_total",
			Help: "Monster queries by resolver, matching stage and outcome",
		},
		[]string{"mode", "stage", "outcome"}, // mode: "find" or "constrained"
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "padguide_query_duration_seconds",
			Help:    "Time taken to resolve a monster query",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"mode"},
	)

	QueryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "padguide_query_cache_hits_total",
			Help: "Query cache hit count",
		},
	)

	QueryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "padguide_query_cache_misses_total",
			Help: "Query cache miss count",
		},
	)
)

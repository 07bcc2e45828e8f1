package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hearthstone_cache_hits_total",
		Help: "Total number of cache hits",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hearthstone_cache_misses_total",
		Help: "Total number of cache misses",
	})

	CacheSetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hearthstone_cache_sets_total",
		Help: "Total number of cache sets",
	})

	CacheDeletesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hearthstone_cache_deletes_total",
		Help: "Total number of cache deletes",
	})

	CacheLoadErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hearthstone_cache_load_errors_total",
		Help: "Total number of failed loads on cache miss",
	})

	CacheLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hearthstone_cache_load_duration_seconds",
		Help:    "Duration of loads performed on cache miss",
		Buckets: prometheus.DefBuckets,
	})
)

package hearthstone

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks Blizzard API request latency per operation.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hearthstone_api_request_duration_seconds",
		Help:    "Duration of Blizzard API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	// RequestsTotal counts Blizzard API requests by operation and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hearthstone_api_requests_total",
		Help: "Total number of Blizzard API requests",
	}, []string{"op", "status"})
)

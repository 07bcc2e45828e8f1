package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TokenFetchDuration tracks latency of the client-credentials exchange.
	TokenFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hearthstone_auth_token_fetch_duration_seconds",
		Help:    "Duration of OAuth token exchanges",
		Buckets: prometheus.DefBuckets,
	})

	// TokenFetchErrorsTotal counts failed exchanges by error kind.
	TokenFetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hearthstone_auth_token_fetch_errors_total",
		Help: "Total number of failed OAuth token exchanges",
	}, []string{"kind"})
)

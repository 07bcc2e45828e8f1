package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// CardRequestErrorsTotal counts failed card requests by error kind.
	CardRequestErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hearthstone_http_card_request_errors_total",
		Help: "Total number of failed card requests",
	}, []string{"kind"})
)

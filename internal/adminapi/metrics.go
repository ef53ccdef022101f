package adminapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agricure_console",
			Name:      "admin_api_requests_total",
			Help:      "Backend admin API calls by endpoint and response status.",
		},
		[]string{"endpoint", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agricure_console",
			Name:      "admin_api_request_duration_seconds",
			Help:      "Backend admin API call latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

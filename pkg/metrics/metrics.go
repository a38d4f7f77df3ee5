package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTP server metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketgw_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketgw_http_request_duration_seconds",
			Help:    "Latency in seconds of HTTP requests by route and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

// Upstream provider metrics
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketgw_upstream_requests_total",
			Help: "Total number of calls to the market data provider by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketgw_upstream_request_duration_seconds",
			Help:    "Latency in seconds of calls to the market data provider",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// Token issuance metrics
var LoginAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "marketgw_login_attempts_total",
		Help: "Total number of token requests by result",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration)
	prometheus.MustRegister(UpstreamRequestsTotal, UpstreamRequestDuration)
	prometheus.MustRegister(LoginAttempts)
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of recommendation HTTP handlers
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP handlers by route and method",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// Total number of HTTP requests served
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

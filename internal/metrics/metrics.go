// Package metrics exposes Prometheus metrics for the Birikim backend,
// scraped at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birikim_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "birikim_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	InvestmentMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birikim_investment_mutations_total",
			Help: "Investment mutations by action (created, updated, deleted)",
		},
		[]string{"action"},
	)

	PortfolioValuationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "birikim_portfolio_valuations_total",
			Help: "Number of portfolio stats computations served",
		},
	)
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RateLimitBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_blocked_total",
			Help: "Total number of requests blocked by rate limiter",
		},
		[]string{"path", "limiter_type"},
	)

	DomainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_errors_total",
			Help: "Total number of domain errors by category and code",
		},
		[]string{"category", "code", "status"},
	)

	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP errors by status code",
		},
		[]string{"status", "path", "method"},
	)

	PaymentIntentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_intents_created_total",
			Help: "Total number of payment intents created",
		},
	)

	PaymentIntentsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_intents_failed_total",
			Help: "Total number of payment intent creations rejected by the processor",
		},
	)

	OrdersRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_recorded_total",
			Help: "Total number of orders recorded",
		},
	)
)

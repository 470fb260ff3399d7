package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devnet_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devnet_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// DomainEvents counts successful state changes (post_created, post_liked, ...).
	DomainEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devnet_domain_events_total",
		Help: "Total number of domain state changes by event",
	}, []string{"event"})
)

// RecordEvent increments the counter for a domain event.
func RecordEvent(event string) {
	DomainEvents.WithLabelValues(event).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hallbook_http_requests_total",
		Help: "HTTP requests processed, by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hallbook_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	BookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hallbook_bookings_created_total",
		Help: "Bookings persisted, by storage backend.",
	}, []string{"backend"})

	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hallbook_booking_conflicts_total",
		Help: "Booking requests rejected because of a time conflict.",
	})

	FallbackWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hallbook_fallback_writes_total",
		Help: "Bookings written to the fallback store after a primary failure.",
	})

	CodeAllocationDraws = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hallbook_booking_code_draws",
		Help:    "Random draws needed to allocate a unique booking code.",
		Buckets: []float64{1, 2, 3, 5, 8, 12},
	})
)

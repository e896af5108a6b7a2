package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "access_scheduler",
			Name:      "bookings_created_total",
			Help:      "Count of reservation attempts by outcome.",
		},
		[]string{"outcome"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "access_scheduler",
			Name:      "bookings_cancelled_total",
			Help:      "Count of bookings cancelled.",
		},
	)

	freeSlotQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "access_scheduler",
			Name:      "free_slot_queries_total",
			Help:      "Count of free-slot listings served.",
		},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "access_scheduler",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)

// Outcome labels for bookings_created_total.
const (
	OutcomeConfirmed  = "confirmed"
	OutcomeConflicted = "conflicted"
	OutcomeRejected   = "rejected"
	OutcomeFailed     = "failed"
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingCancelled, freeSlotQueries, requestDuration)
	})
}

func IncBookingCreated(outcome string) {
	bookingCreated.WithLabelValues(outcome).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncFreeSlotQueries() {
	freeSlotQueries.Inc()
}

func ObserveRequest(route, status string, seconds float64) {
	requestDuration.WithLabelValues(route, status).Observe(seconds)
}

package booking

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultCommitted = "committed"
	resultConflict  = "conflict"
	resultInvalid   = "invalid"
	resultFailed    = "failed"
)

var (
	bookingCommitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_commits_total",
			Help: "Booking commit attempts by result",
		},
		[]string{"result"},
	)

	bookingCancellationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_cancellations_total",
			Help: "Bookings cancelled by their owners",
		},
	)
)

func init() {
	prometheus.MustRegister(bookingCommitsTotal, bookingCancellationsTotal)
}

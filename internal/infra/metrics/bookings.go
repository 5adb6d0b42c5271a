package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		bookingsCreatedTotal,
		bookingsCancelledTotal,
		bookingsCompletedTotal,
		bookingConflictsTotal,
		remindersSentTotal,
	)
}

var (
	bookingsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total bookings written by the ledger.",
		},
	)

	bookingsCancelledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_cancelled_total",
			Help: "Total bookings cancelled by customers.",
		},
	)

	bookingsCompletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_completed_total",
			Help: "Total bookings marked completed, including auto-completion.",
		},
	)

	bookingConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Booking attempts rejected because the slot was taken at commit time.",
		},
	)

	remindersSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Reminders delivered per pass.",
		},
		[]string{"pass"}, // 'day_before', 'hour_before'
	)
)

func IncBookingsCreated()   { bookingsCreatedTotal.Inc() }
func IncBookingsCancelled() { bookingsCancelledTotal.Inc() }
func IncBookingsCompleted() { bookingsCompletedTotal.Inc() }
func IncBookingConflicts()  { bookingConflictsTotal.Inc() }

func IncRemindersSent(pass string) { remindersSentTotal.WithLabelValues(pass).Inc() }

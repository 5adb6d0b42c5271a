package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		messagesReceivedTotal,
		repliesSentTotal,
		dispatchErrorsTotal,
		dispatchDurationMs,
		sessionFallbackActive,
		sessionPrimaryErrorsTotal,
		sessionMigrationsTotal,
	)
}

var (
	messagesReceivedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "messages_received_total",
			Help: "Inbound webhook messages accepted.",
		},
	)

	repliesSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "replies_sent_total",
			Help: "Outbound replies handed to the message channel.",
		},
	)

	dispatchErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_errors_total",
			Help: "Handler failures recovered at the dispatch boundary.",
		},
	)

	dispatchDurationMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dispatch_duration_ms",
			Help:    "Dispatch latency distribution in milliseconds.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"step"},
	)

	sessionFallbackActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "session_fallback_active",
			Help: "1 while the session store is serving from the in-process tier.",
		},
	)

	sessionPrimaryErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "session_primary_errors_total",
			Help: "Primary session tier operations that failed.",
		},
	)

	sessionMigrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "session_migrations_total",
			Help: "Fallback-to-primary bulk migrations performed.",
		},
	)
)

func IncMessagesReceived() { messagesReceivedTotal.Inc() }
func IncRepliesSent()      { repliesSentTotal.Inc() }
func IncDispatchErrors()   { dispatchErrorsTotal.Inc() }

func ObserveDispatchMs(step string, ms float64) {
	dispatchDurationMs.WithLabelValues(step).Observe(ms)
}

func SetSessionFallbackActive(active bool) {
	if active {
		sessionFallbackActive.Set(1)
	} else {
		sessionFallbackActive.Set(0)
	}
}

func IncSessionPrimaryErrors() { sessionPrimaryErrorsTotal.Inc() }
func IncSessionMigrations()    { sessionMigrationsTotal.Inc() }

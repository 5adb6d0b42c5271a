//go:build !integration

// File: internal/infra/metrics/register_test.go
package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMustRegister_ExposesQueuedCollectors(t *testing.T) {
	// Calling twice must not panic with duplicate registrations.
	MustRegister()
	MustRegister()

	IncBookingsCreated()
	ObserveDispatchMs("MAIN_MENU", 3)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, name := range []string{
		"bookings_created_total",
		"booking_conflicts_total",
		"messages_received_total",
		"dispatch_duration_ms",
		"session_fallback_active",
	} {
		if !found[name] {
			t.Errorf("metric %q not exported by the default registry", name)
		}
	}
}

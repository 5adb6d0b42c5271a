//go:build !integration

// File: internal/domain/model/booking_test.go
package model_test

import (
	"errors"
	"testing"
	"time"

	"barbershop-bot/internal/domain"
	"barbershop-bot/internal/domain/model"
)

var bookingDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestNewBooking(t *testing.T) {
	svc := &model.Service{ID: "svc-cut", Name: "Haircut", DurationMinutes: 30}
	start := bookingDay.Add(14 * time.Hour)

	t.Run("derives end from service duration", func(t *testing.T) {
		b, err := model.NewBooking("id-1", "BK1234", "+111", svc, "barber-1", bookingDay, start)
		if err != nil {
			t.Fatalf("NewBooking: %v", err)
		}
		if !b.End.Equal(start.Add(30 * time.Minute)) {
			t.Errorf("end = %s, want %s", b.End, start.Add(30*time.Minute))
		}
		if b.Status != model.BookingStatusConfirmed {
			t.Errorf("status = %s, want CONFIRMED", b.Status)
		}
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{"BK123", "BK12345", "bk1234", "XX1234", "1234"} {
			if _, err := model.NewBooking("id-1", code, "+111", svc, "barber-1", bookingDay, start); !errors.Is(err, domain.ErrInvalidBookingCode) {
				t.Errorf("code %q: err = %v, want ErrInvalidBookingCode", code, err)
			}
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		if _, err := model.NewBooking("", "BK1234", "+111", svc, "barber-1", bookingDay, start); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("empty id: err = %v", err)
		}
		if _, err := model.NewBooking("id-1", "BK1234", "+111", nil, "barber-1", bookingDay, start); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("nil service: err = %v", err)
		}
	})
}

func TestBooking_Active(t *testing.T) {
	cases := map[model.BookingStatus]bool{
		model.BookingStatusConfirmed: true,
		model.BookingStatusCompleted: true,
		model.BookingStatusCancelled: false,
		model.BookingStatusNoShow:    false,
	}
	for status, want := range cases {
		b := &model.Booking{Status: status}
		if got := b.Active(); got != want {
			t.Errorf("Active(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time { return bookingDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", at(14, 0), at(14, 30), at(14, 0), at(14, 30), true},
		{"partial overlap", at(14, 0), at(14, 30), at(14, 15), at(14, 45), true},
		{"contained", at(14, 0), at(15, 0), at(14, 15), at(14, 30), true},
		{"touching end to start", at(14, 0), at(14, 30), at(14, 30), at(15, 0), false},
		{"touching start to end", at(14, 30), at(15, 0), at(14, 0), at(14, 30), false},
		{"disjoint", at(14, 0), at(14, 30), at(16, 0), at(16, 30), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := model.Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			// The test is symmetric in its two intervals.
			if got := model.Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, tc.want)
			}
		})
	}
}

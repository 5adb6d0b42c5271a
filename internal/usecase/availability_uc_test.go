//go:build !integration

// File: internal/usecase/availability_uc_test.go
package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"barbershop-bot/internal/domain"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/usecase"
)

// Monday 2026-03-02 keeps the suite clear of the Sunday closure.
var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var cut30 = &model.Service{ID: "svc-cut", Name: "Haircut", Price: 25, DurationMinutes: 30, Active: true}

func TestAvailability_SlotsForDate(t *testing.T) {
	ctx := context.Background()

	t.Run("today starts at now plus advance notice", func(t *testing.T) {
		// now = 10:00, advance 2h -> first slot 12:00, last 18:30
		now := testDay.Add(10 * time.Hour)
		uc := usecase.NewAvailabilityUseCase(defaultShop(), newMemBookingRepo(), fixedNow(now))

		slots, err := uc.SlotsForDate(ctx, testDay, cut30, "barber-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) == 0 {
			t.Fatal("expected slots, got none")
		}
		if want := testDay.Add(12 * time.Hour); !slots[0].Equal(want) {
			t.Errorf("first slot = %s, want %s", slots[0], want)
		}
		if want := testDay.Add(18*time.Hour + 30*time.Minute); !slots[len(slots)-1].Equal(want) {
			t.Errorf("last slot = %s, want %s", slots[len(slots)-1], want)
		}
		for i := 1; i < len(slots); i++ {
			if got := slots[i].Sub(slots[i-1]); got != 15*time.Minute {
				t.Fatalf("slot spacing at %d = %s, want 15m", i, got)
			}
		}
	})

	t.Run("future date uses full business day", func(t *testing.T) {
		now := testDay.Add(10 * time.Hour)
		uc := usecase.NewAvailabilityUseCase(defaultShop(), newMemBookingRepo(), fixedNow(now))

		slots, err := uc.SlotsForDate(ctx, testDay.AddDate(0, 0, 1), cut30, "barber-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tomorrow := testDay.AddDate(0, 0, 1)
		if want := tomorrow.Add(9 * time.Hour); !slots[0].Equal(want) {
			t.Errorf("first slot = %s, want %s", slots[0], want)
		}
	})

	t.Run("existing booking blocks overlapping starts", func(t *testing.T) {
		// Booking 14:00-14:30: 13:45 and 14:00 and 14:15 must vanish, 13:30
		// and 14:30 must stay.
		now := testDay.Add(9 * time.Hour)
		repo := newMemBookingRepo()
		taken, err := model.NewBooking("b1", "BK0001", "+111", cut30, "barber-1", testDay, testDay.Add(14*time.Hour))
		if err != nil {
			t.Fatalf("seed booking: %v", err)
		}
		if err := repo.Save(ctx, nil, taken); err != nil {
			t.Fatalf("save seed: %v", err)
		}
		uc := usecase.NewAvailabilityUseCase(defaultShop(), repo, fixedNow(now))

		slots, err := uc.SlotsForDate(ctx, testDay, cut30, "barber-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		have := make(map[string]bool, len(slots))
		for _, s := range slots {
			have[s.Format("15:04")] = true
		}
		for _, gone := range []string{"13:45", "14:00", "14:15"} {
			if have[gone] {
				t.Errorf("slot %s should be blocked", gone)
			}
		}
		for _, kept := range []string{"13:30", "14:30"} {
			if !have[kept] {
				t.Errorf("slot %s should be available", kept)
			}
		}
	})

	t.Run("closed day yields nothing", func(t *testing.T) {
		sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		uc := usecase.NewAvailabilityUseCase(defaultShop(), newMemBookingRepo(), fixedNow(testDay.Add(9*time.Hour)))

		slots, err := uc.SlotsForDate(ctx, sunday, cut30, "barber-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 0 {
			t.Errorf("expected no slots on a closed day, got %d", len(slots))
		}
	})

	t.Run("late evening advance wraps past closing", func(t *testing.T) {
		// 23:30 + 2h lands past midnight: today is exhausted, and the check
		// must not wrap around into the morning.
		now := testDay.Add(23*time.Hour + 30*time.Minute)
		uc := usecase.NewAvailabilityUseCase(defaultShop(), newMemBookingRepo(), fixedNow(now))

		slots, err := uc.SlotsForDate(ctx, testDay, cut30, "barber-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 0 {
			t.Errorf("expected no slots after wrap, got %d starting %s", len(slots), slots[0])
		}
	})

	t.Run("strictly increasing sequence", func(t *testing.T) {
		uc := usecase.NewAvailabilityUseCase(defaultShop(), newMemBookingRepo(), fixedNow(testDay.Add(9*time.Hour)))
		slots, err := uc.SlotsForDate(ctx, testDay, cut30, "barber-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		shop := defaultShop()
		for i, s := range slots {
			if i > 0 && !slots[i-1].Before(s) {
				t.Fatalf("slots not strictly increasing at %d", i)
			}
			if end := s.Add(cut30.Duration()); end.After(testDay.Add(shop.ClosingTime)) {
				t.Fatalf("slot %s runs past closing", s)
			}
		}
	})
}

func TestAvailability_DatesWithAvailability(t *testing.T) {
	ctx := context.Background()
	now := testDay.Add(10 * time.Hour)
	uc := usecase.NewAvailabilityUseCase(defaultShop(), newMemBookingRepo(), fixedNow(now))

	dates, err := uc.DatesWithAvailability(ctx, cut30, "barber-1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) == 0 {
		t.Fatal("expected dates, got none")
	}
	for i, d := range dates {
		if d.Date.Weekday() == time.Sunday {
			t.Errorf("closed day %s included", d.Date)
		}
		if d.Slots <= 0 {
			t.Errorf("date %s has no slots", d.Date)
		}
		if i > 0 && !dates[i-1].Date.Before(d.Date) {
			t.Errorf("dates out of order at %d", i)
		}
	}
}

func TestAvailability_ValidateSlot(t *testing.T) {
	ctx := context.Background()
	now := testDay.Add(9 * time.Hour)

	cases := []struct {
		name  string
		date  time.Time
		start time.Time
		seed  bool
		want  error
	}{
		{
			name: "closed day", date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			start: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), want: domain.ErrShopClosed,
		},
		{
			name: "before opening", date: testDay,
			start: testDay.Add(8 * time.Hour), want: domain.ErrOutsideBusinessHours,
		},
		{
			name: "runs past closing", date: testDay,
			start: testDay.Add(18*time.Hour + 45*time.Minute), want: domain.ErrOutsideBusinessHours,
		},
		{
			name: "insufficient notice", date: testDay,
			start: testDay.Add(10 * time.Hour), want: domain.ErrInsufficientNotice,
		},
		{
			name: "slot taken", date: testDay,
			start: testDay.Add(14 * time.Hour), seed: true, want: domain.ErrSlotUnavailable,
		},
		{
			name: "valid", date: testDay,
			start: testDay.Add(15 * time.Hour), want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemBookingRepo()
			if tc.seed {
				b, err := model.NewBooking("b1", "BK0001", "+111", cut30, "barber-1", testDay, testDay.Add(14*time.Hour))
				if err != nil {
					t.Fatalf("seed: %v", err)
				}
				if err := repo.Save(ctx, nil, b); err != nil {
					t.Fatalf("save seed: %v", err)
				}
			}
			uc := usecase.NewAvailabilityUseCase(defaultShop(), repo, fixedNow(now))
			err := uc.ValidateSlot(ctx, nil, tc.date, tc.start, cut30, "barber-1")
			if !errors.Is(err, tc.want) {
				t.Errorf("ValidateSlot = %v, want %v", err, tc.want)
			}
		})
	}

	t.Run("past start", func(t *testing.T) {
		uc := usecase.NewAvailabilityUseCase(defaultShop(), newMemBookingRepo(), fixedNow(testDay.Add(15*time.Hour)))
		err := uc.ValidateSlot(ctx, nil, testDay, testDay.Add(10*time.Hour), cut30, "barber-1")
		if !errors.Is(err, domain.ErrBookingInPast) {
			t.Errorf("ValidateSlot = %v, want ErrBookingInPast", err)
		}
	})
}

// File: internal/usecase/availability_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"barbershop-bot/internal/config"
	"barbershop-bot/internal/domain"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/domain/ports/repository"
)

// DateAvailability is one bookable date in the horizon with its slot count.
type DateAvailability struct {
	Date  time.Time
	Slots int
}

// AvailabilityUseCase computes bookable start times from the business
// calendar, a service's duration and a barber's existing bookings. The clock
// is injected so tests can pin "now".
type AvailabilityUseCase struct {
	shop     *config.ShopConfig
	bookings repository.BookingRepository
	now      func() time.Time
}

func NewAvailabilityUseCase(shop *config.ShopConfig, bookings repository.BookingRepository, nowFn func() time.Time) *AvailabilityUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &AvailabilityUseCase{shop: shop, bookings: bookings, now: nowFn}
}

// Midnight truncates t to its calendar date.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SlotsForDate returns the ordered bookable start times for the barber on
// the given date. Slots step by the configured interval from opening time;
// a slot is kept while start+duration fits before closing and the barber has
// no overlapping booking. For today the earliest eligible start is
// now+minimum-advance; if that wraps past midnight the day is exhausted.
func (uc *AvailabilityUseCase) SlotsForDate(ctx context.Context, date time.Time, svc *model.Service, barberID string) ([]time.Time, error) {
	day := Midnight(date)
	if !uc.shop.IsOpenOn(day.Weekday()) {
		return nil, nil
	}

	from := uc.shop.OpeningTime
	now := uc.now()
	if day.Equal(Midnight(now)) {
		sinceMidnight := now.Sub(Midnight(now))
		earliest := sinceMidnight + uc.shop.MinAdvance()
		if earliest >= 24*time.Hour || earliest >= uc.shop.ClosingTime {
			return nil, nil
		}
		if earliest > from {
			from = earliest
		}
	}

	existing, err := uc.bookings.FindActiveByBarberAndDate(ctx, barberID, day)
	if err != nil {
		return nil, fmt.Errorf("load bookings for %s: %w", day.Format("2006-01-02"), err)
	}

	var slots []time.Time
	dur := svc.Duration()
	interval := uc.shop.SlotInterval()
	for off := uc.shop.OpeningTime; off+dur <= uc.shop.ClosingTime; off += interval {
		if off < from {
			continue
		}
		start := day.Add(off)
		if barberFree(existing, start, start.Add(dur)) {
			slots = append(slots, start)
		}
	}
	return slots, nil
}

func barberFree(existing []*model.Booking, start, end time.Time) bool {
	for _, b := range existing {
		if model.Overlaps(b.Start, b.End, start, end) {
			return false
		}
	}
	return true
}

// DatesWithAvailability scans today..today+horizonDays-1 in order, skipping
// closed days and days without a single free slot. The result stays in scan
// order.
func (uc *AvailabilityUseCase) DatesWithAvailability(ctx context.Context, svc *model.Service, barberID string, horizonDays int) ([]DateAvailability, error) {
	today := Midnight(uc.now())
	var out []DateAvailability
	for i := 0; i < horizonDays; i++ {
		date := today.AddDate(0, 0, i)
		if !uc.shop.IsOpenOn(date.Weekday()) {
			continue
		}
		slots, err := uc.SlotsForDate(ctx, date, svc, barberID)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			out = append(out, DateAvailability{Date: date, Slots: len(slots)})
		}
	}
	return out, nil
}

// ValidateSlot re-derives the generation rules for a single candidate. It is
// the authoritative check immediately before a booking write, because a
// rendered listing can go stale between display and confirmation. When tx is
// non-nil the overlap count runs inside that transaction.
func (uc *AvailabilityUseCase) ValidateSlot(ctx context.Context, tx repository.Tx, date, start time.Time, svc *model.Service, barberID string) error {
	day := Midnight(date)
	if !uc.shop.IsOpenOn(day.Weekday()) {
		return domain.ErrShopClosed
	}

	off := start.Sub(day)
	end := start.Add(svc.Duration())
	if off < uc.shop.OpeningTime || day.Add(uc.shop.ClosingTime).Before(end) {
		return domain.ErrOutsideBusinessHours
	}

	now := uc.now()
	if start.Before(now) {
		return domain.ErrBookingInPast
	}
	if day.Equal(Midnight(now)) && start.Before(now.Add(uc.shop.MinAdvance())) {
		return domain.ErrInsufficientNotice
	}

	n, err := uc.bookings.CountOverlapping(ctx, tx, barberID, day, start, end)
	if err != nil {
		return fmt.Errorf("count overlapping: %w", err)
	}
	if n > 0 {
		return domain.ErrSlotUnavailable
	}
	return nil
}

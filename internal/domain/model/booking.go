package model

import (
	"fmt"
	"regexp"
	"time"

	"barbershop-bot/internal/domain"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusNoShow    BookingStatus = "NO_SHOW"
)

// BookingCodePattern is the public reference format customers quote back
// during cancellation.
var BookingCodePattern = regexp.MustCompile(`^BK\d{4}$`)

// Booking is a reserved appointment slot for one barber. For a fixed barber
// and date, no two bookings with status CONFIRMED or COMPLETED may have
// overlapping [Start, End) intervals.
type Booking struct {
	ID            string // UUID
	Code          string // BK#### public reference
	CustomerPhone string
	ServiceID     string
	BarberID      string
	Date          time.Time // date component only (midnight, UTC)
	Start         time.Time // full timestamp on Date
	End           time.Time // Start + service duration
	Status        BookingStatus
	CreatedAt     time.Time
	CancelledAt   *time.Time
	CompletedAt   *time.Time

	DayBeforeReminderSent   bool
	DayBeforeReminderSentAt *time.Time
	HourReminderSent        bool
	HourReminderSentAt      *time.Time
}

// NewBooking builds a CONFIRMED booking. End time is derived from the
// service duration.
func NewBooking(id, code, customerPhone string, svc *Service, barberID string, date, start time.Time) (*Booking, error) {
	if id == "" || code == "" || customerPhone == "" || svc == nil || barberID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if !BookingCodePattern.MatchString(code) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBookingCode, code)
	}
	return &Booking{
		ID:            id,
		Code:          code,
		CustomerPhone: customerPhone,
		ServiceID:     svc.ID,
		BarberID:      barberID,
		Date:          date,
		Start:         start,
		End:           start.Add(svc.Duration()),
		Status:        BookingStatusConfirmed,
		CreatedAt:     time.Now(),
	}, nil
}

// Active reports whether the booking still blocks its slot.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusCompleted
}

// Overlaps is the half-open interval test: touching endpoints do not
// conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

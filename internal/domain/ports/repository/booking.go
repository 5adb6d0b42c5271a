package repository

import (
	"context"
	"time"

	"barbershop-bot/internal/domain/model"
)

// BookingRepository is the port behind the booking ledger. The ledger is the
// only writer of booking rows.
type BookingRepository interface {
	// Save upserts a booking. When tx is non-nil the write joins that
	// transaction.
	Save(ctx context.Context, tx Tx, b *model.Booking) error

	FindByCode(ctx context.Context, code string) (*model.Booking, error)
	CodeExists(ctx context.Context, code string) (bool, error)

	// FindActiveByCustomer returns CONFIRMED bookings for a phone number,
	// most recent date first.
	FindActiveByCustomer(ctx context.Context, phone string) ([]*model.Booking, error)

	// FindActiveByBarberAndDate returns CONFIRMED and COMPLETED bookings
	// that block slots for the barber on the given date.
	FindActiveByBarberAndDate(ctx context.Context, barberID string, date time.Time) ([]*model.Booking, error)

	// CountOverlapping counts slot-blocking bookings for the barber whose
	// [start, end) interval intersects the given half-open window.
	CountOverlapping(ctx context.Context, tx Tx, barberID string, date, start, end time.Time) (int, error)

	// LockBarberDate serializes concurrent booking attempts for one barber
	// and date. Must be called inside a transaction; the lock is released
	// on commit or rollback.
	LockBarberDate(ctx context.Context, tx Tx, barberID string, date time.Time) error

	// FindDueForCompletion returns CONFIRMED bookings whose end time has
	// already passed.
	FindDueForCompletion(ctx context.Context, now time.Time) ([]*model.Booking, error)

	// FindConfirmedByDate returns CONFIRMED bookings for a calendar date,
	// used by the reminder passes.
	FindConfirmedByDate(ctx context.Context, date time.Time) ([]*model.Booking, error)
}

package repository

import (
	"context"

	"barbershop-bot/internal/domain/model"
)

// ServiceRepository reads the service catalog. The bot never mutates it.
type ServiceRepository interface {
	FindByID(ctx context.Context, id string) (*model.Service, error)
	// FindActive returns active services ordered by display order.
	FindActive(ctx context.Context) ([]*model.Service, error)
}

// BarberRepository reads barbers and maintains their aggregate counters.
type BarberRepository interface {
	FindByID(ctx context.Context, id string) (*model.Barber, error)
	// FindActive returns active barbers ordered by display order.
	FindActive(ctx context.Context) ([]*model.Barber, error)

	// IncrementTotalBookings is called by the ledger inside the booking
	// transaction so the counter cannot drift from the booking write.
	IncrementTotalBookings(ctx context.Context, tx Tx, barberID string) error
	IncrementCompletedBookings(ctx context.Context, barberID string) error
}

// CustomerRepository tracks per-phone lifecycle counters and the loyalty
// balance.
type CustomerRepository interface {
	GetOrCreate(ctx context.Context, phone string) (*model.Customer, error)

	// RecordBooking bumps the booking counter and awards loyalty points
	// inside the booking transaction; firstBonus is added only when this is
	// the customer's first booking.
	RecordBooking(ctx context.Context, tx Tx, phone string, points, firstBonus int) error
	RecordCancellation(ctx context.Context, phone string) error
	RecordCompletion(ctx context.Context, phone string) error
	RecordNoShow(ctx context.Context, phone string) error
}

// File: internal/infra/db/postgres/postgres_customer_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/domain/ports/repository"
)

var _ repository.CustomerRepository = (*customerRepo)(nil)

type customerRepo struct {
	pool *pgxpool.Pool
}

func NewCustomerRepo(pool *pgxpool.Pool) *customerRepo {
	return &customerRepo{pool: pool}
}

const customerColumns = `phone, first_seen_at, last_booking_at, total_bookings, completed_bookings, cancelled_bookings, no_shows, loyalty_points`

// GetOrCreate inserts the row on first contact; the upsert keeps concurrent
// first messages from racing each other.
func (r *customerRepo) GetOrCreate(ctx context.Context, phone string) (*model.Customer, error) {
	const q = `
INSERT INTO customers (phone, first_seen_at)
VALUES ($1, NOW())
ON CONFLICT (phone) DO UPDATE SET phone=EXCLUDED.phone
RETURNING ` + customerColumns + `;`

	row, err := pickRow(ctx, r.pool, nil, q, phone)
	if err != nil {
		return nil, err
	}
	c := &model.Customer{}
	if err := row.Scan(&c.Phone, &c.FirstSeenAt, &c.LastBookingAt,
		&c.TotalBookings, &c.CompletedBookings, &c.CancelledBookings, &c.NoShows,
		&c.LoyaltyPoints); err != nil {
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return c, nil
}

// RecordBooking joins the booking transaction; the first-booking bonus is
// decided off the pre-update counter so concurrent first bookings cannot
// double-award it.
func (r *customerRepo) RecordBooking(ctx context.Context, tx repository.Tx, phone string, points, firstBonus int) error {
	const q = `
INSERT INTO customers (phone, first_seen_at, last_booking_at, total_bookings, loyalty_points)
VALUES ($1, NOW(), NOW(), 1, $2 + $3)
ON CONFLICT (phone) DO UPDATE SET
  total_bookings  = customers.total_bookings + 1,
  loyalty_points  = customers.loyalty_points + $2 +
    CASE WHEN customers.total_bookings = 0 THEN $3 ELSE 0 END,
  last_booking_at = NOW();`
	if _, err := execSQL(ctx, r.pool, tx, q, phone, points, firstBonus); err != nil {
		return fmt.Errorf("record customer booking: %w", err)
	}
	return nil
}

func (r *customerRepo) RecordCancellation(ctx context.Context, phone string) error {
	return r.record(ctx, nil,
		`UPDATE customers SET cancelled_bookings = cancelled_bookings + 1 WHERE phone=$1;`, phone)
}

func (r *customerRepo) RecordCompletion(ctx context.Context, phone string) error {
	return r.record(ctx, nil,
		`UPDATE customers SET completed_bookings = completed_bookings + 1 WHERE phone=$1;`, phone)
}

func (r *customerRepo) RecordNoShow(ctx context.Context, phone string) error {
	return r.record(ctx, nil,
		`UPDATE customers SET no_shows = no_shows + 1 WHERE phone=$1;`, phone)
}

func (r *customerRepo) record(ctx context.Context, tx repository.Tx, q, phone string) error {
	if _, err := execSQL(ctx, r.pool, tx, q, phone); err != nil {
		return fmt.Errorf("record customer stat: %w", err)
	}
	return nil
}

// File: internal/infra/db/postgres/postgres_booking_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"barbershop-bot/internal/domain"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/domain/ports/repository"
)

var _ repository.BookingRepository = (*bookingRepo)(nil)

// exclusionViolation is raised by the bookings_no_overlap constraint; it is
// the database-level backstop behind the advisory lock.
const exclusionViolation = "23P01"

type bookingRepo struct {
	pool *pgxpool.Pool
}

func NewBookingRepo(pool *pgxpool.Pool) *bookingRepo {
	return &bookingRepo{pool: pool}
}

const bookingColumns = `
id, code, customer_phone, service_id, barber_id, date, start_at, end_at, status,
created_at, cancelled_at, completed_at,
day_before_reminder_sent, day_before_reminder_sent_at,
hour_reminder_sent, hour_reminder_sent_at`

func (r *bookingRepo) Save(ctx context.Context, tx repository.Tx, b *model.Booking) error {
	const q = `
INSERT INTO bookings (
  id, code, customer_phone, service_id, barber_id, date, start_at, end_at, status,
  created_at, cancelled_at, completed_at,
  day_before_reminder_sent, day_before_reminder_sent_at,
  hour_reminder_sent, hour_reminder_sent_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
ON CONFLICT (id) DO UPDATE SET
  status=$9, cancelled_at=$11, completed_at=$12,
  day_before_reminder_sent=$13, day_before_reminder_sent_at=$14,
  hour_reminder_sent=$15, hour_reminder_sent_at=$16;`

	_, err := execSQL(ctx, r.pool, tx, q,
		b.ID, b.Code, b.CustomerPhone, b.ServiceID, b.BarberID,
		b.Date, b.Start, b.End, b.Status,
		b.CreatedAt, b.CancelledAt, b.CompletedAt,
		b.DayBeforeReminderSent, b.DayBeforeReminderSentAt,
		b.HourReminderSent, b.HourReminderSentAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			return domain.ErrSlotUnavailable
		}
		return fmt.Errorf("save booking: %w", err)
	}
	return nil
}

func (r *bookingRepo) FindByCode(ctx context.Context, code string) (*model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE code=$1;`
	return r.queryOne(ctx, nil, q, code)
}

func (r *bookingRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	row, err := pickRow(ctx, r.pool, nil, `SELECT EXISTS(SELECT 1 FROM bookings WHERE code=$1);`, code)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("scan code exists: %w", err)
	}
	return exists, nil
}

func (r *bookingRepo) FindActiveByCustomer(ctx context.Context, phone string) ([]*model.Booking, error) {
	q := `SELECT ` + bookingColumns + `
  FROM bookings
 WHERE customer_phone=$1 AND status='CONFIRMED'
 ORDER BY date DESC, start_at ASC;`
	return r.queryMany(ctx, nil, q, phone)
}

func (r *bookingRepo) FindActiveByBarberAndDate(ctx context.Context, barberID string, date time.Time) ([]*model.Booking, error) {
	q := `SELECT ` + bookingColumns + `
  FROM bookings
 WHERE barber_id=$1 AND date=$2 AND status IN ('CONFIRMED','COMPLETED')
 ORDER BY start_at ASC;`
	return r.queryMany(ctx, nil, q, barberID, date)
}

func (r *bookingRepo) CountOverlapping(ctx context.Context, tx repository.Tx, barberID string, date, start, end time.Time) (int, error) {
	const q = `
SELECT COUNT(*)
  FROM bookings
 WHERE barber_id=$1 AND date=$2 AND status IN ('CONFIRMED','COMPLETED')
   AND start_at < $4 AND end_at > $3;`
	row, err := pickRow(ctx, r.pool, tx, q, barberID, date, start, end)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("scan overlap count: %w", err)
	}
	return n, nil
}

// LockBarberDate takes a transaction-scoped advisory lock derived from the
// barber id and date, serializing booking attempts for that schedule page.
func (r *bookingRepo) LockBarberDate(ctx context.Context, tx repository.Tx, barberID string, date time.Time) error {
	if tx == nil {
		return domain.ErrInvalidExecContext
	}
	_, err := execSQL(ctx, r.pool, tx, `SELECT pg_advisory_xact_lock($1);`, barberDateLockKey(barberID, date))
	if err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	return nil
}

func barberDateLockKey(barberID string, date time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(barberID))
	h.Write([]byte(date.Format("2006-01-02")))
	return int64(h.Sum64())
}

func (r *bookingRepo) FindDueForCompletion(ctx context.Context, now time.Time) ([]*model.Booking, error) {
	q := `SELECT ` + bookingColumns + `
  FROM bookings
 WHERE status='CONFIRMED' AND end_at < $1
 ORDER BY end_at ASC;`
	return r.queryMany(ctx, nil, q, now)
}

func (r *bookingRepo) FindConfirmedByDate(ctx context.Context, date time.Time) ([]*model.Booking, error) {
	q := `SELECT ` + bookingColumns + `
  FROM bookings
 WHERE date=$1 AND status='CONFIRMED'
 ORDER BY start_at ASC;`
	return r.queryMany(ctx, nil, q, date)
}

func (r *bookingRepo) queryOne(ctx context.Context, tx repository.Tx, sql string, args ...any) (*model.Booking, error) {
	row, err := pickRow(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *bookingRepo) queryMany(ctx context.Context, tx repository.Tx, sql string, args ...any) ([]*model.Booking, error) {
	rows, err := queryRows(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read booking rows: %w", err)
	}
	return out, nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	b := &model.Booking{}
	var status string
	err := row.Scan(
		&b.ID, &b.Code, &b.CustomerPhone, &b.ServiceID, &b.BarberID,
		&b.Date, &b.Start, &b.End, &status,
		&b.CreatedAt, &b.CancelledAt, &b.CompletedAt,
		&b.DayBeforeReminderSent, &b.DayBeforeReminderSentAt,
		&b.HourReminderSent, &b.HourReminderSentAt)
	if err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	return b, nil
}

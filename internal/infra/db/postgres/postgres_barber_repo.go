// File: internal/infra/db/postgres/postgres_barber_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"barbershop-bot/internal/domain"
	"barbershop-bot/internal/domain/model"
	"barbershop-bot/internal/domain/ports/repository"
)

var _ repository.BarberRepository = (*barberRepo)(nil)

type barberRepo struct {
	pool *pgxpool.Pool
}

func NewBarberRepo(pool *pgxpool.Pool) *barberRepo {
	return &barberRepo{pool: pool}
}

const barberColumns = `id, name, bio, rating, active, display_order, total_bookings, completed_bookings`

func (r *barberRepo) FindByID(ctx context.Context, id string) (*model.Barber, error) {
	row, err := pickRow(ctx, r.pool, nil, `SELECT `+barberColumns+` FROM barbers WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanBarber(row)
}

func (r *barberRepo) FindActive(ctx context.Context) ([]*model.Barber, error) {
	rows, err := queryRows(ctx, r.pool, nil,
		`SELECT `+barberColumns+` FROM barbers WHERE active ORDER BY display_order ASC, name ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Barber
	for rows.Next() {
		b, err := scanBarber(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read barber rows: %w", err)
	}
	return out, nil
}

func (r *barberRepo) IncrementTotalBookings(ctx context.Context, tx repository.Tx, barberID string) error {
	return r.increment(ctx, tx, `UPDATE barbers SET total_bookings = total_bookings + 1 WHERE id=$1;`, barberID)
}

func (r *barberRepo) IncrementCompletedBookings(ctx context.Context, barberID string) error {
	return r.increment(ctx, nil, `UPDATE barbers SET completed_bookings = completed_bookings + 1 WHERE id=$1;`, barberID)
}

func (r *barberRepo) increment(ctx context.Context, tx repository.Tx, q, barberID string) error {
	cmd, err := execSQL(ctx, r.pool, tx, q, barberID)
	if err != nil {
		return fmt.Errorf("bump barber counter: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBarber(row pgx.Row) (*model.Barber, error) {
	b := &model.Barber{}
	err := row.Scan(&b.ID, &b.Name, &b.Bio, &b.Rating, &b.Active, &b.DisplayOrder, &b.TotalBookings, &b.CompletedBookings)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan barber: %w", err)
	}
	return b, nil
}

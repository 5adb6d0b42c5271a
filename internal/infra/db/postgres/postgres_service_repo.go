// File: internal/infra/db/postgres/postgres_service_repo.go
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

var _ repository.ServiceRepository = (*serviceRepo)(nil)

type serviceRepo struct {
	pool *pgxpool.Pool
}

func NewServiceRepo(pool *pgxpool.Pool) *serviceRepo {
	return &serviceRepo{pool: pool}
}

const serviceColumns = `id, name, description, price, duration_minutes, active, display_order`

func (r *serviceRepo) FindByID(ctx context.Context, id string) (*model.Service, error) {
	row, err := pickRow(ctx, r.pool, nil, `SELECT `+serviceColumns+` FROM services WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanService(row)
}

func (r *serviceRepo) FindActive(ctx context.Context) ([]*model.Service, error) {
	rows, err := queryRows(ctx, r.pool, nil,
		`SELECT `+serviceColumns+` FROM services WHERE active ORDER BY display_order ASC, name ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read service rows: %w", err)
	}
	return out, nil
}

func scanService(row pgx.Row) (*model.Service, error) {
	s := &model.Service{}
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes, &s.Active, &s.DisplayOrder)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan service: %w", err)
	}
	return s, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vetclinic/internal/domain"
)

type ServiceRepo struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{
		db: db,
	}
}

func (r *ServiceRepo) Create(ctx context.Context, dto domain.CreateClinicServiceDTO) (int64, error) {
	query := `
		INSERT INTO services (type, description, duration_minutes, requirements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.Type,
		dto.Description,
		dto.DurationMinutes,
		dto.Requirements,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating service: %w", err)
	}

	return id, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*domain.ClinicService, error) {
	query := `
		SELECT id, type, description, duration_minutes, requirements, created_at, updated_at
		FROM services
		WHERE id = $1
	`

	var service domain.ClinicService
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Type,
		&service.Description,
		&service.DurationMinutes,
		&service.Requirements,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("service %d: %w", id, domain.ErrResourceNotFound)
		}
		return nil, fmt.Errorf("error getting service: %w", err)
	}

	return &service, nil
}

func (r *ServiceRepo) Update(ctx context.Context, id int64, dto domain.UpdateClinicServiceDTO) error {
	setValues := make([]string, 0)
	args := make([]interface{}, 0)
	argID := 1

	if dto.Type != nil {
		setValues = append(setValues, fmt.Sprintf("type = $%d", argID))
		args = append(args, *dto.Type)
		argID++
	}

	if dto.Description != nil {
		setValues = append(setValues, fmt.Sprintf("description = $%d", argID))
		args = append(args, *dto.Description)
		argID++
	}

	if dto.DurationMinutes != nil {
		setValues = append(setValues, fmt.Sprintf("duration_minutes = $%d", argID))
		args = append(args, *dto.DurationMinutes)
		argID++
	}

	if dto.Requirements != nil {
		setValues = append(setValues, fmt.Sprintf("requirements = $%d", argID))
		args = append(args, *dto.Requirements)
		argID++
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE services
		SET %s
		WHERE id = $%d
	`, strings.Join(setValues, ", "), argID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("service %d: %w", id, domain.ErrResourceNotFound)
	}

	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("service %d: %w", id, domain.ErrResourceNotFound)
	}

	return nil
}

func (r *ServiceRepo) List(ctx context.Context) ([]domain.ClinicService, error) {
	query := `
		SELECT id, type, description, duration_minutes, requirements, created_at, updated_at
		FROM services
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing services: %w", err)
	}
	defer rows.Close()

	services := make([]domain.ClinicService, 0)
	for rows.Next() {
		var service domain.ClinicService
		if err := rows.Scan(
			&service.ID,
			&service.Type,
			&service.Description,
			&service.DurationMinutes,
			&service.Requirements,
			&service.CreatedAt,
			&service.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning service row: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return services, nil
}

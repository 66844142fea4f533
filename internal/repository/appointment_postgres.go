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

const appointmentColumns = `
	a.id, a.patient_id, a.veterinarian_id, a.appointment_date,
	to_char(a.appointment_time, 'HH24:MI'), a.urgent, a.reason, a.status,
	a.service_id, a.created_at, a.updated_at,
	s.type, s.description, s.duration_minutes, s.requirements
`

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

func (r *AppointmentRepo) Create(ctx context.Context, appointment *domain.Appointment) (int64, error) {
	query := `
		INSERT INTO appointments (patient_id, veterinarian_id, appointment_date, appointment_time, urgent, reason, status, service_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4::time, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err := r.db.QueryRow(ctx, query,
		appointment.PatientID,
		appointment.VeterinarianID,
		appointment.Date,
		appointment.Time,
		appointment.Urgent,
		appointment.Reason,
		appointment.Status,
		appointment.ServiceID,
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating appointment: %w", err)
	}

	appointment.ID = id
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	return id, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN services s ON a.service_id = s.id
		WHERE a.id = $1
	`

	appointment, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("appointment %d: %w", id, domain.ErrResourceNotFound)
		}
		return nil, fmt.Errorf("error getting appointment: %w", err)
	}

	return appointment, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, appointment *domain.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, appointment_date = $2, appointment_time = $3::time, urgent = $4, status = $5, updated_at = $6
		WHERE id = $7
	`

	now := time.Now()
	tag, err := r.db.Exec(ctx, query,
		appointment.PatientID,
		appointment.Date,
		appointment.Time,
		appointment.Urgent,
		appointment.Status,
		now,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d: %w", appointment.ID, domain.ErrResourceNotFound)
	}

	appointment.UpdatedAt = now
	return nil
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_date = $%d", argCount))
		args = append(args, *filter.Date)
		argCount++
	}

	if filter.Time != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_time = $%d::time", argCount))
		args = append(args, *filter.Time)
		argCount++
	}

	if filter.VeterinarianID != nil {
		conditions = append(conditions, fmt.Sprintf("a.veterinarian_id = $%d", argCount))
		args = append(args, *filter.VeterinarianID)
		argCount++
	}

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("a.patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	limitClause := ""
	if filter.Limit > 0 {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCount, argCount+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM appointments a
		JOIN services s ON a.service_id = s.id
		%s
		ORDER BY a.appointment_date, a.appointment_time, a.id
		%s
	`, appointmentColumns, whereClause, limitClause)

	return r.query(ctx, query, args...)
}

func (r *AppointmentRepo) ExistsOccupying(ctx context.Context, q domain.SlotQuery) (bool, error) {
	conditions, args := instantConditions(q)

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM appointments a WHERE %s)`, strings.Join(conditions, " AND "))

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking slot availability: %w", err)
	}

	return exists, nil
}

func (r *AppointmentRepo) ListOccupying(ctx context.Context, q domain.SlotQuery) ([]domain.Appointment, error) {
	conditions, args := slotConditions(q)

	query := fmt.Sprintf(`SELECT %s
		FROM appointments a
		JOIN services s ON a.service_id = s.id
		WHERE %s
		ORDER BY a.appointment_time
	`, appointmentColumns, strings.Join(conditions, " AND "))

	return r.query(ctx, query, args...)
}

func slotConditions(q domain.SlotQuery) ([]string, []interface{}) {
	conditions := []string{"a.appointment_date = $1"}
	args := []interface{}{q.Date}

	if q.VeterinarianID != "" {
		args = append(args, q.VeterinarianID)
		conditions = append(conditions, fmt.Sprintf("a.veterinarian_id = $%d", len(args)))
	}

	if q.PatientID != "" {
		args = append(args, q.PatientID)
		conditions = append(conditions, fmt.Sprintf("a.patient_id = $%d", len(args)))
	}

	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conditions = append(conditions, fmt.Sprintf("a.status = ANY($%d)", len(args)))
	}

	if q.ExcludeID != 0 {
		args = append(args, q.ExcludeID)
		conditions = append(conditions, fmt.Sprintf("a.id <> $%d", len(args)))
	}

	return conditions, args
}

// instantConditions narrows slotConditions to the exact start time when one is set.
func instantConditions(q domain.SlotQuery) ([]string, []interface{}) {
	conditions, args := slotConditions(q)
	if q.Time != "" {
		args = append(args, q.Time)
		conditions = append(conditions, fmt.Sprintf("a.appointment_time = $%d::time", len(args)))
	}
	return conditions, args
}

func (r *AppointmentRepo) query(ctx context.Context, query string, args ...interface{}) ([]domain.Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning appointment row: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return appointments, nil
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var service domain.ClinicService

	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.VeterinarianID,
		&appointment.Date,
		&appointment.Time,
		&appointment.Urgent,
		&appointment.Reason,
		&appointment.Status,
		&appointment.ServiceID,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
		&service.Type,
		&service.Description,
		&service.DurationMinutes,
		&service.Requirements,
	)
	if err != nil {
		return nil, err
	}

	service.ID = appointment.ServiceID
	appointment.Service = &service

	return &appointment, nil
}

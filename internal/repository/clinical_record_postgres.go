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

const clinicalRecordColumns = `
	id, appointment_id, veterinarian_id, patient_id, record_date,
	to_char(record_time, 'HH24:MI'), reason, diagnosis, treatment,
	next_steps, observations, COALESCE(report_key, ''), created_at, updated_at
`

type ClinicalRecordRepo struct {
	db *pgxpool.Pool
}

func NewClinicalRecordRepository(db *pgxpool.Pool) *ClinicalRecordRepo {
	return &ClinicalRecordRepo{
		db: db,
	}
}

func (r *ClinicalRecordRepo) Create(ctx context.Context, record *domain.ClinicalRecord) (int64, error) {
	query := `
		INSERT INTO clinical_records (appointment_id, veterinarian_id, patient_id, record_date, record_time, reason, diagnosis, treatment, next_steps, observations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::time, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err := r.db.QueryRow(ctx, query,
		record.AppointmentID,
		record.VeterinarianID,
		record.PatientID,
		record.Date,
		record.Time,
		record.Reason,
		record.Diagnosis,
		record.Treatment,
		record.NextSteps,
		record.Observations,
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating clinical record: %w", err)
	}

	record.ID = id
	record.CreatedAt = now
	record.UpdatedAt = now

	return id, nil
}

func (r *ClinicalRecordRepo) GetByID(ctx context.Context, id int64) (*domain.ClinicalRecord, error) {
	query := `SELECT ` + clinicalRecordColumns + ` FROM clinical_records WHERE id = $1`

	record, err := scanClinicalRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("clinical record %d: %w", id, domain.ErrResourceNotFound)
		}
		return nil, fmt.Errorf("error getting clinical record: %w", err)
	}

	return record, nil
}

func (r *ClinicalRecordRepo) Update(ctx context.Context, id int64, dto domain.UpdateClinicalRecordDTO) error {
	query := `
		UPDATE clinical_records
		SET reason = $1, diagnosis = $2, treatment = $3, next_steps = $4, observations = $5, updated_at = $6
		WHERE id = $7
	`

	tag, err := r.db.Exec(ctx, query,
		dto.Reason,
		dto.Diagnosis,
		dto.Treatment,
		dto.NextSteps,
		dto.Observations,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("error updating clinical record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("clinical record %d: %w", id, domain.ErrResourceNotFound)
	}

	return nil
}

func (r *ClinicalRecordRepo) SetReportKey(ctx context.Context, id int64, key string) error {
	_, err := r.db.Exec(ctx, `UPDATE clinical_records SET report_key = $1, updated_at = $2 WHERE id = $3`, key, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error saving report key: %w", err)
	}

	return nil
}

func (r *ClinicalRecordRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clinical_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting clinical record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("clinical record %d: %w", id, domain.ErrResourceNotFound)
	}

	return nil
}

func (r *ClinicalRecordRepo) List(ctx context.Context, filter domain.ClinicalRecordFilter) ([]domain.ClinicalRecord, error) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.VeterinarianID != nil {
		conditions = append(conditions, fmt.Sprintf("veterinarian_id = $%d", argCount))
		args = append(args, *filter.VeterinarianID)
		argCount++
	}

	if filter.AppointmentID != nil {
		conditions = append(conditions, fmt.Sprintf("appointment_id = $%d", argCount))
		args = append(args, *filter.AppointmentID)
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

	query := fmt.Sprintf(`SELECT %s FROM clinical_records %s ORDER BY record_date DESC, record_time DESC %s`,
		clinicalRecordColumns, whereClause, limitClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ClinicalRecord, 0)
	for rows.Next() {
		record, err := scanClinicalRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning clinical record row: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

func scanClinicalRecord(row pgx.Row) (*domain.ClinicalRecord, error) {
	var record domain.ClinicalRecord
	err := row.Scan(
		&record.ID,
		&record.AppointmentID,
		&record.VeterinarianID,
		&record.PatientID,
		&record.Date,
		&record.Time,
		&record.Reason,
		&record.Diagnosis,
		&record.Treatment,
		&record.NextSteps,
		&record.Observations,
		&record.ReportKey,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

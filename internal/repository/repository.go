package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"vetclinic/internal/domain"
)

type Repositories struct {
	Appointment    AppointmentRepository
	Service        ServiceRepository
	ClinicalRecord ClinicalRecordRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Appointment:    NewAppointmentRepository(db),
		Service:        NewServiceRepository(db),
		ClinicalRecord: NewClinicalRecordRepository(db),
	}
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, appointment *domain.Appointment) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)

	// ExistsOccupying reports whether any appointment matches the query exactly
	// (same owner, date and start time, one of the statuses).
	ExistsOccupying(ctx context.Context, query domain.SlotQuery) (bool, error)
	// ListOccupying returns the day's matching appointments with their service loaded.
	ListOccupying(ctx context.Context, query domain.SlotQuery) ([]domain.Appointment, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, dto domain.CreateClinicServiceDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.ClinicService, error)
	Update(ctx context.Context, id int64, dto domain.UpdateClinicServiceDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.ClinicService, error)
}

type ClinicalRecordRepository interface {
	Create(ctx context.Context, record *domain.ClinicalRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.ClinicalRecord, error)
	Update(ctx context.Context, id int64, dto domain.UpdateClinicalRecordDTO) error
	SetReportKey(ctx context.Context, id int64, key string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ClinicalRecordFilter) ([]domain.ClinicalRecord, error)
}

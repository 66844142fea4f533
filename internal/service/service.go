package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vetclinic/config"
	"vetclinic/internal/domain"
	"vetclinic/internal/repository"
	"vetclinic/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage

	Availability AvailabilityOracle
	Directory    DirectoryLookup
	Dispatcher   JobSubmitter
	Renderer     RecordRenderer
	Metrics      SchedulingMetrics
}

type Services struct {
	Appointment    AppointmentService
	Catalog        CatalogService
	ClinicalRecord ClinicalRecordService
}

func NewServices(deps Deps) *Services {
	notifier := NewAppointmentNotifier(deps.Directory, deps.Dispatcher, deps.Logger)
	catalog := NewCatalogService(deps.Repos.Service, deps.Logger)

	return &Services{
		Appointment: NewSchedulingEngine(
			deps.Repos.Appointment,
			catalog,
			deps.Availability,
			notifier,
			deps.Metrics,
			deps.Logger,
		),
		Catalog: catalog,
		ClinicalRecord: NewClinicalRecordService(
			deps.Repos.ClinicalRecord,
			deps.Repos.Appointment,
			deps.Directory,
			deps.Renderer,
			deps.FileStorage,
			deps.Dispatcher,
			deps.Logger,
		),
	}
}

type AppointmentService interface {
	Create(ctx context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error)
	ChangeStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error)

	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	ListByStatus(ctx context.Context, status domain.AppointmentStatus) ([]domain.Appointment, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error)
	ListByTime(ctx context.Context, clock string) ([]domain.Appointment, error)
	ListByDateTime(ctx context.Context, date time.Time, clock string) ([]domain.Appointment, error)
	ListByVeterinarian(ctx context.Context, vetID string) ([]domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
}

type CatalogService interface {
	Create(ctx context.Context, dto domain.CreateClinicServiceDTO) (*domain.ClinicService, error)
	GetByID(ctx context.Context, id int64) (*domain.ClinicService, error)
	Update(ctx context.Context, id int64, dto domain.UpdateClinicServiceDTO) (*domain.ClinicService, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.ClinicService, error)
}

type ClinicalRecordService interface {
	Create(ctx context.Context, dto domain.CreateClinicalRecordDTO) (*domain.ClinicalRecord, error)
	GetByID(ctx context.Context, id int64) (*domain.ClinicalRecord, error)
	List(ctx context.Context, limit, offset int) ([]domain.ClinicalRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.ClinicalRecord, error)
	ListByVeterinarian(ctx context.Context, vetID string) ([]domain.ClinicalRecord, error)
	GetByAppointment(ctx context.Context, appointmentID int64) (*domain.ClinicalRecord, error)
	Update(ctx context.Context, id int64, dto domain.UpdateClinicalRecordDTO) (*domain.ClinicalRecord, error)
	Delete(ctx context.Context, id int64) error
	Report(ctx context.Context, id int64) ([]byte, error)
	ReportURL(ctx context.Context, id int64, expiry time.Duration) (string, error)
}

// AvailabilityOracle answers whether a veterinarian works at the given instant.
type AvailabilityOracle interface {
	IsAvailable(ctx context.Context, vetID string, date time.Time, clock string) (bool, error)
}

// DirectoryLookup resolves display data. Implementations return "" instead of
// failing when a value cannot be found.
type DirectoryLookup interface {
	EmailFor(ctx context.Context, patientID string) string
	PetNameFor(ctx context.Context, patientID string) string
	VetNameFor(ctx context.Context, vetID string) string
}

type NotificationSender interface {
	Send(ctx context.Context, notification domain.Notification) error
}

type JobSubmitter interface {
	Submit(name string, job Job) bool
}

type RecordRenderer interface {
	Render(record domain.ClinicalRecord, petName, vetName string) ([]byte, error)
}

type SchedulingMetrics interface {
	AppointmentRecorded(operation, status string)
	Rejection(reason string)
}

type NotificationMetrics interface {
	NotificationResult(outcome string)
	NotificationDropped()
}

type noopMetrics struct{}

func (noopMetrics) AppointmentRecorded(string, string) {}
func (noopMetrics) Rejection(string)                   {}
func (noopMetrics) NotificationResult(string)          {}
func (noopMetrics) NotificationDropped()               {}

func PointerTo[T any](v T) *T {
	return &v
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"vetclinic/internal/domain"
	"vetclinic/internal/repository"
	"vetclinic/pkg/validator"
)

var tracer = otel.Tracer("vetclinic/internal/service")

type ServiceLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.ClinicService, error)
}

// SchedulingEngine books, reschedules and transitions appointments. A slot is
// only granted when the service exists, neither the veterinarian nor the
// patient is already booked and the veterinarian is working at that time.
type SchedulingEngine struct {
	appointments repository.AppointmentRepository
	catalog      ServiceLookup
	checker      *ConflictChecker
	oracle       AvailabilityOracle
	notifier     *AppointmentNotifier
	metrics      SchedulingMetrics
	logger       *zap.Logger
}

func NewSchedulingEngine(
	appointments repository.AppointmentRepository,
	catalog ServiceLookup,
	oracle AvailabilityOracle,
	notifier *AppointmentNotifier,
	metrics SchedulingMetrics,
	logger *zap.Logger,
) *SchedulingEngine {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &SchedulingEngine{
		appointments: appointments,
		catalog:      catalog,
		checker:      NewConflictChecker(appointments),
		oracle:       oracle,
		notifier:     notifier,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *SchedulingEngine) Create(ctx context.Context, dto domain.CreateAppointmentDTO) (_ *domain.Appointment, err error) {
	ctx, span := tracer.Start(ctx, "SchedulingEngine.Create", trace.WithAttributes(
		attribute.String("appointment.vet_id", dto.VeterinarianID),
		attribute.String("appointment.patient_id", dto.PatientID),
		attribute.Int64("appointment.service_id", dto.ServiceID),
	))
	defer func() { endSpan(span, err) }()

	appointment, err := appointmentFromCreate(dto)
	if err != nil {
		s.metrics.Rejection("validation")
		return nil, err
	}

	service, err := s.catalog.GetByID(ctx, dto.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			s.logger.Warn("service not found while creating appointment", zap.Int64("service_id", dto.ServiceID))
			s.metrics.Rejection("service_not_found")
			return nil, fmt.Errorf("service %d does not exist, cannot create appointment: %w", dto.ServiceID, domain.ErrResourceNotFound)
		}
		s.logger.Error("failed to load service", zap.Int64("service_id", dto.ServiceID), zap.Error(err))
		return nil, fmt.Errorf("loading service: %w", err)
	}

	if err := s.validateSlot(ctx, appointment, service, 0); err != nil {
		return nil, err
	}

	appointment.Status = domain.AppointmentStatusScheduled
	appointment.Service = service

	id, err := s.appointments.Create(ctx, appointment)
	if err != nil {
		s.logger.Error("failed to save appointment", zap.Error(err))
		return nil, fmt.Errorf("saving appointment: %w", err)
	}
	appointment.ID = id

	span.SetAttributes(attribute.Int64("appointment.id", id))
	s.metrics.AppointmentRecorded("create", string(appointment.Status))
	s.logger.Info("appointment created",
		zap.Int64("id", id),
		zap.String("vet_id", appointment.VeterinarianID),
		zap.String("patient_id", appointment.PatientID),
		zap.String("date", domain.FormatDate(appointment.Date)),
		zap.String("time", appointment.Time),
	)

	s.notifier.Created(*appointment)

	return appointment, nil
}

// Update overwrites the mutable fields. The slot checks run again whenever the
// result occupies a slot it did not hold before.
func (s *SchedulingEngine) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) (_ *domain.Appointment, err error) {
	ctx, span := tracer.Start(ctx, "SchedulingEngine.Update", trace.WithAttributes(
		attribute.Int64("appointment.id", id),
	))
	defer func() { endSpan(span, err) }()

	date, clock, err := parseSlotFields(dto.Date, dto.Time)
	if err != nil {
		s.metrics.Rejection("validation")
		return nil, err
	}
	status, err := domain.ParseStatus(string(dto.Status))
	if err != nil {
		s.metrics.Rejection("validation")
		return nil, err
	}
	if !validator.ValidateOpaqueID(dto.PatientID) {
		s.metrics.Rejection("validation")
		return nil, domain.NewValidationError("patient_id is malformed")
	}

	existing, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Date = date
	updated.Time = clock
	updated.Status = status
	updated.Urgent = dto.Urgent
	updated.PatientID = dto.PatientID

	slotChanged := !updated.Date.Equal(existing.Date) || updated.Time != existing.Time || updated.PatientID != existing.PatientID
	if updated.Status.Occupying() && (slotChanged || !existing.Status.Occupying()) {
		service, err := s.serviceOf(ctx, existing)
		if err != nil {
			return nil, err
		}
		if err := s.validateSlot(ctx, &updated, service, id); err != nil {
			return nil, err
		}
		updated.Service = service
	}

	if err := s.appointments.Update(ctx, &updated); err != nil {
		s.logger.Error("failed to update appointment", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("updating appointment: %w", err)
	}

	s.metrics.AppointmentRecorded("update", string(updated.Status))
	s.logger.Info("appointment updated",
		zap.Int64("id", id),
		zap.String("date", domain.FormatDate(updated.Date)),
		zap.String("time", updated.Time),
		zap.String("status", string(updated.Status)),
	)

	s.notifier.Rescheduled(updated)

	return &updated, nil
}

func (s *SchedulingEngine) ChangeStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (_ *domain.Appointment, err error) {
	ctx, span := tracer.Start(ctx, "SchedulingEngine.ChangeStatus", trace.WithAttributes(
		attribute.Int64("appointment.id", id),
		attribute.String("appointment.status", string(status)),
	))
	defer func() { endSpan(span, err) }()

	status, err = domain.ParseStatus(string(status))
	if err != nil {
		s.metrics.Rejection("validation")
		return nil, err
	}

	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Reactivating a freed slot must not double-book it.
	if status.Occupying() && !appointment.Status.Occupying() {
		service, err := s.serviceOf(ctx, appointment)
		if err != nil {
			return nil, err
		}
		if err := s.validateSlot(ctx, appointment, service, id); err != nil {
			return nil, err
		}
	}

	previous := appointment.Status
	appointment.Status = status
	if err := s.appointments.Update(ctx, appointment); err != nil {
		s.logger.Error("failed to change appointment status", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}

	s.metrics.AppointmentRecorded("status", string(status))
	s.logger.Info("appointment status changed",
		zap.Int64("id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	switch status {
	case domain.AppointmentStatusRescheduled:
		s.notifier.Rescheduled(*appointment)
	case domain.AppointmentStatusCancelled:
		s.notifier.Cancelled(*appointment)
	default:
		s.logger.Debug("status does not require notification", zap.Int64("id", id), zap.String("status", string(status)))
	}

	return appointment, nil
}

// validateSlot runs the vet, patient and availability checks in that order and
// reports the first failure.
func (s *SchedulingEngine) validateSlot(ctx context.Context, a *domain.Appointment, service *domain.ClinicService, excludeID int64) error {
	ctx, span := tracer.Start(ctx, "SchedulingEngine.validateSlot")
	defer span.End()

	date := domain.FormatDate(a.Date)

	vetBusy, err := s.appointments.ExistsOccupying(ctx, domain.SlotQuery{
		VeterinarianID: a.VeterinarianID,
		Date:           a.Date,
		Time:           a.Time,
		Statuses:       domain.OccupyingStatuses(),
		ExcludeID:      excludeID,
	})
	if err != nil {
		s.logger.Error("failed to check veterinarian slot", zap.String("vet_id", a.VeterinarianID), zap.Error(err))
		return fmt.Errorf("checking veterinarian slot: %w", err)
	}
	if vetBusy {
		s.metrics.Rejection("vet_slot_occupied")
		return fmt.Errorf("veterinarian %s already has an appointment on %s at %s: %w", a.VeterinarianID, date, a.Time, domain.ErrSlotOccupied)
	}

	overlaps, err := s.checker.CountOverlaps(ctx, a.VeterinarianID, a.Date, a.Time, service.DurationMinutes, excludeID)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			s.metrics.Rejection("validation")
			return err
		}
		s.logger.Error("failed to check overlapping appointments", zap.String("vet_id", a.VeterinarianID), zap.Error(err))
		return fmt.Errorf("checking overlapping appointments: %w", err)
	}
	if overlaps > 0 {
		s.metrics.Rejection("vet_slot_occupied")
		return fmt.Errorf("veterinarian %s already has an appointment in that interval: %w", a.VeterinarianID, domain.ErrSlotOccupied)
	}

	patientBusy, err := s.appointments.ExistsOccupying(ctx, domain.SlotQuery{
		PatientID: a.PatientID,
		Date:      a.Date,
		Time:      a.Time,
		Statuses:  domain.OccupyingStatuses(),
		ExcludeID: excludeID,
	})
	if err != nil {
		s.logger.Error("failed to check patient slot", zap.String("patient_id", a.PatientID), zap.Error(err))
		return fmt.Errorf("checking patient slot: %w", err)
	}
	if patientBusy {
		s.metrics.Rejection("patient_slot_occupied")
		return fmt.Errorf("patient %s already has an appointment on %s at %s: %w", a.PatientID, date, a.Time, domain.ErrSlotOccupied)
	}

	available, err := s.oracle.IsAvailable(ctx, a.VeterinarianID, a.Date, a.Time)
	if err != nil {
		s.logger.Warn("availability check failed", zap.String("vet_id", a.VeterinarianID), zap.Error(err))
		s.metrics.Rejection("vet_unavailable")
		return fmt.Errorf("could not confirm availability of veterinarian %s: %w", a.VeterinarianID, domain.ErrVeterinarianUnavailable)
	}
	if !available {
		s.metrics.Rejection("vet_unavailable")
		return fmt.Errorf("veterinarian %s is not available on %s at %s: %w", a.VeterinarianID, date, a.Time, domain.ErrVeterinarianUnavailable)
	}

	return nil
}

func (s *SchedulingEngine) serviceOf(ctx context.Context, a *domain.Appointment) (*domain.ClinicService, error) {
	if a.Service != nil {
		return a.Service, nil
	}
	service, err := s.catalog.GetByID(ctx, a.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("loading service of appointment %d: %w", a.ID, err)
	}
	a.Service = service
	return service, nil
}

func (s *SchedulingEngine) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrResourceNotFound) {
			s.logger.Error("failed to get appointment", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	return appointment, nil
}

func (s *SchedulingEngine) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	appointments, err := s.appointments.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list appointments", zap.Error(err))
		return nil, err
	}
	return appointments, nil
}

func (s *SchedulingEngine) ListByStatus(ctx context.Context, status domain.AppointmentStatus) ([]domain.Appointment, error) {
	status, err := domain.ParseStatus(string(status))
	if err != nil {
		return nil, err
	}
	return s.List(ctx, domain.AppointmentFilter{Status: &status})
}

func (s *SchedulingEngine) ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error) {
	return s.List(ctx, domain.AppointmentFilter{Date: &date})
}

func (s *SchedulingEngine) ListByTime(ctx context.Context, clock string) ([]domain.Appointment, error) {
	normalized, err := domain.NormalizeClock(clock)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	return s.List(ctx, domain.AppointmentFilter{Time: &normalized})
}

func (s *SchedulingEngine) ListByDateTime(ctx context.Context, date time.Time, clock string) ([]domain.Appointment, error) {
	normalized, err := domain.NormalizeClock(clock)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	return s.List(ctx, domain.AppointmentFilter{Date: &date, Time: &normalized})
}

func (s *SchedulingEngine) ListByVeterinarian(ctx context.Context, vetID string) ([]domain.Appointment, error) {
	return s.List(ctx, domain.AppointmentFilter{VeterinarianID: &vetID})
}

func (s *SchedulingEngine) ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	return s.List(ctx, domain.AppointmentFilter{PatientID: &patientID})
}

func appointmentFromCreate(dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	var fields []string

	if !validator.ValidateOpaqueID(dto.PatientID) {
		fields = append(fields, "patient_id is required and must be alphanumeric")
	}
	if !validator.ValidateOpaqueID(dto.VeterinarianID) {
		fields = append(fields, "veterinarian_id is required and must be alphanumeric")
	}
	if dto.ServiceID <= 0 {
		fields = append(fields, "service_id must be positive")
	}

	date, clock, err := parseSlotFields(dto.Date, dto.Time)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			fields = append(fields, ve.Fields...)
		}
	}

	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}

	return &domain.Appointment{
		PatientID:      dto.PatientID,
		VeterinarianID: dto.VeterinarianID,
		Date:           date,
		Time:           clock,
		Urgent:         dto.Urgent,
		Reason:         strings.TrimSpace(dto.Reason),
		ServiceID:      dto.ServiceID,
	}, nil
}

func parseSlotFields(dateStr, timeStr string) (time.Time, string, error) {
	var fields []string

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		fields = append(fields, err.Error())
	}
	clock, err := domain.NormalizeClock(timeStr)
	if err != nil {
		fields = append(fields, err.Error())
	}

	if len(fields) > 0 {
		return time.Time{}, "", domain.NewValidationError(fields...)
	}
	return date, clock, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

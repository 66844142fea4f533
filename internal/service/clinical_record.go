package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"vetclinic/internal/domain"
	"vetclinic/internal/repository"
	"vetclinic/internal/storage"
	"vetclinic/pkg/validator"
)

const (
	reportPrefix      = "clinical-records"
	reportContentType = "application/pdf"
	reportMessage     = "Hola, señor usuari@. Se adjunta el resumen de la historia clínica de tu mascota."
)

type ClinicalRecordServiceImpl struct {
	repo         repository.ClinicalRecordRepository
	appointments repository.AppointmentRepository
	directory    DirectoryLookup
	renderer     RecordRenderer
	storage      storage.FileStorage
	dispatcher   JobSubmitter
	logger       *zap.Logger
}

func NewClinicalRecordService(
	repo repository.ClinicalRecordRepository,
	appointments repository.AppointmentRepository,
	directory DirectoryLookup,
	renderer RecordRenderer,
	fileStorage storage.FileStorage,
	dispatcher JobSubmitter,
	logger *zap.Logger,
) *ClinicalRecordServiceImpl {
	return &ClinicalRecordServiceImpl{
		repo:         repo,
		appointments: appointments,
		directory:    directory,
		renderer:     renderer,
		storage:      fileStorage,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

func (s *ClinicalRecordServiceImpl) Create(ctx context.Context, dto domain.CreateClinicalRecordDTO) (*domain.ClinicalRecord, error) {
	date, clock, err := parseSlotFields(dto.Date, dto.Time)
	if err != nil {
		return nil, err
	}
	if !validator.ValidateOpaqueID(dto.PatientID) || !validator.ValidateOpaqueID(dto.VeterinarianID) {
		return nil, domain.NewValidationError("patient_id and veterinarian_id are required")
	}

	if _, err := s.appointments.GetByID(ctx, dto.AppointmentID); err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return nil, fmt.Errorf("appointment %d does not exist, cannot create clinical record: %w", dto.AppointmentID, domain.ErrResourceNotFound)
		}
		s.logger.Error("failed to load appointment for clinical record", zap.Int64("appointment_id", dto.AppointmentID), zap.Error(err))
		return nil, fmt.Errorf("loading appointment: %w", err)
	}

	record := &domain.ClinicalRecord{
		AppointmentID:  dto.AppointmentID,
		VeterinarianID: dto.VeterinarianID,
		PatientID:      dto.PatientID,
		Date:           date,
		Time:           clock,
		Reason:         dto.Reason,
		Diagnosis:      dto.Diagnosis,
		Treatment:      dto.Treatment,
		NextSteps:      dto.NextSteps,
		Observations:   dto.Observations,
	}

	if _, err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("failed to create clinical record", zap.Error(err))
		return nil, fmt.Errorf("creating clinical record: %w", err)
	}

	s.logger.Info("clinical record created", zap.Int64("id", record.ID), zap.Int64("appointment_id", record.AppointmentID))

	if s.dispatcher != nil {
		s.dispatcher.Submit("clinical_record_report", s.reportJob(*record))
	}

	return record, nil
}

// reportJob renders the record, archives it and mails it to the owner.
// Archiving does not depend on the owner having a valid email.
func (s *ClinicalRecordServiceImpl) reportJob(record domain.ClinicalRecord) Job {
	return func(ctx context.Context) (*domain.Notification, error) {
		if s.renderer == nil {
			return nil, nil
		}

		petName, vetName := s.names(ctx, record)

		pdf, err := s.renderer.Render(record, petName, vetName)
		if err != nil {
			return nil, fmt.Errorf("rendering clinical record %d: %w", record.ID, err)
		}

		filename := ReportFilename(petName, record.Date)

		if s.storage != nil {
			key, err := s.storage.UploadFile(ctx, pdf, reportPrefix, filename, reportContentType)
			if err != nil {
				s.logger.Warn("failed to archive clinical record report", zap.Int64("id", record.ID), zap.Error(err))
			} else if err := s.repo.SetReportKey(ctx, record.ID, key); err != nil {
				s.logger.Warn("failed to save report key", zap.Int64("id", record.ID), zap.Error(err))
			}
		}

		var email string
		if s.directory != nil {
			email = s.directory.EmailFor(ctx, record.PatientID)
		}

		notification := NewNotification(domain.NotificationTypeClinicalRecord, email, reportMessage)
		if notification == nil {
			s.logger.Warn("invalid recipient, clinical record not sent",
				zap.Int64("id", record.ID),
				zap.String("patient_id", record.PatientID),
			)
			return nil, nil
		}

		notification.Attachment = base64.StdEncoding.EncodeToString(pdf)
		notification.AttachmentName = filename
		return notification, nil
	}
}

func (s *ClinicalRecordServiceImpl) names(ctx context.Context, record domain.ClinicalRecord) (string, string) {
	if s.directory == nil {
		return "", ""
	}
	return s.directory.PetNameFor(ctx, record.PatientID), s.directory.VetNameFor(ctx, record.VeterinarianID)
}

// ReportFilename follows the Historia_<pet><date>.pdf convention.
func ReportFilename(petName string, date time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(petName))
	return "Historia_" + name + domain.FormatDate(date) + ".pdf"
}

func (s *ClinicalRecordServiceImpl) GetByID(ctx context.Context, id int64) (*domain.ClinicalRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrResourceNotFound) {
			s.logger.Error("failed to get clinical record", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	return record, nil
}

func (s *ClinicalRecordServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.ClinicalRecord, error) {
	return s.list(ctx, domain.ClinicalRecordFilter{Limit: limit, Offset: offset})
}

func (s *ClinicalRecordServiceImpl) ListByPatient(ctx context.Context, patientID string) ([]domain.ClinicalRecord, error) {
	return s.list(ctx, domain.ClinicalRecordFilter{PatientID: &patientID})
}

func (s *ClinicalRecordServiceImpl) ListByVeterinarian(ctx context.Context, vetID string) ([]domain.ClinicalRecord, error) {
	return s.list(ctx, domain.ClinicalRecordFilter{VeterinarianID: &vetID})
}

func (s *ClinicalRecordServiceImpl) GetByAppointment(ctx context.Context, appointmentID int64) (*domain.ClinicalRecord, error) {
	records, err := s.list(ctx, domain.ClinicalRecordFilter{AppointmentID: &appointmentID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("clinical record for appointment %d: %w", appointmentID, domain.ErrResourceNotFound)
	}
	return &records[0], nil
}

func (s *ClinicalRecordServiceImpl) list(ctx context.Context, filter domain.ClinicalRecordFilter) ([]domain.ClinicalRecord, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list clinical records", zap.Error(err))
		return nil, err
	}
	return records, nil
}

func (s *ClinicalRecordServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateClinicalRecordDTO) (*domain.ClinicalRecord, error) {
	if err := s.repo.Update(ctx, id, dto); err != nil {
		if !errors.Is(err, domain.ErrResourceNotFound) {
			s.logger.Error("failed to update clinical record", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ClinicalRecordServiceImpl) Delete(ctx context.Context, id int64) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete clinical record", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if record.ReportKey != "" && s.storage != nil {
		if err := s.storage.DeleteFile(ctx, record.ReportKey); err != nil {
			s.logger.Warn("failed to delete archived report", zap.String("key", record.ReportKey), zap.Error(err))
		}
	}

	return nil
}

// Report returns the archived PDF, rendering it on the fly when none was stored.
func (s *ClinicalRecordServiceImpl) Report(ctx context.Context, id int64) ([]byte, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if record.ReportKey != "" && s.storage != nil {
		data, err := s.storage.GetFile(ctx, record.ReportKey)
		if err == nil {
			return data, nil
		}
		s.logger.Warn("archived report unavailable, rendering again", zap.Int64("id", id), zap.Error(err))
	}

	if s.renderer == nil {
		return nil, errors.New("report rendering is not configured")
	}

	petName, vetName := s.names(ctx, *record)
	return s.renderer.Render(*record, petName, vetName)
}

// ReportURL returns a presigned link to the archived PDF.
func (s *ClinicalRecordServiceImpl) ReportURL(ctx context.Context, id int64, expiry time.Duration) (string, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if record.ReportKey == "" || s.storage == nil {
		return "", fmt.Errorf("report of clinical record %d is not archived: %w", id, domain.ErrResourceNotFound)
	}
	return s.storage.GetPresignedURL(ctx, record.ReportKey, expiry)
}

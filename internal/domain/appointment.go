package domain

import (
	"fmt"
	"strings"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled   AppointmentStatus = "SCHEDULED"
	AppointmentStatusAttended    AppointmentStatus = "ATTENDED"
	AppointmentStatusInProgress  AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusRescheduled AppointmentStatus = "RESCHEDULED"
	AppointmentStatusCancelled   AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted   AppointmentStatus = "COMPLETED"
	AppointmentStatusNoShow      AppointmentStatus = "NO_SHOW"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled,
		AppointmentStatusAttended,
		AppointmentStatusInProgress,
		AppointmentStatusRescheduled,
		AppointmentStatusCancelled,
		AppointmentStatusCompleted,
		AppointmentStatusNoShow:
		return true
	}
	return false
}

// ParseStatus accepts any case and surrounding blanks.
func ParseStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", NewValidationError(fmt.Sprintf("unknown status %q", s))
	}
	return status, nil
}

// Occupying reports whether an appointment in this status blocks its slot.
func (s AppointmentStatus) Occupying() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusAttended, AppointmentStatusInProgress:
		return true
	}
	return false
}

// OccupyingStatuses returns a fresh copy on every call.
func OccupyingStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusAttended,
		AppointmentStatusInProgress,
	}
}

type Appointment struct {
	ID             int64             `json:"id"`
	PatientID      string            `json:"patient_id"`
	VeterinarianID string            `json:"veterinarian_id"`
	Date           time.Time         `json:"date"`
	Time           string            `json:"time"`
	Urgent         bool              `json:"urgent"`
	Reason         string            `json:"reason"`
	Status         AppointmentStatus `json:"status"`
	ServiceID      int64             `json:"service_id"`
	Service        *ClinicService    `json:"service,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// DurationMinutes is zero when the service was not loaded.
func (a Appointment) DurationMinutes() int {
	if a.Service == nil {
		return 0
	}
	return a.Service.DurationMinutes
}

type CreateAppointmentDTO struct {
	PatientID      string `json:"patient_id" binding:"required"`
	VeterinarianID string `json:"veterinarian_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Urgent         bool   `json:"urgent"`
	Reason         string `json:"reason"`
	ServiceID      int64  `json:"service_id" binding:"required"`
}

type UpdateAppointmentDTO struct {
	Date      string            `json:"date" binding:"required"`
	Time      string            `json:"time" binding:"required"`
	Status    AppointmentStatus `json:"status" binding:"required"`
	Urgent    bool              `json:"urgent"`
	PatientID string            `json:"patient_id" binding:"required"`
}

type AppointmentFilter struct {
	Status         *AppointmentStatus `json:"status"`
	Date           *time.Time         `json:"date"`
	Time           *string            `json:"time"`
	VeterinarianID *string            `json:"veterinarian_id"`
	PatientID      *string            `json:"patient_id"`
	Limit          int                `json:"limit"`
	Offset         int                `json:"offset"`
}

// SlotQuery selects appointments of one veterinarian or one patient on a day.
// Time narrows the search to an exact start; ExcludeID skips the appointment
// being rescheduled.
type SlotQuery struct {
	VeterinarianID string
	PatientID      string
	Date           time.Time
	Time           string
	Statuses       []AppointmentStatus
	ExcludeID      int64
}

package domain

import (
	"time"
)

type ClinicalRecord struct {
	ID             int64     `json:"id"`
	AppointmentID  int64     `json:"appointment_id"`
	VeterinarianID string    `json:"veterinarian_id"`
	PatientID      string    `json:"patient_id"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	Reason         string    `json:"reason"`
	Diagnosis      string    `json:"diagnosis"`
	Treatment      string    `json:"treatment"`
	NextSteps      string    `json:"next_steps"`
	Observations   string    `json:"observations"`
	ReportKey      string    `json:"report_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateClinicalRecordDTO struct {
	AppointmentID  int64  `json:"appointment_id" binding:"required"`
	VeterinarianID string `json:"veterinarian_id" binding:"required"`
	PatientID      string `json:"patient_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Reason         string `json:"reason"`
	Diagnosis      string `json:"diagnosis"`
	Treatment      string `json:"treatment"`
	NextSteps      string `json:"next_steps"`
	Observations   string `json:"observations"`
}

type UpdateClinicalRecordDTO struct {
	Reason       string `json:"reason"`
	Diagnosis    string `json:"diagnosis"`
	Treatment    string `json:"treatment"`
	NextSteps    string `json:"next_steps"`
	Observations string `json:"observations"`
}

type ClinicalRecordFilter struct {
	PatientID      *string
	VeterinarianID *string
	AppointmentID  *int64
	Limit          int
	Offset         int
}

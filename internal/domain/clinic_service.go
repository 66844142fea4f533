package domain

import (
	"time"
)

// ClinicService is a bookable service of the clinic (consultation, vaccination,
// grooming...). Its duration sizes every appointment that references it.
type ClinicService struct {
	ID              int64     `json:"id"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Requirements    string    `json:"requirements"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s ClinicService) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

type CreateClinicServiceDTO struct {
	Type            string `json:"type" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	Requirements    string `json:"requirements"`
}

type UpdateClinicServiceDTO struct {
	Type            *string `json:"type,omitempty"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Requirements    *string `json:"requirements,omitempty"`
}

package domain

import (
	"errors"
	"strings"
)

var (
	ErrResourceNotFound        = errors.New("resource not found")
	ErrSlotOccupied            = errors.New("slot occupied")
	ErrVeterinarianUnavailable = errors.New("veterinarian unavailable")
	ErrValidation              = errors.New("validation failed")
)

// ValidationError lists the offending fields and matches ErrValidation.
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

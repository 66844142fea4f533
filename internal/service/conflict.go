package service

import (
	"context"
	"fmt"
	"time"

	"vetclinic/internal/domain"
	"vetclinic/internal/repository"
)

// Slot is a half-open interval [Start, End) in minutes since midnight.
type Slot struct {
	Start int
	End   int
}

func NewSlot(start, durationMinutes int) Slot {
	return Slot{Start: start, End: start + durationMinutes}
}

// Overlaps is false for back-to-back slots.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start < other.End && other.Start < s.End
}

func CountConflicts(existing []Slot, candidate Slot) int {
	count := 0
	for _, slot := range existing {
		if slot.Overlaps(candidate) {
			count++
		}
	}
	return count
}

type ConflictChecker struct {
	appointments repository.AppointmentRepository
}

func NewConflictChecker(appointments repository.AppointmentRepository) *ConflictChecker {
	return &ConflictChecker{appointments: appointments}
}

// CountOverlaps counts the veterinarian's occupying appointments on date whose
// interval overlaps [clock, clock+durationMinutes). excludeID skips one
// appointment, used when rescheduling it.
func (c *ConflictChecker) CountOverlaps(ctx context.Context, vetID string, date time.Time, clock string, durationMinutes int, excludeID int64) (int, error) {
	if durationMinutes <= 0 {
		return 0, domain.NewValidationError(fmt.Sprintf("duration must be greater than 0, got %d", durationMinutes))
	}

	start, err := domain.ParseClock(clock)
	if err != nil {
		return 0, domain.NewValidationError(err.Error())
	}

	existing, err := c.appointments.ListOccupying(ctx, domain.SlotQuery{
		VeterinarianID: vetID,
		Date:           date,
		Statuses:       domain.OccupyingStatuses(),
		ExcludeID:      excludeID,
	})
	if err != nil {
		return 0, fmt.Errorf("loading appointments of veterinarian %s: %w", vetID, err)
	}

	slots := make([]Slot, 0, len(existing))
	for _, a := range existing {
		if !a.Status.Occupying() || (excludeID != 0 && a.ID == excludeID) {
			continue
		}
		s, err := domain.ParseClock(a.Time)
		if err != nil {
			return 0, fmt.Errorf("appointment %d has malformed time %q: %w", a.ID, a.Time, err)
		}
		slots = append(slots, NewSlot(s, a.DurationMinutes()))
	}

	return CountConflicts(slots, NewSlot(start, durationMinutes)), nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"vetclinic/internal/domain"
)

func TestSlot_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Slot
		want bool
	}{
		{"same start", NewSlot(540, 30), NewSlot(540, 15), true},
		{"starts inside", NewSlot(540, 30), NewSlot(555, 30), true},
		{"contains", NewSlot(540, 60), NewSlot(560, 10), true},
		{"contained", NewSlot(560, 10), NewSlot(540, 60), true},
		{"ends inside", NewSlot(555, 30), NewSlot(540, 30), true},
		{"back to back after", NewSlot(540, 30), NewSlot(570, 30), false},
		{"back to back before", NewSlot(570, 30), NewSlot(540, 30), false},
		{"disjoint", NewSlot(540, 30), NewSlot(660, 30), false},
		{"zero width existing", NewSlot(540, 0), NewSlot(540, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%+v.Overlaps(%+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("overlap should be symmetric for %+v and %+v", tt.a, tt.b)
			}
		})
	}
}

func TestCountConflicts(t *testing.T) {
	existing := []Slot{NewSlot(540, 30), NewSlot(570, 30), NewSlot(720, 60)}

	if got := CountConflicts(existing, NewSlot(555, 30)); got != 2 {
		t.Errorf("expected 2 conflicts, got %d", got)
	}
	// [600,720) touches 09:30-10:00 and 12:00-13:00 only at its ends.
	if got := CountConflicts(existing, NewSlot(600, 120)); got != 0 {
		t.Errorf("back-to-back on both sides: expected no conflicts, got %d", got)
	}
	if got := CountConflicts(existing, NewSlot(600, 121)); got != 1 {
		t.Errorf("expected 1 conflict, got %d", got)
	}
	if got := CountConflicts(existing, NewSlot(600, 60)); got != 0 {
		t.Errorf("expected no conflicts, got %d", got)
	}
	if got := CountConflicts(nil, NewSlot(600, 60)); got != 0 {
		t.Errorf("expected no conflicts on empty day, got %d", got)
	}
}

func TestConflictChecker_CountOverlaps(t *testing.T) {
	repo := newFakeAppointmentRepo()
	date := mustDate(t, "2024-06-10")
	consult := &domain.ClinicService{ID: 1, Type: "Consulta", DurationMinutes: 30}

	repo.seed(domain.Appointment{VeterinarianID: "V1", PatientID: "P1", Date: date, Time: "09:00", Status: domain.AppointmentStatusScheduled, ServiceID: 1, Service: consult})
	repo.seed(domain.Appointment{VeterinarianID: "V1", PatientID: "P2", Date: date, Time: "10:00", Status: domain.AppointmentStatusCancelled, ServiceID: 1, Service: consult})
	repo.seed(domain.Appointment{VeterinarianID: "V2", PatientID: "P3", Date: date, Time: "09:15", Status: domain.AppointmentStatusScheduled, ServiceID: 1, Service: consult})

	checker := NewConflictChecker(repo)
	ctx := context.Background()

	tests := []struct {
		name      string
		clock     string
		duration  int
		excludeID int64
		want      int
	}{
		{"overlaps scheduled", "09:15", 30, 0, 1},
		{"adjacent", "09:30", 30, 0, 0},
		{"ends exactly at start", "08:30", 30, 0, 0},
		{"cancelled frees slot", "10:00", 30, 0, 0},
		{"excluded self", "09:00", 30, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CountOverlaps(ctx, "V1", date, tt.clock, tt.duration, tt.excludeID)
			if err != nil {
				t.Fatalf("CountOverlaps returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CountOverlaps = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConflictChecker_RejectsNonPositiveDuration(t *testing.T) {
	checker := NewConflictChecker(newFakeAppointmentRepo())

	for _, d := range []int{0, -15} {
		_, err := checker.CountOverlaps(context.Background(), "V1", mustDate(t, "2024-06-10"), "09:00", d, 0)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("duration %d: expected validation error, got %v", d, err)
		}
	}
}

package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppointmentStatus_Occupying(t *testing.T) {
	tests := []struct {
		status    AppointmentStatus
		occupying bool
	}{
		{AppointmentStatusScheduled, true},
		{AppointmentStatusAttended, true},
		{AppointmentStatusInProgress, true},
		{AppointmentStatusRescheduled, false},
		{AppointmentStatusCancelled, false},
		{AppointmentStatusCompleted, false},
		{AppointmentStatusNoShow, false},
		{AppointmentStatus("BOGUS"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Occupying(); got != tt.occupying {
			t.Errorf("%s.Occupying() = %v, want %v", tt.status, got, tt.occupying)
		}
	}
}

func TestOccupyingStatuses_ReturnsCopy(t *testing.T) {
	first := OccupyingStatuses()
	first[0] = AppointmentStatusCancelled

	second := OccupyingStatuses()
	if second[0] != AppointmentStatusScheduled {
		t.Fatalf("mutating the returned slice leaked into the next call: %v", second)
	}
	for _, s := range second {
		if !s.Occupying() {
			t.Errorf("%s listed as occupying but Occupying() is false", s)
		}
	}
}

func TestAppointmentStatus_Valid(t *testing.T) {
	if !AppointmentStatusRescheduled.Valid() {
		t.Error("RESCHEDULED should be valid")
	}
	if AppointmentStatus("scheduled").Valid() {
		t.Error("lowercase status should not be valid")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"09:15", 555, false},
		{"23:59", 1439, false},
		{"09:30:00", 570, false},
		{"9am", 0, true},
		{"", 0, true},
		{"25:00", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("09:30:00")
	if err != nil {
		t.Fatalf("NormalizeClock returned error: %v", err)
	}
	if got != "09:30" {
		t.Fatalf("NormalizeClock = %q, want 09:30", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-10")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if FormatDate(d) != "2024-06-10" {
		t.Fatalf("round trip mismatch: %s", FormatDate(d))
	}
	if _, err := ParseDate("10/06/2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("creating service: %w", NewValidationError("duration_minutes must be greater than 0"))

	if !errors.Is(err, ErrValidation) {
		t.Fatal("wrapped ValidationError should match ErrValidation")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 1 {
		t.Fatalf("errors.As failed or fields lost: %#v", ve)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    AppointmentStatus
		wantErr bool
	}{
		{"SCHEDULED", AppointmentStatusScheduled, false},
		{"scheduled", AppointmentStatusScheduled, false},
		{" Cancelled ", AppointmentStatusCancelled, false},
		{"no_show", AppointmentStatusNoShow, false},
		{"archived", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseStatus(%q) error = %v, want ErrValidation", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

package repository

import (
	"reflect"
	"testing"
	"time"

	"vetclinic/internal/domain"
)

func TestSlotConditions(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	statuses := []domain.AppointmentStatus{domain.AppointmentStatusScheduled, domain.AppointmentStatusAttended}

	tests := []struct {
		name           string
		query          domain.SlotQuery
		wantConditions []string
		wantArgs       []interface{}
	}{
		{
			name:           "date only",
			query:          domain.SlotQuery{Date: date},
			wantConditions: []string{"a.appointment_date = $1"},
			wantArgs:       []interface{}{date},
		},
		{
			name:  "veterinarian with statuses and exclusion",
			query: domain.SlotQuery{VeterinarianID: "V1", Date: date, Statuses: statuses, ExcludeID: 7},
			wantConditions: []string{
				"a.appointment_date = $1",
				"a.veterinarian_id = $2",
				"a.status = ANY($3)",
				"a.id <> $4",
			},
			wantArgs: []interface{}{date, "V1", []string{"SCHEDULED", "ATTENDED"}, int64(7)},
		},
		{
			name:  "patient without exclusion",
			query: domain.SlotQuery{PatientID: "P1", Date: date, Statuses: statuses},
			wantConditions: []string{
				"a.appointment_date = $1",
				"a.patient_id = $2",
				"a.status = ANY($3)",
			},
			wantArgs: []interface{}{date, "P1", []string{"SCHEDULED", "ATTENDED"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conditions, args := slotConditions(tt.query)
			if !reflect.DeepEqual(conditions, tt.wantConditions) {
				t.Errorf("conditions = %q, want %q", conditions, tt.wantConditions)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestInstantConditions_TimeFollowsLastPlaceholder(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	q := domain.SlotQuery{
		VeterinarianID: "V1",
		Date:           date,
		Time:           "09:00",
		Statuses:       domain.OccupyingStatuses(),
		ExcludeID:      3,
	}

	conditions, args := instantConditions(q)

	if len(conditions) != 5 || len(args) != 5 {
		t.Fatalf("got %d conditions and %d args, want 5 of each", len(conditions), len(args))
	}
	if conditions[4] != "a.appointment_time = $5::time" {
		t.Errorf("time condition = %q", conditions[4])
	}
	if args[4] != "09:00" {
		t.Errorf("time arg = %v", args[4])
	}
	if conditions[3] != "a.id <> $4" || args[3] != int64(3) {
		t.Errorf("exclusion = %q / %v", conditions[3], args[3])
	}
}

func TestInstantConditions_NoTime(t *testing.T) {
	q := domain.SlotQuery{PatientID: "P1", Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}

	conditions, args := instantConditions(q)
	if len(conditions) != 2 || len(args) != 2 {
		t.Fatalf("got %q / %v", conditions, args)
	}
}

package service

import (
	"strings"
	"testing"

	"vetclinic/internal/domain"
)

func TestNewNotification(t *testing.T) {
	tests := []struct {
		name      string
		recipient string
		message   string
		wantNil   bool
	}{
		{"valid", "ana@example.com", "hola", false},
		{"trims recipient", "  ana@example.com ", "hola", false},
		{"no at sign", "ana.example.com", "hola", true},
		{"empty recipient", "", "hola", true},
		{"malformed", "ana@", "hola", true},
		{"blank message", "ana@example.com", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotification(domain.NotificationTypeAppointment, tt.recipient, tt.message)
			if (n == nil) != tt.wantNil {
				t.Fatalf("NewNotification(%q, %q) = %+v, wantNil %v", tt.recipient, tt.message, n, tt.wantNil)
			}
			if n != nil && n.Recipient != "ana@example.com" {
				t.Errorf("recipient = %q", n.Recipient)
			}
		})
	}
}

func TestComposeMessages(t *testing.T) {
	d := MessageDetails{
		ServiceType:     "Vacunación",
		DurationMinutes: 20,
		PetName:         "Luna",
		VetName:         "Pérez",
		Date:            "2024-07-01",
		Time:            "16:40",
	}

	created := ComposeCreated(d)
	for _, want := range []string{"Ha agendado Vacunación", "*Luna*", "Fecha: 2024-07-01", "Hora: 16:40", "Dr. Pérez", "20 minutos", "no responder"} {
		if !strings.Contains(created, want) {
			t.Errorf("created message missing %q", want)
		}
	}

	rescheduled := ComposeRescheduled(d)
	if !strings.Contains(rescheduled, "reprogramada") || !strings.Contains(rescheduled, "16:40") {
		t.Errorf("unexpected rescheduled message:\n%s", rescheduled)
	}

	cancelled := ComposeCancelled(d)
	if !strings.Contains(cancelled, "cancelada") || !strings.Contains(cancelled, "*Luna*") {
		t.Errorf("unexpected cancelled message:\n%s", cancelled)
	}
}

func TestDetailsFor(t *testing.T) {
	a := domain.Appointment{
		Date:    mustDate(t, "2024-07-01"),
		Time:    "16:40",
		Service: &domain.ClinicService{Type: "Baño", DurationMinutes: 45},
	}
	d := detailsFor(a, "Luna", "Pérez")
	if d.ServiceType != "Baño" || d.DurationMinutes != 45 || d.Date != "2024-07-01" {
		t.Fatalf("unexpected details: %+v", d)
	}

	a.Service = nil
	if d := detailsFor(a, "", ""); d.ServiceType != "" || d.DurationMinutes != 0 {
		t.Fatalf("missing service should leave fields empty: %+v", d)
	}
}

func TestAppointmentNotifier_NilSafe(t *testing.T) {
	var n *AppointmentNotifier
	n.Created(domain.Appointment{})

	NewAppointmentNotifier(nil, nil, nil).Cancelled(domain.Appointment{})
}

package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vetclinic/internal/domain"
	"vetclinic/pkg/validator"
)

const notificationFooter = "¡Gracias por confiar en nosotros! 🐾\n\n\n\n" +
	"Mensaje generado automaticamente, por favor no responder este correo."

// MessageDetails is everything the composer needs to render a message.
type MessageDetails struct {
	ServiceType     string
	DurationMinutes int
	PetName         string
	VetName         string
	Date            string
	Time            string
}

func detailsFor(a domain.Appointment, petName, vetName string) MessageDetails {
	d := MessageDetails{
		PetName: petName,
		VetName: vetName,
		Date:    domain.FormatDate(a.Date),
		Time:    a.Time,
	}
	if a.Service != nil {
		d.ServiceType = a.Service.Type
		d.DurationMinutes = a.Service.DurationMinutes
	}
	return d
}

func ComposeCreated(d MessageDetails) string {
	return fmt.Sprintf("¡Hola! 😊\n\n"+
		"Ha agendado %s para su mascota *%s* exitosamente.\n\n"+
		"📅 Fecha: %s\n"+
		"⏰ Hora: %s\n"+
		"👨‍⚕️ Veterinario asignado: Dr. %s\n"+
		"Duración: %d minutos\n\n"+
		"Por favor asegúrese de llegar con 10 minutos de anticipación. Si necesita reprogramar, contáctenos a la brevedad.\n\n"+
		notificationFooter,
		d.ServiceType, d.PetName, d.Date, d.Time, d.VetName, d.DurationMinutes)
}

func ComposeRescheduled(d MessageDetails) string {
	return fmt.Sprintf("¡Hola! 😊\n\n"+
		"La cita de %s para su mascota *%s* ha sido reprogramada.\n\n"+
		"📅 Nueva fecha: %s\n"+
		"⏰ Nueva hora: %s\n"+
		"👨‍⚕️ Veterinario asignado: Dr. %s\n\n"+
		"Si la nueva fecha no le conviene, contáctenos a la brevedad.\n\n"+
		notificationFooter,
		d.ServiceType, d.PetName, d.Date, d.Time, d.VetName)
}

func ComposeCancelled(d MessageDetails) string {
	return fmt.Sprintf("¡Hola!\n\n"+
		"La cita de %s para su mascota *%s* programada para el %s a las %s ha sido cancelada.\n\n"+
		"Puede agendar una nueva cita cuando lo desee.\n\n"+
		notificationFooter,
		d.ServiceType, d.PetName, d.Date, d.Time)
}

// NewNotification returns nil when the recipient is not a usable email address
// or the message is blank; such notifications are skipped, not failed.
func NewNotification(kind, recipient, message string) *domain.Notification {
	if !strings.Contains(recipient, "@") || !validator.ValidateEmail(recipient) {
		return nil
	}
	if strings.TrimSpace(message) == "" {
		return nil
	}
	return &domain.Notification{
		Type:      kind,
		Message:   message,
		Recipient: strings.TrimSpace(recipient),
	}
}

// AppointmentNotifier turns appointment events into dispatcher jobs.
type AppointmentNotifier struct {
	directory  DirectoryLookup
	dispatcher JobSubmitter
	logger     *zap.Logger
}

func NewAppointmentNotifier(directory DirectoryLookup, dispatcher JobSubmitter, logger *zap.Logger) *AppointmentNotifier {
	return &AppointmentNotifier{
		directory:  directory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (n *AppointmentNotifier) Created(a domain.Appointment) {
	n.submit("appointment_created", a, domain.NotificationTypeAppointment, ComposeCreated)
}

func (n *AppointmentNotifier) Rescheduled(a domain.Appointment) {
	n.submit("appointment_rescheduled", a, domain.NotificationTypeRescheduled, ComposeRescheduled)
}

func (n *AppointmentNotifier) Cancelled(a domain.Appointment) {
	n.submit("appointment_cancelled", a, domain.NotificationTypeCancelled, ComposeCancelled)
}

func (n *AppointmentNotifier) submit(name string, a domain.Appointment, kind string, compose func(MessageDetails) string) {
	if n == nil || n.dispatcher == nil {
		return
	}

	n.dispatcher.Submit(name, func(ctx context.Context) (*domain.Notification, error) {
		var email, petName, vetName string
		if n.directory != nil {
			email = n.directory.EmailFor(ctx, a.PatientID)
			petName = n.directory.PetNameFor(ctx, a.PatientID)
			vetName = n.directory.VetNameFor(ctx, a.VeterinarianID)
		}

		notification := NewNotification(kind, email, compose(detailsFor(a, petName, vetName)))
		if notification == nil {
			n.logger.Warn("invalid recipient or empty message, notification skipped",
				zap.Int64("appointment_id", a.ID),
				zap.String("patient_id", a.PatientID),
				zap.String("recipient", email),
			)
		}
		return notification, nil
	})
}

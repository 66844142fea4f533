package domain

// Notification is the payload accepted by the notification microservice.
// Field names follow its wire contract.
type Notification struct {
	Type           string `json:"tipo"`
	Message        string `json:"mensaje"`
	Recipient      string `json:"destinatario"`
	Attachment     string `json:"adjunto,omitempty"`
	AttachmentName string `json:"nombreAdjunto,omitempty"`
}

const (
	NotificationTypeAppointment    = "cita"
	NotificationTypeRescheduled    = "Cita reprogramada"
	NotificationTypeCancelled      = "Cita cancelada"
	NotificationTypeClinicalRecord = "Historia Clínica"
)

package contracts

import "context"

// BookingNotificationMessage is handed to the external mailer through the
// queue; composing and delivering the email is not this service's job.
type BookingNotificationMessage struct {
	ID             string `json:"id"`
	AppointmentID  string `json:"appointment_id"`
	PatientID      string `json:"patient_id"`
	PractitionerID string `json:"practitioner_id"`
	ScheduleID     string `json:"schedule_id"`
	Start          string `json:"start"`
	End            string `json:"end"`
}

type BookingNotificationPublisher interface {
	PublishBookingConfirmed(ctx context.Context, message *BookingNotificationMessage) error
}

package responses

import "time"

type CreateBooking struct {
	AppointmentID           string    `json:"appointment_id"`
	SlotID                  string    `json:"slot_id"`
	ScheduleID              string    `json:"schedule_id"`
	PatientID               string    `json:"patient_id"`
	PractitionerID          string    `json:"practitioner_id"`
	Start                   time.Time `json:"start"`
	End                     time.Time `json:"end"`
	SupersededAppointmentID string    `json:"superseded_appointment_id,omitempty"`
}

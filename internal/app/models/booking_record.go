package models

import "time"

// BookingRecord is the audit document persisted after a booking transaction
// commits. It mirrors what the FHIR backend holds so operators can trace a
// booking without querying the backend.
type BookingRecord struct {
	ID                      string    `bson:"_id" json:"id"`
	AppointmentID           string    `bson:"appointment_id" json:"appointment_id"`
	SupersededAppointmentID string    `bson:"superseded_appointment_id,omitempty" json:"superseded_appointment_id,omitempty"`
	FreedSlotID             string    `bson:"freed_slot_id,omitempty" json:"freed_slot_id,omitempty"`
	SlotID                  string    `bson:"slot_id" json:"slot_id"`
	ScheduleID              string    `bson:"schedule_id" json:"schedule_id"`
	PatientID               string    `bson:"patient_id" json:"patient_id"`
	PractitionerID          string    `bson:"practitioner_id" json:"practitioner_id"`
	OrganizationID          string    `bson:"organization_id" json:"organization_id"`
	Start                   time.Time `bson:"start" json:"start"`
	End                     time.Time `bson:"end" json:"end"`
	CreatedAt               time.Time `bson:"created_at" json:"created_at"`
}

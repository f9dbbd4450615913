package fhir_dto

import "time"

type Appointment struct {
	ResourceType          string                   `json:"resourceType"`
	ID                    string                   `json:"id,omitempty"`
	Meta                  *Meta                    `json:"meta,omitempty"`
	Status                string                   `json:"status"`
	Slot                  []Reference              `json:"slot,omitempty"`
	SupportingInformation []Reference              `json:"supportingInformation,omitempty"`
	Start                 time.Time                `json:"start,omitempty"`
	End                   time.Time                `json:"end,omitempty"`
	Description           string                   `json:"description,omitempty"`
	Participant           []AppointmentParticipant `json:"participant,omitempty"`
}

type AppointmentParticipant struct {
	Actor  Reference `json:"actor"`
	Status string    `json:"status"`
}

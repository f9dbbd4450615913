package contracts

import (
	"context"
	"jadwalin-service/internal/pkg/fhir_dto"
)

type AppointmentFhirClient interface {
	// FindBookedAppointmentsByPatientAndSchedule returns the caller's active
	// reservations on the schedule (status=booked only).
	FindBookedAppointmentsByPatientAndSchedule(ctx context.Context, patientID, scheduleID string) ([]fhir_dto.Appointment, error)
}

package contracts

import (
	"context"
	"jadwalin-service/internal/pkg/fhir_dto"
)

type ScheduleFhirClient interface {
	// FindScheduleByID returns nil (not an error) when the schedule does not exist.
	FindScheduleByID(ctx context.Context, scheduleID string) (*fhir_dto.Schedule, error)
}

package contracts

import (
	"context"
	"jadwalin-service/internal/pkg/fhir_dto"
)

type PractitionerRoleFhirClient interface {
	FindPractitionerRoleByPractitionerID(ctx context.Context, practitionerID string) ([]fhir_dto.PractitionerRole, error)
}
